// Package repotest holds behaviour tests shared by every repository driver.
package repotest

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }

// newEnrollment builds an unsaved enrollment for userID.
func newEnrollment(userID, programID string, status domain.ProgramStatus, active bool, at time.Time) *domain.Enrollment {
	return &domain.Enrollment{
		UserID:            userID,
		ProgramID:         programID,
		Status:            status,
		IsActive:          active,
		LastInteractionAt: at,
	}
}

func newEntry(userID, programID string, day int, at time.Time) *domain.WorkoutLogEntry {
	return &domain.WorkoutLogEntry{
		UserID:        userID,
		ProgramID:     programID,
		DayNumber:     day,
		CompletedAt:   at,
		CompletedDate: domain.CalendarDateOf(at, time.UTC),
	}
}

// RunTransactorSuite exercises enrollments and workout logs through tr. Each
// subtest uses a fresh user id so the suite can run against a shared database.
func RunTransactorSuite(t *testing.T, tr repository.Transactor) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("upsert and find", func(t *testing.T) {
		userID := uuid.NewString()
		e := newEnrollment(userID, "p1", domain.StatusStarted, true, base)
		e.StartDate = ptr(base)

		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			return tx.Enrollments().Upsert(ctx, e)
		}))
		require.NotEmpty(t, e.ID)

		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			got, err := tx.Enrollments().Find(ctx, userID, "p1")
			require.NoError(t, err)
			assert.Equal(t, e.ID, got.ID)
			assert.Equal(t, domain.StatusStarted, got.Status)
			require.NotNil(t, got.StartDate)
			assert.True(t, base.Equal(*got.StartDate))

			active, err := tx.Enrollments().FindActive(ctx, userID)
			require.NoError(t, err)
			assert.Equal(t, e.ID, active.ID)

			_, err = tx.Enrollments().Find(ctx, userID, "missing")
			assert.ErrorIs(t, err, repository.ErrNotFound)
			return nil
		}))
	})

	t.Run("upsert replaces existing row", func(t *testing.T) {
		userID := uuid.NewString()
		e := newEnrollment(userID, "p1", domain.StatusSaved, false, base)
		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			return tx.Enrollments().Upsert(ctx, e)
		}))

		e.Status = domain.StatusStarted
		e.IsActive = true
		e.LastInteractionAt = base.Add(time.Hour)
		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			return tx.Enrollments().Upsert(ctx, e)
		}))

		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			all, err := tx.Enrollments().ListByUser(ctx, userID, nil)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, domain.StatusStarted, all[0].Status)
			assert.True(t, all[0].IsActive)
			return nil
		}))
	})

	t.Run("second active enrollment conflicts", func(t *testing.T) {
		userID := uuid.NewString()
		err := tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			if err := tx.Enrollments().Upsert(ctx, newEnrollment(userID, "p1", domain.StatusStarted, true, base)); err != nil {
				return err
			}
			return tx.Enrollments().Upsert(ctx, newEnrollment(userID, "p2", domain.StatusStarted, true, base))
		})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("deactivate all then list by status", func(t *testing.T) {
		userID := uuid.NewString()
		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			if err := tx.Enrollments().Upsert(ctx, newEnrollment(userID, "p1", domain.StatusStarted, true, base)); err != nil {
				return err
			}
			if err := tx.Enrollments().Upsert(ctx, newEnrollment(userID, "p2", domain.StatusSaved, false, base.Add(time.Hour))); err != nil {
				return err
			}
			return tx.Enrollments().DeactivateAll(ctx, userID)
		}))

		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			_, err := tx.Enrollments().FindActive(ctx, userID)
			assert.ErrorIs(t, err, repository.ErrNotFound)

			all, err := tx.Enrollments().ListByUser(ctx, userID, nil)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "p2", all[0].ProgramID, "most recent interaction first")

			saved := domain.StatusSaved
			onlySaved, err := tx.Enrollments().ListByUser(ctx, userID, &saved)
			require.NoError(t, err)
			require.Len(t, onlySaved, 1)
			assert.Equal(t, "p2", onlySaved[0].ProgramID)
			return nil
		}))
	})

	t.Run("delete", func(t *testing.T) {
		userID := uuid.NewString()
		e := newEnrollment(userID, "p1", domain.StatusSaved, false, base)
		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			return tx.Enrollments().Upsert(ctx, e)
		}))
		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			return tx.Enrollments().Delete(ctx, userID, e.ID)
		}))
		err := tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			return tx.Enrollments().Delete(ctx, userID, e.ID)
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("rollback on error", func(t *testing.T) {
		userID := uuid.NewString()
		err := tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			if err := tx.Enrollments().Upsert(ctx, newEnrollment(userID, "p1", domain.StatusStarted, true, base)); err != nil {
				return err
			}
			if err := tx.Workouts().Insert(ctx, newEntry(userID, "p1", 1, base)); err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		assertEmpty(t, tr, userID)
	})

	t.Run("rollback on cancellation", func(t *testing.T) {
		userID := uuid.NewString()
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()
		err := tr.WithinUserTx(cctx, userID, func(ctx context.Context, tx repository.Tx) error {
			if err := tx.Enrollments().Upsert(ctx, newEnrollment(userID, "p1", domain.StatusStarted, true, base)); err != nil {
				return err
			}
			cancel()
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		assertEmpty(t, tr, userID)
	})

	t.Run("workout log per day", func(t *testing.T) {
		userID := uuid.NewString()
		first := newEntry(userID, "p1", 1, base)
		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			if err := tx.Workouts().Insert(ctx, first); err != nil {
				return err
			}
			count, err := tx.Workouts().CountForProgram(ctx, userID, "p1")
			require.NoError(t, err)
			assert.Equal(t, int64(1), count, "count sees writes of the same transaction")
			return nil
		}))

		err := tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			return tx.Workouts().Insert(ctx, newEntry(userID, "p1", 2, base.Add(2*time.Hour)))
		})
		assert.ErrorIs(t, err, repository.ErrConflict)

		first.DurationMinutes = ptr(45)
		first.Notes = ptr("felt good")
		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			return tx.Workouts().Update(ctx, first)
		}))

		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			got, err := tx.Workouts().FindForDay(ctx, userID, "p1", first.CompletedDate)
			require.NoError(t, err)
			assert.Equal(t, first.ID, got.ID)
			require.NotNil(t, got.DurationMinutes)
			assert.Equal(t, 45, *got.DurationMinutes)
			require.NotNil(t, got.Notes)
			assert.Equal(t, "felt good", *got.Notes)

			_, err = tx.Workouts().FindForDay(ctx, userID, "p1", "2030-01-01")
			assert.ErrorIs(t, err, repository.ErrNotFound)
			return nil
		}))
	})

	t.Run("history newest first with paging", func(t *testing.T) {
		userID := uuid.NewString()
		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			for i := 0; i < 3; i++ {
				if err := tx.Workouts().Insert(ctx, newEntry(userID, "p1", i+1, base.AddDate(0, 0, i))); err != nil {
					return err
				}
			}
			return tx.Workouts().Insert(ctx, newEntry(userID, "p2", 1, base.AddDate(0, 0, 10)))
		}))

		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			all, err := tx.Workouts().ListHistory(ctx, userID, repository.HistoryFilter{})
			require.NoError(t, err)
			require.Len(t, all, 4)
			assert.Equal(t, "p2", all[0].ProgramID)

			page, err := tx.Workouts().ListHistory(ctx, userID, repository.HistoryFilter{ProgramID: "p1", Skip: 1, Limit: 1})
			require.NoError(t, err)
			require.Len(t, page, 1)
			assert.Equal(t, 2, page[0].DayNumber)

			none, err := tx.Workouts().ListHistory(ctx, userID, repository.HistoryFilter{ProgramID: "p3"})
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)
			return nil
		}))
	})

	t.Run("concurrent activations keep one active", func(t *testing.T) {
		userID := uuid.NewString()
		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				programID := "p" + string(rune('a'+i))
				errs[i] = tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
					if err := tx.Enrollments().DeactivateAll(ctx, userID); err != nil {
						return err
					}
					return tx.Enrollments().Upsert(ctx, newEnrollment(userID, programID, domain.StatusStarted, true, base))
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, repository.ErrConflict)
		}
		assert.Positive(t, succeeded)

		require.NoError(t, tr.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
			all, err := tx.Enrollments().ListByUser(ctx, userID, nil)
			require.NoError(t, err)
			active := 0
			for _, e := range all {
				if e.IsActive {
					active++
				}
			}
			assert.Equal(t, 1, active)
			return nil
		}))
	})
}

func assertEmpty(t *testing.T, tr repository.Transactor, userID string) {
	t.Helper()
	require.NoError(t, tr.WithinUserTx(context.Background(), userID, func(ctx context.Context, tx repository.Tx) error {
		all, err := tx.Enrollments().ListByUser(ctx, userID, nil)
		require.NoError(t, err)
		assert.Empty(t, all)
		history, err := tx.Workouts().ListHistory(ctx, userID, repository.HistoryFilter{})
		require.NoError(t, err)
		assert.Empty(t, history)
		return nil
	}))
}

// RunUserRepositorySuite exercises a UserRepository.
func RunUserRepositorySuite(t *testing.T, repo repository.UserRepository) {
	ctx := context.Background()
	email := uuid.NewString() + "@example.com"

	user := &domain.User{Name: "Ann", Email: email, PasswordHash: "hash", Role: domain.RoleUser}
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = repo.Create(ctx, &domain.User{Name: "Dup", Email: email, PasswordHash: "hash", Role: domain.RoleUser})
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetCurrentProgram(ctx, id, "p1", &start))
	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.CurrentProgramID)
	require.NotNil(t, got.CurrentProgramStartDate)
	assert.True(t, start.Equal(*got.CurrentProgramStartDate))

	require.NoError(t, repo.SetCurrentProgram(ctx, id, "", nil))
	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got.CurrentProgramID)
	assert.Nil(t, got.CurrentProgramStartDate)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.SetCurrentProgram(ctx, uuid.NewString(), "p1", nil), repository.ErrNotFound)
}

// RunProgramRepositorySuite exercises a ProgramRepository.
func RunProgramRepositorySuite(t *testing.T, repo repository.ProgramRepository) {
	ctx := context.Background()
	author := uuid.NewString()

	public := &domain.Program{
		AuthorID:           author,
		Title:              "Strength",
		IsPublic:           true,
		Difficulty:         domain.DifficultyBeginner,
		TargetMuscleGroups: "Legs,Back",
		Details: []domain.ProgramDetail{
			{ExerciseID: "squat", DayNumber: 1, Sets: 5, Reps: 5, Order: 1},
			{ExerciseID: "row", DayNumber: 2, Sets: 3, Reps: 10, Order: 1},
		},
	}
	private := &domain.Program{AuthorID: author, Title: "Private", Difficulty: domain.DifficultyAdvanced}

	publicID, err := repo.Create(ctx, public)
	require.NoError(t, err)
	privateID, err := repo.Create(ctx, private)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, publicID)
	require.NoError(t, err)
	assert.Equal(t, "Strength", got.Title)
	require.Len(t, got.Details, 2)
	assert.Equal(t, 2, got.DayCount())

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	listed, err := repo.List(ctx, repository.ProgramFilter{PublicOnly: true, MuscleGroup: "legs"})
	require.NoError(t, err)
	assert.True(t, containsProgram(listed, publicID))
	assert.False(t, containsProgram(listed, privateID))

	own, err := repo.List(ctx, repository.ProgramFilter{AuthorID: author, Difficulty: domain.DifficultyAdvanced})
	require.NoError(t, err)
	assert.True(t, containsProgram(own, privateID))
	assert.False(t, containsProgram(own, publicID))

	require.NoError(t, repo.SetImageKey(ctx, publicID, "programs/cover.jpg"))
	got, err = repo.GetByID(ctx, publicID)
	require.NoError(t, err)
	assert.Equal(t, "programs/cover.jpg", got.ImageKey)
	assert.ErrorIs(t, repo.SetImageKey(ctx, uuid.NewString(), "x"), repository.ErrNotFound)

	authored, err := repo.List(ctx, repository.ProgramFilter{AuthorID: author, AuthoredOnly: true})
	require.NoError(t, err)
	assert.True(t, containsProgram(authored, publicID))
	assert.True(t, containsProgram(authored, privateID))
	others, err := repo.List(ctx, repository.ProgramFilter{AuthorID: uuid.NewString(), AuthoredOnly: true})
	require.NoError(t, err)
	assert.False(t, containsProgram(others, publicID))

	edited := *got
	edited.Title = "Strength II"
	edited.IsPublic = false
	edited.DurationWeeks = nil
	edited.Details = []domain.ProgramDetail{{ExerciseID: "deadlift", DayNumber: 3, Sets: 3, Reps: 5, Order: 1}}
	edited.AuthorID = "someone-else"
	require.NoError(t, repo.Update(ctx, &edited))
	got, err = repo.GetByID(ctx, publicID)
	require.NoError(t, err)
	assert.Equal(t, "Strength II", got.Title)
	assert.False(t, got.IsPublic)
	assert.Equal(t, author, got.AuthorID, "author is not editable")
	assert.Equal(t, "programs/cover.jpg", got.ImageKey)
	assert.Equal(t, 3, got.DayCount())
	missing := edited
	missing.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Update(ctx, &missing), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, privateID))
	_, err = repo.GetByID(ctx, privateID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, privateID), repository.ErrNotFound)
}

func containsProgram(programs []domain.Program, id string) bool {
	for _, p := range programs {
		if p.ID == id {
			return true
		}
	}
	return false
}

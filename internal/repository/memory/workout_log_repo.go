package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// workoutRepo implements repository.WorkoutLogRepository over one partition.
type workoutRepo struct {
	userID string
	part   *partition
	now    func() time.Time
}

func (r *workoutRepo) FindForDay(_ context.Context, userID, programID string, day domain.CalendarDate) (*domain.WorkoutLogEntry, error) {
	if userID != r.userID {
		return nil, errCrossUser
	}
	for _, w := range r.part.workouts {
		if w.ProgramID == programID && w.CompletedDate == day {
			found := copyWorkout(w)
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *workoutRepo) CountForProgram(_ context.Context, userID, programID string) (int64, error) {
	if userID != r.userID {
		return 0, errCrossUser
	}
	var count int64
	for _, w := range r.part.workouts {
		if w.ProgramID == programID {
			count++
		}
	}
	return count, nil
}

func (r *workoutRepo) Insert(_ context.Context, entry *domain.WorkoutLogEntry) error {
	if entry.UserID != r.userID {
		return errCrossUser
	}
	for _, w := range r.part.workouts {
		if w.ProgramID == entry.ProgramID && w.CompletedDate == entry.CompletedDate {
			return repository.ErrConflict
		}
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := r.now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.part.workouts[entry.ID] = copyWorkout(*entry)
	return nil
}

func (r *workoutRepo) Update(_ context.Context, entry *domain.WorkoutLogEntry) error {
	if entry.UserID != r.userID {
		return errCrossUser
	}
	stored, ok := r.part.workouts[entry.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.DurationMinutes = entry.DurationMinutes
	stored.Notes = entry.Notes
	stored.UpdatedAt = r.now()
	entry.UpdatedAt = stored.UpdatedAt
	r.part.workouts[entry.ID] = copyWorkout(stored)
	return nil
}

func (r *workoutRepo) ListHistory(_ context.Context, userID string, filter repository.HistoryFilter) ([]domain.WorkoutLogEntry, error) {
	if userID != r.userID {
		return nil, errCrossUser
	}
	entries := make([]domain.WorkoutLogEntry, 0)
	for _, w := range r.part.workouts {
		if filter.ProgramID != "" && w.ProgramID != filter.ProgramID {
			continue
		}
		entries = append(entries, copyWorkout(w))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CompletedAt.After(entries[j].CompletedAt)
	})

	if filter.Skip > 0 {
		if filter.Skip >= len(entries) {
			return []domain.WorkoutLogEntry{}, nil
		}
		entries = entries[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < len(entries) {
		entries = entries[:filter.Limit]
	}
	return entries, nil
}

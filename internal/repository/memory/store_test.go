package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/repotest"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreTransactor(t *testing.T) {
	repotest.RunTransactorSuite(t, NewStore())
}

func TestStoreUsers(t *testing.T) {
	repotest.RunUserRepositorySuite(t, NewStore().Users())
}

func TestStorePrograms(t *testing.T) {
	repotest.RunProgramRepositorySuite(t, NewStore().Programs())
}

func TestStoreRejectsCrossUserAccess(t *testing.T) {
	s := NewStore()
	err := s.WithinUserTx(context.Background(), "alice", func(ctx context.Context, tx repository.Tx) error {
		_, err := tx.Enrollments().FindActive(ctx, "bob")
		return err
	})
	assert.ErrorIs(t, err, errCrossUser)
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	minutes := 30
	entry := &domain.WorkoutLogEntry{UserID: "u", ProgramID: "p", DayNumber: 1, CompletedDate: "2024-01-01", DurationMinutes: &minutes}

	require.NoError(t, s.WithinUserTx(ctx, "u", func(ctx context.Context, tx repository.Tx) error {
		return tx.Workouts().Insert(ctx, entry)
	}))
	minutes = 99

	require.NoError(t, s.WithinUserTx(ctx, "u", func(ctx context.Context, tx repository.Tx) error {
		got, err := tx.Workouts().FindForDay(ctx, "u", "p", "2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, 30, *got.DurationMinutes)
		return nil
	}))
}

func TestStoreSkipsCancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.WithinUserTx(ctx, "u", func(context.Context, repository.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

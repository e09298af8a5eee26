package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentWeek(t *testing.T) {
	tests := []struct {
		completed int64
		want      int
	}{
		{-1, 1},
		{0, 1},
		{6, 1},
		{7, 2},
		{13, 2},
		{14, 3},
		{70, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CurrentWeek(tt.completed), "completed=%d", tt.completed)
	}
}

func TestISOWeekday(t *testing.T) {
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i+1, ISOWeekday(monday.AddDate(0, 0, i)))
	}
}

func TestTransitions(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)

	e := newEnrollment("u1", "p1", domain.StatusSaved, t0)
	assert.False(t, e.IsActive)
	assert.Nil(t, e.StartDate)

	assert.True(t, recordActivity(e, t0))

	markStarted(e, t0)
	assert.Equal(t, domain.StatusStarted, e.Status)
	assert.True(t, e.IsActive)
	require.NotNil(t, e.StartDate)

	markStarted(e, t1)
	assert.True(t, t0.Equal(*e.StartDate), "start date is kept")
	assert.False(t, recordActivity(e, t1))

	assert.Equal(t, saveBookmark, toggleSave(e, t1))
	assert.Equal(t, domain.StatusSaved, e.Status)
	assert.True(t, e.IsActive)
	assert.Equal(t, saveUnmark, toggleSave(e, t1))
	assert.Equal(t, domain.StatusStarted, e.Status)
	assert.True(t, e.IsActive)
	assert.True(t, t0.Equal(*e.StartDate))

	bookmark := newEnrollment("u1", "p2", domain.StatusSaved, t0)
	assert.Equal(t, saveRemove, toggleSave(bookmark, t1))
	assert.ErrorIs(t, markCompleted(bookmark, t1), ErrInvalidTransition)

	require.NoError(t, markCompleted(e, t1))
	assert.Equal(t, domain.StatusCompleted, e.Status)
	assert.False(t, e.IsActive)
	assert.ErrorIs(t, markCompleted(e, t1), ErrInvalidTransition)
}

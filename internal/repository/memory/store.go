// Package memory is an in-process implementation of the repository
// interfaces. Enrollments and workout logs are partitioned by user; each
// partition is guarded by its own mutex and transactions work on a private
// copy that replaces the committed partition only on success.
package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"sync"
	"time"
)

var errCrossUser = errors.New("memory: transaction is scoped to another user")

type partition struct {
	enrollments map[string]domain.Enrollment
	workouts    map[string]domain.WorkoutLogEntry
}

func newPartition() *partition {
	return &partition{
		enrollments: make(map[string]domain.Enrollment),
		workouts:    make(map[string]domain.WorkoutLogEntry),
	}
}

// clone deep-copies the partition. A nil receiver yields an empty partition.
func (p *partition) clone() *partition {
	cp := newPartition()
	if p == nil {
		return cp
	}
	for id, e := range p.enrollments {
		cp.enrollments[id] = copyEnrollment(e)
	}
	for id, w := range p.workouts {
		cp.workouts[id] = copyWorkout(w)
	}
	return cp
}

// Store keeps all data in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	parts    map[string]*partition
	locks    map[string]*sync.Mutex
	users    map[string]domain.User
	programs map[string]domain.Program
	now      func() time.Time
}

var _ repository.Transactor = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		parts:    make(map[string]*partition),
		locks:    make(map[string]*sync.Mutex),
		users:    make(map[string]domain.User),
		programs: make(map[string]domain.Program),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// WithinUserTx implements repository.Transactor.
func (s *Store) WithinUserTx(ctx context.Context, userID string, fn func(ctx context.Context, tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	working := s.parts[userID].clone()
	s.mu.RUnlock()

	tx := &memTx{
		enrollments: &enrollmentRepo{userID: userID, part: working, now: s.now},
		workouts:    &workoutRepo{userID: userID, part: working, now: s.now},
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	// a request cancelled mid-flight must not leave anything behind
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.parts[userID] = working
	s.mu.Unlock()
	return nil
}

type memTx struct {
	enrollments *enrollmentRepo
	workouts    *workoutRepo
}

func (t *memTx) Enrollments() repository.EnrollmentRepository { return t.enrollments }
func (t *memTx) Workouts() repository.WorkoutLogRepository    { return t.workouts }

func copyEnrollment(e domain.Enrollment) domain.Enrollment {
	if e.StartDate != nil {
		sd := *e.StartDate
		e.StartDate = &sd
	}
	return e
}

func copyWorkout(w domain.WorkoutLogEntry) domain.WorkoutLogEntry {
	if w.DurationMinutes != nil {
		d := *w.DurationMinutes
		w.DurationMinutes = &d
	}
	if w.Notes != nil {
		n := *w.Notes
		w.Notes = &n
	}
	return w
}

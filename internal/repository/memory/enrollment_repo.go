package memory

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// enrollmentRepo implements repository.EnrollmentRepository over one partition.
type enrollmentRepo struct {
	userID string
	part   *partition
	now    func() time.Time
}

func (r *enrollmentRepo) FindActive(_ context.Context, userID string) (*domain.Enrollment, error) {
	if userID != r.userID {
		return nil, errCrossUser
	}
	for _, e := range r.part.enrollments {
		if e.IsActive {
			found := copyEnrollment(e)
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *enrollmentRepo) Find(_ context.Context, userID, programID string) (*domain.Enrollment, error) {
	if userID != r.userID {
		return nil, errCrossUser
	}
	for _, e := range r.part.enrollments {
		if e.ProgramID == programID {
			found := copyEnrollment(e)
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *enrollmentRepo) ListByUser(_ context.Context, userID string, status *domain.ProgramStatus) ([]domain.Enrollment, error) {
	if userID != r.userID {
		return nil, errCrossUser
	}
	enrollments := make([]domain.Enrollment, 0, len(r.part.enrollments))
	for _, e := range r.part.enrollments {
		if status != nil && e.Status != *status {
			continue
		}
		enrollments = append(enrollments, copyEnrollment(e))
	}
	sort.Slice(enrollments, func(i, j int) bool {
		if !enrollments[i].LastInteractionAt.Equal(enrollments[j].LastInteractionAt) {
			return enrollments[i].LastInteractionAt.After(enrollments[j].LastInteractionAt)
		}
		return enrollments[i].ID < enrollments[j].ID
	})
	return enrollments, nil
}

func (r *enrollmentRepo) DeactivateAll(_ context.Context, userID string) error {
	if userID != r.userID {
		return errCrossUser
	}
	for id, e := range r.part.enrollments {
		if e.IsActive {
			e.IsActive = false
			r.part.enrollments[id] = e
		}
	}
	return nil
}

// Upsert enforces the same uniqueness rules as the database indexes.
func (r *enrollmentRepo) Upsert(_ context.Context, enrollment *domain.Enrollment) error {
	if enrollment.UserID != r.userID {
		return errCrossUser
	}
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = r.now()
	}

	for id, e := range r.part.enrollments {
		if id == enrollment.ID {
			continue
		}
		if e.ProgramID == enrollment.ProgramID {
			return repository.ErrConflict
		}
		if e.IsActive && enrollment.IsActive {
			return repository.ErrConflict
		}
	}

	r.part.enrollments[enrollment.ID] = copyEnrollment(*enrollment)
	return nil
}

func (r *enrollmentRepo) Delete(_ context.Context, userID, id string) error {
	if userID != r.userID {
		return errCrossUser
	}
	if _, ok := r.part.enrollments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.part.enrollments, id)
	return nil
}

package postgres

import (
	"alcyxob/fitness-tracker/internal/repository"
	"context"

	"gorm.io/gorm"
)

// Transactor runs tracker operations in a database transaction whose first
// statement takes a transaction-scoped advisory lock on the user id, so one
// user's operations run one at a time while other users proceed in parallel.
type Transactor struct {
	db *gorm.DB
}

var _ repository.Transactor = (*Transactor)(nil)

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinUserTx implements repository.Transactor.
func (t *Transactor) WithinUserTx(ctx context.Context, userID string, fn func(ctx context.Context, tx repository.Tx) error) error {
	err := t.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		if err := gtx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID).Error; err != nil {
			return err
		}
		if err := fn(ctx, &pgTx{db: gtx}); err != nil {
			return err
		}
		// a cancelled caller must not see its work committed
		return ctx.Err()
	})
	return translateError(err)
}

type pgTx struct {
	db *gorm.DB
}

func (t *pgTx) Enrollments() repository.EnrollmentRepository {
	return &enrollmentRepository{db: t.db}
}

func (t *pgTx) Workouts() repository.WorkoutLogRepository {
	return &workoutLogRepository{db: t.db}
}

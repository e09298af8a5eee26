package mongo

import (
	"alcyxob/fitness-tracker/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Transactor runs tracker operations inside multi-document transactions.
// Concurrent transactions of the same user touching the same documents fail
// with a write conflict, and disjoint ones are caught by the partial unique
// index on active enrollments; both surface as repository.ErrConflict.
type Transactor struct {
	client      *mongo.Client
	enrollments *mongo.Collection
	workouts    *mongo.Collection
}

var _ repository.Transactor = (*Transactor)(nil)

// NewTransactor creates a Transactor for the collections of db.
func NewTransactor(client *mongo.Client, db *mongo.Database) *Transactor {
	return &Transactor{
		client:      client,
		enrollments: db.Collection(enrollmentCollectionName),
		workouts:    db.Collection(workoutLogCollectionName),
	}
}

// WithinUserTx implements repository.Transactor. The transaction is not
// retried on transient errors; callers decide whether to re-issue.
func (t *Transactor) WithinUserTx(ctx context.Context, _ string, fn func(ctx context.Context, tx repository.Tx) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())
	if err := session.StartTransaction(txnOpts); err != nil {
		return err
	}

	sessCtx := mongo.NewSessionContext(ctx, session)
	tx := &mongoTx{
		enrollments: &mongoEnrollmentRepository{collection: t.enrollments},
		workouts:    &mongoWorkoutLogRepository{collection: t.workouts},
	}

	if err := fn(sessCtx, tx); err != nil {
		abort(session)
		return err
	}
	if err := ctx.Err(); err != nil {
		abort(session)
		return err
	}
	if err := session.CommitTransaction(sessCtx); err != nil {
		return translateError(err)
	}
	return nil
}

// abort uses a fresh context so a cancelled request still rolls back. The
// server discards the transaction on its own if this fails.
func abort(session mongo.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	_ = session.AbortTransaction(ctx)
}

type mongoTx struct {
	enrollments *mongoEnrollmentRepository
	workouts    *mongoWorkoutLogRepository
}

func (t *mongoTx) Enrollments() repository.EnrollmentRepository { return t.enrollments }
func (t *mongoTx) Workouts() repository.WorkoutLogRepository    { return t.workouts }

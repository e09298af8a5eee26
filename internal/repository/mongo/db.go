package mongo

import (
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// transientTxnLabel marks errors after which the whole transaction may be retried.
const transientTxnLabel = "TransientTransactionError"

// ConnectDB establishes a connection to MongoDB using the provided URI.
// Transactions require the deployment to be a replica set or sharded cluster.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The initial connect can succeed against an unresponsive server, so ping as well.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection used by the service.
// The uniqueness constraints on enrollments and workout logs back the
// tracker's invariants, so a failure here is returned rather than ignored.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var errs []error
	if err := EnsureUserIndexes(ctx, db.Collection(userCollectionName)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", userCollectionName, err))
	}
	if err := EnsureProgramIndexes(ctx, db.Collection(programCollectionName)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", programCollectionName, err))
	}
	if err := EnsureEnrollmentIndexes(ctx, db.Collection(enrollmentCollectionName)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", enrollmentCollectionName, err))
	}
	if err := EnsureWorkoutLogIndexes(ctx, db.Collection(workoutLogCollectionName)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", workoutLogCollectionName, err))
	}
	return errors.Join(errs...)
}

// translateError maps driver errors onto repository errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorLabel(transientTxnLabel) {
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	}
	return err
}

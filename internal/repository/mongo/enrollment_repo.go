// internal/repository/mongo/enrollment_repo.go
package mongo

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const enrollmentCollectionName = "enrollments"

// mongoEnrollmentRepository implements repository.EnrollmentRepository.
// Every filter includes userId so a caller can never reach another user's rows.
type mongoEnrollmentRepository struct {
	collection *mongo.Collection
}

func (r *mongoEnrollmentRepository) FindActive(ctx context.Context, userID string) (*domain.Enrollment, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "isActive": true})
}

func (r *mongoEnrollmentRepository) Find(ctx context.Context, userID, programID string) (*domain.Enrollment, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "programId": programID})
}

func (r *mongoEnrollmentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	if err := r.collection.FindOne(ctx, filter).Decode(&enrollment); err != nil {
		return nil, translateError(err)
	}
	return &enrollment, nil
}

// ListByUser retrieves the user's enrollments, most recent interaction first.
func (r *mongoEnrollmentRepository) ListByUser(ctx context.Context, userID string, status *domain.ProgramStatus) ([]domain.Enrollment, error) {
	filter := bson.M{"userId": userID}
	if status != nil {
		filter["status"] = *status
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "lastInteractionAt", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	enrollments := make([]domain.Enrollment, 0)
	if err = cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// DeactivateAll clears the active flag on every enrollment of the user.
func (r *mongoEnrollmentRepository) DeactivateAll(ctx context.Context, userID string) error {
	filter := bson.M{"userId": userID, "isActive": true}
	update := bson.M{"$set": bson.M{"isActive": false}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return translateError(err)
}

// Upsert replaces the enrollment document, inserting it when it is new.
func (r *mongoEnrollmentRepository) Upsert(ctx context.Context, enrollment *domain.Enrollment) error {
	if enrollment.UserID == "" || enrollment.ProgramID == "" {
		return errors.New("enrollment requires userId and programId")
	}
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = time.Now().UTC()
	}

	filter := bson.M{"_id": enrollment.ID, "userId": enrollment.UserID}
	_, err := r.collection.ReplaceOne(ctx, filter, enrollment, options.Replace().SetUpsert(true))
	return translateError(err)
}

func (r *mongoEnrollmentRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return translateError(err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureEnrollmentIndexes creates the indexes backing the enrollment invariants.
func EnsureEnrollmentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// one enrollment per user and program
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "programId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("ux_user_program"),
		},
		{
			// at most one active enrollment per user
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}).
				SetName("ux_user_active"),
		},
		{
			// "my programs" listing
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "lastInteractionAt", Value: -1}},
			Options: options.Index().SetName("ix_user_last_interaction"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// internal/repository/mongo/workout_log_repo.go
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

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

func (r *mongoWorkoutLogRepository) FindForDay(ctx context.Context, userID, programID string, day domain.CalendarDate) (*domain.WorkoutLogEntry, error) {
	var entry domain.WorkoutLogEntry
	filter := bson.M{"userId": userID, "programId": programID, "completedDate": day}
	if err := r.collection.FindOne(ctx, filter).Decode(&entry); err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

func (r *mongoWorkoutLogRepository) CountForProgram(ctx context.Context, userID, programID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "programId": programID})
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Insert adds a new entry. A second entry for the same user, program and day
// violates ux_user_program_day and is reported as repository.ErrConflict.
func (r *mongoWorkoutLogRepository) Insert(ctx context.Context, entry *domain.WorkoutLogEntry) error {
	if entry.UserID == "" || entry.ProgramID == "" || entry.CompletedDate == "" {
		return errors.New("workout log requires userId, programId and completedDate")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, entry)
	return translateError(err)
}

// Update overwrites the mutable fields of an entry.
func (r *mongoWorkoutLogRepository) Update(ctx context.Context, entry *domain.WorkoutLogEntry) error {
	if entry.ID == "" {
		return errors.New("workout log ID is required for update")
	}
	entry.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": entry.ID, "userId": entry.UserID}
	update := bson.M{
		"$set": bson.M{
			"durationMinutes": entry.DurationMinutes,
			"notes":           entry.Notes,
			"updatedAt":       entry.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkoutLogRepository) ListHistory(ctx context.Context, userID string, filter repository.HistoryFilter) ([]domain.WorkoutLogEntry, error) {
	query := bson.M{"userId": userID}
	if filter.ProgramID != "" {
		query["programId"] = filter.ProgramID
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	if filter.Skip > 0 {
		findOptions.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		findOptions.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	entries := make([]domain.WorkoutLogEntry, 0)
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// one logged session per user, program and calendar day
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "programId", Value: 1},
				{Key: "completedDate", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("ux_user_program_day"),
		},
		{
			// history, newest first
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index().SetName("ix_user_completed_at"),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// internal/repository/mongo/program_repo.go
package mongo

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const programCollectionName = "programs"

// mongoProgramRepository implements repository.ProgramRepository
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new Program repository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.Program) (string, error) {
	if program.AuthorID == "" || program.Title == "" {
		return "", errors.New("program requires authorId and title")
	}
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	if program.Details == nil {
		program.Details = []domain.ProgramDetail{}
	}
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, program); err != nil {
		return "", translateError(err)
	}
	return program.ID, nil
}

// GetByID retrieves a single program by its ID.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	var program domain.Program
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program); err != nil {
		return nil, translateError(err)
	}
	return &program, nil
}

// List retrieves programs matching the filter, newest first.
func (r *mongoProgramRepository) List(ctx context.Context, filter repository.ProgramFilter) ([]domain.Program, error) {
	query := bson.M{}
	if filter.AuthoredOnly {
		query["authorId"] = filter.AuthorID
	} else if filter.PublicOnly || filter.AuthorID == "" {
		query["isPublic"] = true
	} else {
		query["$or"] = bson.A{
			bson.M{"isPublic": true},
			bson.M{"authorId": filter.AuthorID},
		}
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.MuscleGroup != "" {
		query["targetMuscleGroups"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.MuscleGroup), Options: "i"}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Skip > 0 {
		findOptions.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		findOptions.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	programs := make([]domain.Program, 0)
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// SetImageKey records the object key of the program's cover image.
func (r *mongoProgramRepository) SetImageKey(ctx context.Context, id, imageKey string) error {
	update := bson.M{"$set": bson.M{"imageKey": imageKey, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Update overwrites the editable fields of a program.
func (r *mongoProgramRepository) Update(ctx context.Context, program *domain.Program) error {
	if program.Details == nil {
		program.Details = []domain.ProgramDetail{}
	}
	program.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":              program.Title,
		"description":        program.Description,
		"isPublic":           program.IsPublic,
		"difficulty":         program.Difficulty,
		"targetMuscleGroups": program.TargetMuscleGroups,
		"durationWeeks":      program.DurationWeeks,
		"imageUrl":           program.ImageURL,
		"details":            program.Details,
		"updatedAt":          program.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": program.ID}, update)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a program. Enrollments that reference it are kept.
func (r *mongoProgramRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes. Call during startup.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isPublic", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "authorId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type programRepository struct {
	db *gorm.DB
}

func NewProgramRepository(db *gorm.DB) repository.ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) Create(ctx context.Context, program *domain.Program) (string, error) {
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

	if err := r.db.WithContext(ctx).Create(programToRow(program)).Error; err != nil {
		return "", translateError(err)
	}
	return program.ID, nil
}

func (r *programRepository) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	var row programRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.toDomain(), nil
}

func (r *programRepository) List(ctx context.Context, filter repository.ProgramFilter) ([]domain.Program, error) {
	q := r.db.WithContext(ctx)
	if filter.AuthoredOnly {
		q = q.Where("author_id = ?", filter.AuthorID)
	} else if filter.PublicOnly || filter.AuthorID == "" {
		q = q.Where("is_public")
	} else {
		q = q.Where("is_public OR author_id = ?", filter.AuthorID)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.MuscleGroup != "" {
		q = q.Where("target_muscle_groups ILIKE ?", "%"+escapeLike(filter.MuscleGroup)+"%")
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var rows []programRow
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Program, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toDomain())
	}
	return out, nil
}

func (r *programRepository) SetImageKey(ctx context.Context, id, imageKey string) error {
	result := r.db.WithContext(ctx).
		Model(&programRow{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"image_key": imageKey, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// editableProgramColumns are written by Update even when zero.
var editableProgramColumns = []string{
	"title", "description", "is_public", "difficulty", "target_muscle_groups",
	"duration_weeks", "image_url", "details", "updated_at",
}

func (r *programRepository) Update(ctx context.Context, program *domain.Program) error {
	if program.Details == nil {
		program.Details = []domain.ProgramDetail{}
	}
	program.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&programRow{}).
		Where("id = ?", program.ID).
		Select(editableProgramColumns).
		Updates(programToRow(program))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *programRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&programRow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

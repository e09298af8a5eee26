package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type enrollmentRepository struct {
	db *gorm.DB
}

func (r *enrollmentRepository) FindActive(ctx context.Context, userID string) (*domain.Enrollment, error) {
	var row enrollmentRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active", userID).
		Take(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	return row.toDomain(), nil
}

func (r *enrollmentRepository) Find(ctx context.Context, userID, programID string) (*domain.Enrollment, error) {
	var row enrollmentRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND program_id = ?", userID, programID).
		Take(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	return row.toDomain(), nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID string, status *domain.ProgramStatus) ([]domain.Enrollment, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}
	var rows []enrollmentRow
	if err := q.Order("last_interaction_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Enrollment, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toDomain())
	}
	return out, nil
}

func (r *enrollmentRepository) DeactivateAll(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&enrollmentRow{}).
		Where("user_id = ? AND is_active", userID).
		Update("is_active", false).Error
}

// Upsert inserts or fully replaces the row with the enrollment's ID.
func (r *enrollmentRepository) Upsert(ctx context.Context, enrollment *domain.Enrollment) error {
	if enrollment.UserID == "" || enrollment.ProgramID == "" {
		return errors.New("enrollment requires userId and programId")
	}
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = time.Now().UTC()
	}
	row := enrollmentToRow(enrollment)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "is_active", "start_date", "last_interaction_at",
			}),
		}).
		Create(row).Error
	return translateError(err)
}

func (r *enrollmentRepository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&enrollmentRow{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

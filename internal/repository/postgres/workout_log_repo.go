package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workoutLogRepository struct {
	db *gorm.DB
}

func (r *workoutLogRepository) FindForDay(ctx context.Context, userID, programID string, day domain.CalendarDate) (*domain.WorkoutLogEntry, error) {
	var row workoutLogRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND program_id = ? AND completed_date = ?", userID, programID, string(day)).
		Take(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	return row.toDomain(), nil
}

func (r *workoutLogRepository) CountForProgram(ctx context.Context, userID, programID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&workoutLogRow{}).
		Where("user_id = ? AND program_id = ?", userID, programID).
		Count(&count).Error
	return count, err
}

func (r *workoutLogRepository) Insert(ctx context.Context, entry *domain.WorkoutLogEntry) error {
	if entry.UserID == "" || entry.ProgramID == "" || entry.CompletedDate == "" {
		return errors.New("workout log requires userId, programId and completedDate")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return translateError(r.db.WithContext(ctx).Create(workoutLogToRow(entry)).Error)
}

func (r *workoutLogRepository) Update(ctx context.Context, entry *domain.WorkoutLogEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&workoutLogRow{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]interface{}{
			"duration_minutes": entry.DurationMinutes,
			"notes":            entry.Notes,
			"updated_at":       entry.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutLogRepository) ListHistory(ctx context.Context, userID string, filter repository.HistoryFilter) ([]domain.WorkoutLogEntry, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.ProgramID != "" {
		q = q.Where("program_id = ?", filter.ProgramID)
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var rows []workoutLogRow
	if err := q.Order("completed_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.WorkoutLogEntry, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toDomain())
	}
	return out, nil
}

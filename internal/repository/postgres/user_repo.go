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

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return "", errors.New("user email, password hash, and role are required")
	}
	user.ID = uuid.NewString()
	user.Email = strings.ToLower(user.Email)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(userToRow(user)).Error; err != nil {
		return "", translateError(err)
	}
	return user.ID, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).Take(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.toDomain(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return row.toDomain(), nil
}

func (r *userRepository) SetCurrentProgram(ctx context.Context, userID, programID string, startDate *time.Time) error {
	var current *string
	if programID != "" {
		current = &programID
	} else {
		startDate = nil
	}
	result := r.db.WithContext(ctx).
		Model(&userRow{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"current_program_id":         current,
			"current_program_start_date": startDate,
			"updated_at":                 time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Package postgres implements the repository interfaces on PostgreSQL via gorm.
package postgres

import (
	"alcyxob/fitness-tracker/internal/repository"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Open connects to PostgreSQL. Driver errors are translated so that unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates every table plus the partial unique index that
// allows a single active enrollment per user.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userRow{},
		&programRow{},
		&enrollmentRow{},
		&workoutLogRow{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS ux_enrollments_active_user
		ON enrollments (user_id)
		WHERE is_active
	`).Error; err != nil {
		return fmt.Errorf("failed to create ux_enrollments_active_user: %w", err)
	}
	return nil
}

// translateError maps gorm errors onto repository errors.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	default:
		return err
	}
}

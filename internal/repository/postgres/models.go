package postgres

import (
	"alcyxob/fitness-tracker/internal/domain"
	"time"
)

type userRow struct {
	ID                      string `gorm:"primaryKey;type:text"`
	Name                    string
	Email                   string `gorm:"not null;uniqueIndex:ux_users_email"`
	PasswordHash            string `gorm:"not null"`
	Role                    string `gorm:"not null;index"`
	CurrentProgramID        *string
	CurrentProgramStartDate *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (userRow) TableName() string { return "users" }

func userToRow(u *domain.User) *userRow {
	row := &userRow{
		ID:                      u.ID,
		Name:                    u.Name,
		Email:                   u.Email,
		PasswordHash:            u.PasswordHash,
		Role:                    string(u.Role),
		CurrentProgramStartDate: u.CurrentProgramStartDate,
		CreatedAt:               u.CreatedAt,
		UpdatedAt:               u.UpdatedAt,
	}
	if u.CurrentProgramID != "" {
		row.CurrentProgramID = &u.CurrentProgramID
	}
	return row
}

func (r *userRow) toDomain() *domain.User {
	u := &domain.User{
		ID:                      r.ID,
		Name:                    r.Name,
		Email:                   r.Email,
		PasswordHash:            r.PasswordHash,
		Role:                    domain.Role(r.Role),
		CurrentProgramStartDate: r.CurrentProgramStartDate,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
	if r.CurrentProgramID != nil {
		u.CurrentProgramID = *r.CurrentProgramID
	}
	return u
}

type programRow struct {
	ID                 string `gorm:"primaryKey;type:text"`
	AuthorID           string `gorm:"not null;index"`
	Title              string `gorm:"not null;index"`
	Description        string
	IsPublic           bool   `gorm:"not null;index:ix_programs_public_created,priority:1"`
	Difficulty         string `gorm:"index"`
	TargetMuscleGroups string
	DurationWeeks      *int
	ImageKey           string
	ImageURL           string
	Details            []domain.ProgramDetail `gorm:"type:jsonb;serializer:json"`
	CreatedAt          time.Time              `gorm:"index:ix_programs_public_created,priority:2,sort:desc"`
	UpdatedAt          time.Time
}

func (programRow) TableName() string { return "programs" }

func programToRow(p *domain.Program) *programRow {
	return &programRow{
		ID:                 p.ID,
		AuthorID:           p.AuthorID,
		Title:              p.Title,
		Description:        p.Description,
		IsPublic:           p.IsPublic,
		Difficulty:         p.Difficulty,
		TargetMuscleGroups: p.TargetMuscleGroups,
		DurationWeeks:      p.DurationWeeks,
		ImageKey:           p.ImageKey,
		ImageURL:           p.ImageURL,
		Details:            p.Details,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (r *programRow) toDomain() *domain.Program {
	details := r.Details
	if details == nil {
		details = []domain.ProgramDetail{}
	}
	return &domain.Program{
		ID:                 r.ID,
		AuthorID:           r.AuthorID,
		Title:              r.Title,
		Description:        r.Description,
		IsPublic:           r.IsPublic,
		Difficulty:         r.Difficulty,
		TargetMuscleGroups: r.TargetMuscleGroups,
		DurationWeeks:      r.DurationWeeks,
		ImageKey:           r.ImageKey,
		ImageURL:           r.ImageURL,
		Details:            details,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

type enrollmentRow struct {
	ID                string `gorm:"primaryKey;type:text"`
	UserID            string `gorm:"not null;uniqueIndex:ux_enrollments_user_program,priority:1;index:ix_enrollments_user_last,priority:1"`
	ProgramID         string `gorm:"not null;uniqueIndex:ux_enrollments_user_program,priority:2"`
	Status            string `gorm:"not null"`
	IsActive          bool   `gorm:"not null"`
	StartDate         *time.Time
	LastInteractionAt time.Time `gorm:"not null;index:ix_enrollments_user_last,priority:2,sort:desc"`
	CreatedAt         time.Time
}

func (enrollmentRow) TableName() string { return "enrollments" }

func enrollmentToRow(e *domain.Enrollment) *enrollmentRow {
	return &enrollmentRow{
		ID:                e.ID,
		UserID:            e.UserID,
		ProgramID:         e.ProgramID,
		Status:            string(e.Status),
		IsActive:          e.IsActive,
		StartDate:         e.StartDate,
		LastInteractionAt: e.LastInteractionAt,
		CreatedAt:         e.CreatedAt,
	}
}

func (r *enrollmentRow) toDomain() *domain.Enrollment {
	return &domain.Enrollment{
		ID:                r.ID,
		UserID:            r.UserID,
		ProgramID:         r.ProgramID,
		Status:            domain.ProgramStatus(r.Status),
		IsActive:          r.IsActive,
		StartDate:         r.StartDate,
		LastInteractionAt: r.LastInteractionAt,
		CreatedAt:         r.CreatedAt,
	}
}

type workoutLogRow struct {
	ID              string    `gorm:"primaryKey;type:text"`
	UserID          string    `gorm:"not null;uniqueIndex:ux_workout_logs_user_program_day,priority:1;index:ix_workout_logs_user_completed,priority:1"`
	ProgramID       string    `gorm:"not null;uniqueIndex:ux_workout_logs_user_program_day,priority:2"`
	CompletedDate   string    `gorm:"type:char(10);not null;uniqueIndex:ux_workout_logs_user_program_day,priority:3"`
	DayNumber       int       `gorm:"not null"`
	CompletedAt     time.Time `gorm:"not null;index:ix_workout_logs_user_completed,priority:2,sort:desc"`
	DurationMinutes *int
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (workoutLogRow) TableName() string { return "workout_logs" }

func workoutLogToRow(w *domain.WorkoutLogEntry) *workoutLogRow {
	return &workoutLogRow{
		ID:              w.ID,
		UserID:          w.UserID,
		ProgramID:       w.ProgramID,
		CompletedDate:   string(w.CompletedDate),
		DayNumber:       w.DayNumber,
		CompletedAt:     w.CompletedAt,
		DurationMinutes: w.DurationMinutes,
		Notes:           w.Notes,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func (r *workoutLogRow) toDomain() *domain.WorkoutLogEntry {
	return &domain.WorkoutLogEntry{
		ID:              r.ID,
		UserID:          r.UserID,
		ProgramID:       r.ProgramID,
		DayNumber:       r.DayNumber,
		CompletedAt:     r.CompletedAt,
		CompletedDate:   domain.CalendarDate(r.CompletedDate),
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

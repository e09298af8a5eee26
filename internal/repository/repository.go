package repository

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"
	"time"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint or
	// loses a race against a concurrent transaction.
	ErrConflict = RepositoryError("conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// SetCurrentProgram updates the profile mirror of the active program.
	SetCurrentProgram(ctx context.Context, userID, programID string, startDate *time.Time) error
}

// ProgramFilter narrows a program listing.
type ProgramFilter struct {
	PublicOnly bool
	AuthorID   string // with PublicOnly=false: public programs plus this author's own
	// AuthoredOnly restricts the listing to AuthorID's programs, private ones included.
	AuthoredOnly bool
	Difficulty   string
	MuscleGroup  string // case-insensitive substring of TargetMuscleGroups
	Skip         int
	Limit        int
}

// ProgramRepository stores the program catalog.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	List(ctx context.Context, filter ProgramFilter) ([]domain.Program, error)
	// Update overwrites the editable fields of an existing program. AuthorID,
	// ImageKey and CreatedAt are left as stored.
	Update(ctx context.Context, program *domain.Program) error
	SetImageKey(ctx context.Context, id, imageKey string) error
	Delete(ctx context.Context, id string) error
}

// EnrollmentRepository stores per-user program enrollments. Every method is
// scoped to a single user.
type EnrollmentRepository interface {
	// FindActive returns the user's active enrollment or ErrNotFound.
	FindActive(ctx context.Context, userID string) (*domain.Enrollment, error)
	Find(ctx context.Context, userID, programID string) (*domain.Enrollment, error)
	// ListByUser returns the user's enrollments, most recent interaction first.
	// A nil status lists all of them.
	ListByUser(ctx context.Context, userID string, status *domain.ProgramStatus) ([]domain.Enrollment, error)
	DeactivateAll(ctx context.Context, userID string) error
	// Upsert inserts the enrollment, assigning an ID when empty, or replaces the
	// stored one with the same ID.
	Upsert(ctx context.Context, enrollment *domain.Enrollment) error
	Delete(ctx context.Context, userID, id string) error
}

// HistoryFilter selects a page of workout history.
type HistoryFilter struct {
	ProgramID string // empty means all programs
	Skip      int
	Limit     int
}

// WorkoutLogRepository is the ledger of completed workouts.
type WorkoutLogRepository interface {
	FindForDay(ctx context.Context, userID, programID string, day domain.CalendarDate) (*domain.WorkoutLogEntry, error)
	CountForProgram(ctx context.Context, userID, programID string) (int64, error)
	Insert(ctx context.Context, entry *domain.WorkoutLogEntry) error
	Update(ctx context.Context, entry *domain.WorkoutLogEntry) error
	// ListHistory returns entries newest CompletedAt first.
	ListHistory(ctx context.Context, userID string, filter HistoryFilter) ([]domain.WorkoutLogEntry, error)
}

// Tx exposes the stores bound to one unit of work.
type Tx interface {
	Enrollments() EnrollmentRepository
	Workouts() WorkoutLogRepository
}

// Transactor runs fn atomically against a single user's enrollments and
// workout log. Mutations made through tx are committed only if fn returns nil
// and ctx is still live; otherwise everything is rolled back. Calls for the
// same user are serialised, calls for different users never contend.
type Transactor interface {
	WithinUserTx(ctx context.Context, userID string, fn func(ctx context.Context, tx Tx) error) error
}

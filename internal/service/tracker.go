package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"strings"
	"time"
)

const (
	defaultHistoryLimit = 50
	maxNotesLength      = 2000
)

// ProgramCatalog is the read-only view of training programs used by the
// tracker. Get fails with an error matching repository.ErrNotFound for an
// unknown program.
type ProgramCatalog interface {
	Exists(ctx context.Context, programID string) (bool, error)
	Get(ctx context.Context, programID string) (*domain.Program, error)
}

// ProgramTracker manages which programs a user follows and their logged workouts.
type ProgramTracker interface {
	StartProgram(ctx context.Context, userID, programID string) (*domain.Enrollment, error)
	GetActiveProgram(ctx context.Context, userID string) (*domain.Program, error)
	GetScheduleStatus(ctx context.Context, userID string) (*ScheduleStatus, error)
	LogWorkout(ctx context.Context, userID string, input LogWorkoutInput) (*domain.WorkoutLogEntry, error)
	ToggleSaved(ctx context.Context, userID, programID string) (*SaveToggleResult, error)
	ListMyPrograms(ctx context.Context, userID string, status *domain.ProgramStatus) ([]MyProgram, error)
	GetWorkoutHistory(ctx context.Context, userID string, query HistoryQuery) ([]domain.WorkoutLogEntry, error)
	CompleteProgram(ctx context.Context, userID, programID string) (*domain.Enrollment, error)
}

// ScheduleStatus is the progress summary of the active program.
type ScheduleStatus struct {
	ProgramID         string     `json:"programId"`
	CurrentWeek       int        `json:"currentWeek"`
	CurrentDayOfWeek  int        `json:"currentDayOfWeek"` // 1=Monday..7=Sunday
	CompletedWorkouts int64      `json:"completedWorkouts"`
	IsCompletedToday  bool       `json:"isCompletedToday"`
	StartDate         *time.Time `json:"startDate,omitempty"`
}

// SaveToggleResult reports the state left by ToggleSaved.
type SaveToggleResult struct {
	IsSaved        bool                 `json:"isSaved"`
	PreviousStatus domain.ProgramStatus `json:"previousStatus,omitempty"` // empty when there was no enrollment
}

// LogWorkoutInput describes one completed workout. CompletedAt defaults to now.
type LogWorkoutInput struct {
	ProgramID       string
	DayNumber       int
	CompletedAt     *time.Time
	DurationMinutes *int
	Notes           *string
}

// HistoryQuery selects a page of workout history. A zero Limit selects the
// configured default and larger values are capped at the configured maximum.
type HistoryQuery struct {
	ProgramID string
	Skip      int
	Limit     int
}

// MyProgram pairs an enrollment with its program. Program is nil when the
// program is no longer in the catalog.
type MyProgram struct {
	Enrollment domain.Enrollment `json:"enrollment"`
	Program    *domain.Program   `json:"program,omitempty"`
}

// TrackerOptions carries the tracker's tunables.
type TrackerOptions struct {
	Location            *time.Location // calendar days are computed here, UTC when nil
	HistoryDefaultLimit int
	HistoryMaxLimit     int
}

type programTracker struct {
	tx           repository.Transactor
	catalog      ProgramCatalog
	users        repository.UserRepository // profile mirror, optional
	clock        Clock
	loc          *time.Location
	historyLimit int
	historyMax   int
	metrics      *metrics.Manager
	log          *logger.Logger
}

// NewProgramTracker creates the tracker. users may be nil, which disables the
// profile mirror of the active program.
func NewProgramTracker(
	tx repository.Transactor,
	catalog ProgramCatalog,
	users repository.UserRepository,
	clock Clock,
	opts TrackerOptions,
	m *metrics.Manager,
	log *logger.Logger,
) ProgramTracker {
	if clock == nil {
		clock = SystemClock{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	limit := opts.HistoryDefaultLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	maxLimit := opts.HistoryMaxLimit
	if maxLimit < limit {
		maxLimit = limit
	}
	return &programTracker{
		tx:           tx,
		catalog:      catalog,
		users:        users,
		clock:        clock,
		loc:          loc,
		historyLimit: limit,
		historyMax:   maxLimit,
		metrics:      m,
		log:          log.With("service", "ProgramTracker"),
	}
}

// mirrorUpdate is the profile mirror to write once a transaction committed.
type mirrorUpdate struct {
	programID string // empty clears the mirror
	startDate *time.Time
}

// StartProgram makes programID the user's single active program.
func (s *programTracker) StartProgram(ctx context.Context, userID, programID string) (enrollment *domain.Enrollment, err error) {
	defer func() { s.observe("start_program", err) }()

	if err := validateIDs(userID, programID); err != nil {
		return nil, err
	}
	if err := s.requireProgram(ctx, programID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	err = s.tx.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
		if err := tx.Enrollments().DeactivateAll(ctx, userID); err != nil {
			return err
		}
		e, err := findEnrollment(ctx, tx, userID, programID)
		if err != nil {
			return err
		}
		if e == nil {
			e = newEnrollment(userID, programID, domain.StatusStarted, now)
		}
		markStarted(e, now)
		if err := tx.Enrollments().Upsert(ctx, e); err != nil {
			return err
		}
		enrollment = e
		return nil
	})
	if err != nil {
		return nil, storeError("start program", err)
	}

	s.log.Info("Program started", "userId", userID, "programId", programID)
	s.mirror(ctx, userID, &mirrorUpdate{programID: programID, startDate: enrollment.StartDate})
	return enrollment, nil
}

// GetActiveProgram returns the active program's definition, or nil when the
// user has none.
func (s *programTracker) GetActiveProgram(ctx context.Context, userID string) (program *domain.Program, err error) {
	defer func() { s.observe("get_active_program", err) }()

	if userID == "" {
		return nil, invalid("userId", "must not be empty")
	}

	var active *domain.Enrollment
	err = s.tx.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
		e, err := tx.Enrollments().FindActive(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		active = e
		return err
	})
	if err != nil {
		return nil, storeError("get active program", err)
	}
	if active == nil {
		return nil, nil
	}

	program, err = s.catalog.Get(ctx, active.ProgramID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("Active enrollment references a missing program", "userId", userID, "programId", active.ProgramID)
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, err
	}
	return program, nil
}

// GetScheduleStatus summarises progress on the active program, or returns
// nil when the user has none.
func (s *programTracker) GetScheduleStatus(ctx context.Context, userID string) (status *ScheduleStatus, err error) {
	defer func() { s.observe("get_schedule_status", err) }()

	if userID == "" {
		return nil, invalid("userId", "must not be empty")
	}

	now := s.clock.Now().In(s.loc)
	today := domain.CalendarDateOf(now, s.loc)

	err = s.tx.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
		active, err := tx.Enrollments().FindActive(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		completed, err := tx.Workouts().CountForProgram(ctx, userID, active.ProgramID)
		if err != nil {
			return err
		}
		todays, err := tx.Workouts().FindForDay(ctx, userID, active.ProgramID, today)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		status = &ScheduleStatus{
			ProgramID:         active.ProgramID,
			CurrentWeek:       CurrentWeek(completed),
			CurrentDayOfWeek:  ISOWeekday(now),
			CompletedWorkouts: completed,
			IsCompletedToday:  todays != nil,
			StartDate:         active.StartDate,
		}
		return nil
	})
	if err != nil {
		return nil, storeError("get schedule status", err)
	}
	return status, nil
}

// LogWorkout records a workout for the calendar day of CompletedAt. A second
// log on the same day updates the existing entry instead of adding one.
func (s *programTracker) LogWorkout(ctx context.Context, userID string, input LogWorkoutInput) (entry *domain.WorkoutLogEntry, err error) {
	defer func() { s.observe("log_workout", err) }()

	if err := validateLogWorkout(userID, input); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	completedAt := now
	if input.CompletedAt != nil {
		completedAt = input.CompletedAt.UTC()
	}
	day := domain.CalendarDateOf(completedAt, s.loc)

	var (
		mirror  *mirrorUpdate
		updated bool
	)
	outer := ctx
	err = s.tx.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
		existing, err := tx.Workouts().FindForDay(ctx, userID, input.ProgramID, day)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		e, err := findEnrollment(ctx, tx, userID, input.ProgramID)
		if err != nil {
			return err
		}
		var promote bool
		if e == nil {
			if err := s.requireProgram(outer, input.ProgramID); err != nil {
				return err
			}
			e = newEnrollment(userID, input.ProgramID, domain.StatusStarted, now)
			promote = true
		} else {
			promote = recordActivity(e, now)
		}
		if promote {
			if err := tx.Enrollments().DeactivateAll(ctx, userID); err != nil {
				return err
			}
			markStarted(e, now)
			mirror = &mirrorUpdate{programID: e.ProgramID, startDate: e.StartDate}
		}
		if err := tx.Enrollments().Upsert(ctx, e); err != nil {
			return err
		}

		if existing != nil {
			existing.DurationMinutes = input.DurationMinutes
			existing.Notes = input.Notes
			if err := tx.Workouts().Update(ctx, existing); err != nil {
				return err
			}
			entry, updated = existing, true
			return nil
		}

		created := &domain.WorkoutLogEntry{
			UserID:          userID,
			ProgramID:       input.ProgramID,
			DayNumber:       input.DayNumber,
			CompletedAt:     completedAt,
			CompletedDate:   day,
			DurationMinutes: input.DurationMinutes,
			Notes:           input.Notes,
		}
		if err := tx.Workouts().Insert(ctx, created); err != nil {
			return err
		}
		entry = created
		return nil
	})
	if err != nil {
		return nil, storeError("log workout", err)
	}

	kind := "created"
	if updated {
		kind = "updated"
	}
	s.metrics.CounterWorkoutLogged.WithLabelValues(kind).Inc()
	s.log.Debug("Workout logged", "userId", userID, "programId", input.ProgramID, "day", day, "kind", kind)
	s.mirror(ctx, userID, mirror)
	return entry, nil
}

// ToggleSaved bookmarks a program, or removes a bookmark that carries no
// progress. It is not idempotent and must not be retried automatically.
func (s *programTracker) ToggleSaved(ctx context.Context, userID, programID string) (result *SaveToggleResult, err error) {
	defer func() { s.observe("toggle_saved", err) }()

	if err := validateIDs(userID, programID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	outer := ctx
	var mirror *mirrorUpdate
	err = s.tx.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
		e, err := findEnrollment(ctx, tx, userID, programID)
		if err != nil {
			return err
		}
		if e == nil {
			if err := s.requireProgram(outer, programID); err != nil {
				return err
			}
			if err := tx.Enrollments().Upsert(ctx, newEnrollment(userID, programID, domain.StatusSaved, now)); err != nil {
				return err
			}
			result = &SaveToggleResult{IsSaved: true}
			return nil
		}

		previous := e.Status
		switch toggleSave(e, now) {
		case saveRemove:
			if err := tx.Enrollments().Delete(ctx, userID, e.ID); err != nil {
				return err
			}
			if e.IsActive {
				mirror = &mirrorUpdate{}
			}
			result = &SaveToggleResult{IsSaved: false, PreviousStatus: previous}
		case saveUnmark:
			if err := tx.Enrollments().Upsert(ctx, e); err != nil {
				return err
			}
			result = &SaveToggleResult{IsSaved: false, PreviousStatus: previous}
		default:
			if err := tx.Enrollments().Upsert(ctx, e); err != nil {
				return err
			}
			result = &SaveToggleResult{IsSaved: true, PreviousStatus: previous}
		}
		return nil
	})
	if err != nil {
		return nil, storeError("toggle saved", err)
	}

	s.mirror(ctx, userID, mirror)
	return result, nil
}

// ListMyPrograms returns the user's enrollments with their programs, most
// recent interaction first. A nil status lists every enrollment.
func (s *programTracker) ListMyPrograms(ctx context.Context, userID string, status *domain.ProgramStatus) (programs []MyProgram, err error) {
	defer func() { s.observe("list_my_programs", err) }()

	if userID == "" {
		return nil, invalid("userId", "must not be empty")
	}
	if status != nil && !status.IsValid() {
		return nil, invalid("status", "must be one of started, saved, completed")
	}

	var enrollments []domain.Enrollment
	err = s.tx.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
		var err error
		enrollments, err = tx.Enrollments().ListByUser(ctx, userID, status)
		return err
	})
	if err != nil {
		return nil, storeError("list my programs", err)
	}

	programs = make([]MyProgram, 0, len(enrollments))
	for _, e := range enrollments {
		item := MyProgram{Enrollment: e}
		program, err := s.catalog.Get(ctx, e.ProgramID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.log.Warn("Enrollment references a missing program", "userId", userID, "programId", e.ProgramID)
		case err != nil:
			return nil, err
		default:
			item.Program = program
		}
		programs = append(programs, item)
	}
	return programs, nil
}

// GetWorkoutHistory returns logged workouts, newest first.
func (s *programTracker) GetWorkoutHistory(ctx context.Context, userID string, query HistoryQuery) (history []domain.WorkoutLogEntry, err error) {
	defer func() { s.observe("get_workout_history", err) }()

	if userID == "" {
		return nil, invalid("userId", "must not be empty")
	}
	if query.Skip < 0 {
		return nil, invalid("skip", "must not be negative")
	}
	if query.Limit < 0 {
		return nil, invalid("limit", "must not be negative")
	}
	limit := query.Limit
	if limit == 0 {
		limit = s.historyLimit
	}
	if limit > s.historyMax {
		limit = s.historyMax
	}

	err = s.tx.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
		var err error
		history, err = tx.Workouts().ListHistory(ctx, userID, repository.HistoryFilter{
			ProgramID: query.ProgramID,
			Skip:      query.Skip,
			Limit:     limit,
		})
		return err
	})
	if err != nil {
		return nil, storeError("get workout history", err)
	}
	if history == nil {
		history = []domain.WorkoutLogEntry{}
	}
	return history, nil
}

// CompleteProgram marks a started program as completed. A completed program
// is no longer active.
func (s *programTracker) CompleteProgram(ctx context.Context, userID, programID string) (enrollment *domain.Enrollment, err error) {
	defer func() { s.observe("complete_program", err) }()

	if err := validateIDs(userID, programID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var mirror *mirrorUpdate
	err = s.tx.WithinUserTx(ctx, userID, func(ctx context.Context, tx repository.Tx) error {
		e, err := findEnrollment(ctx, tx, userID, programID)
		if err != nil {
			return err
		}
		if e == nil {
			return ErrEnrollmentNotFound
		}
		wasActive := e.IsActive
		if err := markCompleted(e, now); err != nil {
			return err
		}
		if err := tx.Enrollments().Upsert(ctx, e); err != nil {
			return err
		}
		if wasActive {
			mirror = &mirrorUpdate{}
		}
		enrollment = e
		return nil
	})
	if err != nil {
		return nil, storeError("complete program", err)
	}

	s.log.Info("Program completed", "userId", userID, "programId", programID)
	s.mirror(ctx, userID, mirror)
	return enrollment, nil
}

// requireProgram fails with ErrProgramNotFound for programs missing from the catalog.
func (s *programTracker) requireProgram(ctx context.Context, programID string) error {
	exists, err := s.catalog.Exists(ctx, programID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProgramNotFound
	}
	return nil
}

// mirror copies the active program onto the user profile. The enrollment is
// authoritative, so a failed write is only logged.
func (s *programTracker) mirror(ctx context.Context, userID string, update *mirrorUpdate) {
	if update == nil || s.users == nil {
		return
	}
	if err := s.users.SetCurrentProgram(ctx, userID, update.programID, update.startDate); err != nil {
		s.log.Warn("Failed to mirror current program onto profile", "userId", userID, "programId", update.programID, "error", err)
	}
}

func (s *programTracker) observe(op string, err error) {
	outcome := metrics.OutcomeOK
	var validationErr *ValidationError
	switch {
	case err == nil:
	case errors.As(err, &validationErr):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, ErrProgramNotFound), errors.Is(err, ErrEnrollmentNotFound):
		outcome = metrics.OutcomeNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidTransition):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeError
		s.log.Error("Tracker operation failed", "operation", op, "error", err)
	}
	s.metrics.CounterTrackerOps.WithLabelValues(op, outcome).Inc()
}

// findEnrollment returns nil when the user has no enrollment for programID.
func findEnrollment(ctx context.Context, tx repository.Tx, userID, programID string) (*domain.Enrollment, error) {
	e, err := tx.Enrollments().Find(ctx, userID, programID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return e, err
}

func validateIDs(userID, programID string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("userId", "must not be empty")
	}
	if strings.TrimSpace(programID) == "" {
		return invalid("programId", "must not be empty")
	}
	return nil
}

func validateLogWorkout(userID string, input LogWorkoutInput) error {
	if err := validateIDs(userID, input.ProgramID); err != nil {
		return err
	}
	if input.DayNumber < 1 {
		return invalid("dayNumber", "must be at least 1")
	}
	if input.DurationMinutes != nil && *input.DurationMinutes < 0 {
		return invalid("durationMinutes", "must not be negative")
	}
	if input.Notes != nil && len(*input.Notes) > maxNotesLength {
		return invalid("notes", "must be at most 2000 characters")
	}
	return nil
}

package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrForbidden       = errors.New("operation not permitted for this user")
	ErrStorageDisabled = errors.New("object storage is not configured")
)

const (
	defaultProgramPageSize = 20
	maxProgramPageSize     = 100
)

// coverContentTypes maps accepted cover image types to object key extensions.
var coverContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Viewer identifies the caller of a catalog operation.
type Viewer struct {
	UserID string
	Role   domain.Role
}

func (v Viewer) isAdmin() bool {
	return v.Role == domain.RoleAdmin
}

// CatalogReader is the cached program lookup shared with the tracker.
type CatalogReader interface {
	ProgramCatalog
	Invalidate(programID string)
}

// CreateProgramInput carries a new program definition.
type CreateProgramInput struct {
	Title              string
	Description        string
	IsPublic           bool
	Difficulty         string
	TargetMuscleGroups string
	DurationWeeks      *int
	ImageURL           string
	Details            []domain.ProgramDetail
}

// UpdateProgramInput is a partial program edit. Nil fields are left
// unchanged; a non-nil empty Details clears the program's days.
type UpdateProgramInput struct {
	Title              *string
	Description        *string
	IsPublic           *bool
	Difficulty         *string
	TargetMuscleGroups *string
	DurationWeeks      *int
	ImageURL           *string
	Details            []domain.ProgramDetail
}

// ProgramQuery filters the program listing.
type ProgramQuery struct {
	Difficulty  string
	MuscleGroup string
	Skip        int
	Limit       int
}

// CoverUpload tells the client where to PUT a cover image.
type CoverUpload struct {
	UploadURL   string `json:"uploadUrl"`
	ObjectKey   string `json:"objectKey"`
	ContentType string `json:"contentType"`
}

type ProgramService interface {
	CreateProgram(ctx context.Context, viewer Viewer, input CreateProgramInput) (*domain.Program, error)
	GetProgram(ctx context.Context, viewer Viewer, programID string) (*domain.Program, error)
	ListPrograms(ctx context.Context, viewer Viewer, query ProgramQuery) ([]domain.Program, error)
	// ListAuthoredPrograms returns the viewer's own programs, private ones included.
	ListAuthoredPrograms(ctx context.Context, viewer Viewer, query ProgramQuery) ([]domain.Program, error)
	UpdateProgram(ctx context.Context, viewer Viewer, programID string, input UpdateProgramInput) (*domain.Program, error)
	// DeleteProgram removes a program. Enrollments and workout logs that
	// reference it are kept.
	DeleteProgram(ctx context.Context, viewer Viewer, programID string) error
	RequestCoverUpload(ctx context.Context, viewer Viewer, programID, contentType string) (*CoverUpload, error)
}

type programService struct {
	programs repository.ProgramRepository
	catalog  CatalogReader
	media    storage.FileStorage // nil when object storage is disabled
	log      *logger.Logger
}

// NewProgramService creates the catalog service. media may be nil.
func NewProgramService(programs repository.ProgramRepository, catalog CatalogReader, media storage.FileStorage, log *logger.Logger) ProgramService {
	return &programService{
		programs: programs,
		catalog:  catalog,
		media:    media,
		log:      log.With("service", "ProgramService"),
	}
}

func (s *programService) CreateProgram(ctx context.Context, viewer Viewer, input CreateProgramInput) (*domain.Program, error) {
	if !viewer.isAdmin() {
		return nil, ErrForbidden
	}
	if err := validateProgramInput(input); err != nil {
		return nil, err
	}

	program := &domain.Program{
		AuthorID:           viewer.UserID,
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		IsPublic:           input.IsPublic,
		Difficulty:         input.Difficulty,
		TargetMuscleGroups: input.TargetMuscleGroups,
		DurationWeeks:      input.DurationWeeks,
		ImageURL:           input.ImageURL,
		Details:            input.Details,
	}
	if program.Details == nil {
		program.Details = []domain.ProgramDetail{}
	}

	id, err := s.programs.Create(ctx, program)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}
	program.ID = id
	s.log.Info("Program created", "programId", id, "authorId", viewer.UserID, "days", program.DayCount())
	return program, nil
}

// GetProgram hides private programs from everyone but their author and admins.
func (s *programService) GetProgram(ctx context.Context, viewer Viewer, programID string) (*domain.Program, error) {
	if strings.TrimSpace(programID) == "" {
		return nil, invalid("programId", "must not be empty")
	}
	program, err := s.catalog.Get(ctx, programID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	if !program.IsPublic && program.AuthorID != viewer.UserID && !viewer.isAdmin() {
		return nil, ErrProgramNotFound
	}
	return program, nil
}

// ListPrograms returns public programs plus the viewer's own, newest first.
func (s *programService) ListPrograms(ctx context.Context, viewer Viewer, query ProgramQuery) ([]domain.Program, error) {
	filter, err := programFilter(query)
	if err != nil {
		return nil, err
	}
	filter.PublicOnly = viewer.UserID == ""
	filter.AuthorID = viewer.UserID
	return s.list(ctx, filter)
}

func (s *programService) ListAuthoredPrograms(ctx context.Context, viewer Viewer, query ProgramQuery) ([]domain.Program, error) {
	if viewer.UserID == "" {
		return nil, invalid("userId", "must not be empty")
	}
	filter, err := programFilter(query)
	if err != nil {
		return nil, err
	}
	filter.AuthorID = viewer.UserID
	filter.AuthoredOnly = true
	return s.list(ctx, filter)
}

func (s *programService) list(ctx context.Context, filter repository.ProgramFilter) ([]domain.Program, error) {
	programs, err := s.programs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}

	if s.media != nil {
		for i := range programs {
			if programs[i].ImageKey == "" {
				continue
			}
			url, err := s.media.GeneratePresignedDownloadURL(ctx, programs[i].ImageKey, storage.DefaultPresignedURLExpiry)
			if err != nil {
				s.log.Warn("Failed to presign cover image", "programId", programs[i].ID, "error", err)
				continue
			}
			programs[i].ImageURL = url
		}
	}
	return programs, nil
}

// UpdateProgram applies a partial edit. Only the author or an admin may edit.
func (s *programService) UpdateProgram(ctx context.Context, viewer Viewer, programID string, input UpdateProgramInput) (*domain.Program, error) {
	program, err := s.editable(ctx, viewer, programID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		program.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		program.Description = *input.Description
	}
	if input.IsPublic != nil {
		program.IsPublic = *input.IsPublic
	}
	if input.Difficulty != nil {
		program.Difficulty = *input.Difficulty
	}
	if input.TargetMuscleGroups != nil {
		program.TargetMuscleGroups = *input.TargetMuscleGroups
	}
	if input.DurationWeeks != nil {
		program.DurationWeeks = input.DurationWeeks
	}
	if input.ImageURL != nil {
		program.ImageURL = *input.ImageURL
	}
	if input.Details != nil {
		program.Details = input.Details
	}
	if err := validateProgramInput(CreateProgramInput{
		Title:         program.Title,
		Difficulty:    program.Difficulty,
		DurationWeeks: program.DurationWeeks,
		Details:       program.Details,
	}); err != nil {
		return nil, err
	}

	err = s.programs.Update(ctx, program)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update program: %w", err)
	}
	s.catalog.Invalidate(program.ID)
	s.log.Info("Program updated", "programId", program.ID, "userId", viewer.UserID)
	return program, nil
}

// DeleteProgram removes the program and its cover image. Only the author or
// an admin may delete.
func (s *programService) DeleteProgram(ctx context.Context, viewer Viewer, programID string) error {
	program, err := s.editable(ctx, viewer, programID)
	if err != nil {
		return err
	}

	err = s.programs.Delete(ctx, program.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgramNotFound
	}
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	s.catalog.Invalidate(program.ID)
	s.log.Info("Program deleted", "programId", program.ID, "userId", viewer.UserID)

	if program.ImageKey != "" && s.media != nil {
		if err := s.media.DeleteObject(ctx, program.ImageKey); err != nil {
			s.log.Warn("Failed to delete cover", "programId", program.ID, "key", program.ImageKey, "error", err)
		}
	}
	return nil
}

// editable loads a program the viewer may change. Programs the viewer cannot
// see report as not found.
func (s *programService) editable(ctx context.Context, viewer Viewer, programID string) (*domain.Program, error) {
	if strings.TrimSpace(programID) == "" {
		return nil, invalid("programId", "must not be empty")
	}
	program, err := s.programs.GetByID(ctx, programID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	if program.AuthorID == viewer.UserID || viewer.isAdmin() {
		return program, nil
	}
	if !program.IsPublic {
		return nil, ErrProgramNotFound
	}
	return nil, ErrForbidden
}

// RequestCoverUpload points the program at a fresh object key and returns a
// presigned PUT URL for it. The previous cover object is removed.
func (s *programService) RequestCoverUpload(ctx context.Context, viewer Viewer, programID, contentType string) (*CoverUpload, error) {
	if !viewer.isAdmin() {
		return nil, ErrForbidden
	}
	if s.media == nil {
		return nil, ErrStorageDisabled
	}
	ext, ok := coverContentTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, invalid("contentType", "must be image/jpeg, image/png or image/webp")
	}

	program, err := s.programs.GetByID(ctx, programID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}

	key := fmt.Sprintf("programs/%s/cover-%s.%s", program.ID, uuid.NewString(), ext)
	uploadURL, err := s.media.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	if err := s.programs.SetImageKey(ctx, program.ID, key); err != nil {
		return nil, fmt.Errorf("set image key: %w", err)
	}
	s.catalog.Invalidate(program.ID)

	if program.ImageKey != "" {
		if err := s.media.DeleteObject(ctx, program.ImageKey); err != nil {
			s.log.Warn("Failed to delete previous cover", "programId", program.ID, "key", program.ImageKey, "error", err)
		}
	}
	return &CoverUpload{UploadURL: uploadURL, ObjectKey: key, ContentType: contentType}, nil
}

func programFilter(query ProgramQuery) (repository.ProgramFilter, error) {
	if query.Skip < 0 {
		return repository.ProgramFilter{}, invalid("skip", "must not be negative")
	}
	if query.Limit < 0 {
		return repository.ProgramFilter{}, invalid("limit", "must not be negative")
	}
	if query.Difficulty != "" && !validDifficulty(query.Difficulty) {
		return repository.ProgramFilter{}, invalid("difficulty", "must be beginner, intermediate or advanced")
	}
	limit := query.Limit
	if limit == 0 {
		limit = defaultProgramPageSize
	}
	if limit > maxProgramPageSize {
		limit = maxProgramPageSize
	}
	return repository.ProgramFilter{
		Difficulty:  query.Difficulty,
		MuscleGroup: strings.TrimSpace(query.MuscleGroup),
		Skip:        query.Skip,
		Limit:       limit,
	}, nil
}

func validDifficulty(d string) bool {
	switch d {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
		return true
	}
	return false
}

func validateProgramInput(input CreateProgramInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return invalid("title", "must not be empty")
	}
	if input.Difficulty != "" && !validDifficulty(input.Difficulty) {
		return invalid("difficulty", "must be beginner, intermediate or advanced")
	}
	if input.DurationWeeks != nil && *input.DurationWeeks < 1 {
		return invalid("durationWeeks", "must be at least 1")
	}
	for i, d := range input.Details {
		field := fmt.Sprintf("details[%d]", i)
		switch {
		case strings.TrimSpace(d.ExerciseID) == "":
			return invalid(field+".exerciseId", "must not be empty")
		case d.DayNumber < 1:
			return invalid(field+".dayNumber", "must be at least 1")
		case d.Sets < 1:
			return invalid(field+".sets", "must be at least 1")
		case d.Reps < 1:
			return invalid(field+".reps", "must be at least 1")
		case d.RestTime != nil && *d.RestTime < 0:
			return invalid(field+".restTime", "must not be negative")
		}
	}
	return nil
}

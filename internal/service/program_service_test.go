package service_test

import (
	"alcyxob/fitness-tracker/internal/catalog"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/service"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMedia struct {
	mu      sync.Mutex
	deleted []string
}

func (m *recordingMedia) GeneratePresignedUploadURL(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	return "https://upload.example.com/" + key + "?type=" + contentType, nil
}

func (m *recordingMedia) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func (m *recordingMedia) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, key)
	m.mu.Unlock()
	return nil
}

var (
	admin  = service.Viewer{UserID: "admin", Role: domain.RoleAdmin}
	member = service.Viewer{UserID: "member", Role: domain.RoleUser}
)

func newProgramService(t *testing.T, media *recordingMedia) service.ProgramService {
	t.Helper()
	store := memory.NewStore()
	opts := []catalog.Option{catalog.WithCache(1024*1024, time.Minute)}
	var files storage.FileStorage
	if media != nil {
		files = media
		opts = append(opts, catalog.WithMedia(media))
	}
	cat := catalog.New(store.Programs(), metrics.NewTestManager(), logger.NewNop(), opts...)
	return service.NewProgramService(store.Programs(), cat, files, logger.NewNop())
}

func strengthInput() service.CreateProgramInput {
	return service.CreateProgramInput{
		Title:              "Strength Basics",
		IsPublic:           true,
		Difficulty:         domain.DifficultyBeginner,
		TargetMuscleGroups: "legs,back",
		DurationWeeks:      intPtr(6),
		Details: []domain.ProgramDetail{
			{ExerciseID: "squat", DayNumber: 1, Sets: 5, Reps: 5, Order: 1},
			{ExerciseID: "deadlift", DayNumber: 2, Sets: 3, Reps: 5, Order: 1},
		},
	}
}

func TestProgramService_CreateRequiresAdmin(t *testing.T) {
	svc := newProgramService(t, nil)

	_, err := svc.CreateProgram(context.Background(), member, strengthInput())
	assert.ErrorIs(t, err, service.ErrForbidden)

	program, err := svc.CreateProgram(context.Background(), admin, strengthInput())
	require.NoError(t, err)
	assert.NotEmpty(t, program.ID)
	assert.Equal(t, "admin", program.AuthorID)
	assert.Equal(t, 2, program.DayCount())
}

func TestProgramService_CreateValidation(t *testing.T) {
	svc := newProgramService(t, nil)
	tests := []struct {
		name  string
		edit  func(*service.CreateProgramInput)
		field string
	}{
		{"title", func(in *service.CreateProgramInput) { in.Title = " " }, "title"},
		{"difficulty", func(in *service.CreateProgramInput) { in.Difficulty = "extreme" }, "difficulty"},
		{"weeks", func(in *service.CreateProgramInput) { in.DurationWeeks = intPtr(0) }, "durationWeeks"},
		{"day", func(in *service.CreateProgramInput) { in.Details[1].DayNumber = 0 }, "details[1].dayNumber"},
		{"exercise", func(in *service.CreateProgramInput) { in.Details[0].ExerciseID = "" }, "details[0].exerciseId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strengthInput()
			tt.edit(&input)
			_, err := svc.CreateProgram(context.Background(), admin, input)
			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestProgramService_PrivateProgramsAreHidden(t *testing.T) {
	svc := newProgramService(t, nil)
	ctx := context.Background()
	input := strengthInput()
	input.IsPublic = false
	private, err := svc.CreateProgram(ctx, admin, input)
	require.NoError(t, err)
	public, err := svc.CreateProgram(ctx, admin, strengthInput())
	require.NoError(t, err)

	_, err = svc.GetProgram(ctx, member, private.ID)
	assert.ErrorIs(t, err, service.ErrProgramNotFound)
	got, err := svc.GetProgram(ctx, admin, private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	listed, err := svc.ListPrograms(ctx, member, service.ProgramQuery{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, public.ID, listed[0].ID)

	_, err = svc.GetProgram(ctx, member, "missing")
	assert.ErrorIs(t, err, service.ErrProgramNotFound)
}

func TestProgramService_ListFilters(t *testing.T) {
	svc := newProgramService(t, nil)
	ctx := context.Background()
	_, err := svc.CreateProgram(ctx, admin, strengthInput())
	require.NoError(t, err)
	cardio := strengthInput()
	cardio.Title = "Cardio"
	cardio.Difficulty = domain.DifficultyAdvanced
	cardio.TargetMuscleGroups = "Heart,Lungs"
	_, err = svc.CreateProgram(ctx, admin, cardio)
	require.NoError(t, err)

	byDifficulty, err := svc.ListPrograms(ctx, member, service.ProgramQuery{Difficulty: domain.DifficultyAdvanced})
	require.NoError(t, err)
	require.Len(t, byDifficulty, 1)
	assert.Equal(t, "Cardio", byDifficulty[0].Title)

	byMuscle, err := svc.ListPrograms(ctx, member, service.ProgramQuery{MuscleGroup: "BACK"})
	require.NoError(t, err)
	require.Len(t, byMuscle, 1)
	assert.Equal(t, "Strength Basics", byMuscle[0].Title)

	_, err = svc.ListPrograms(ctx, member, service.ProgramQuery{Difficulty: "extreme"})
	var validationErr *service.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestProgramService_RequestCoverUpload(t *testing.T) {
	media := &recordingMedia{}
	svc := newProgramService(t, media)
	ctx := context.Background()
	program, err := svc.CreateProgram(ctx, admin, strengthInput())
	require.NoError(t, err)

	// prime the catalog cache so the new key must invalidate it
	_, err = svc.GetProgram(ctx, member, program.ID)
	require.NoError(t, err)

	first, err := svc.RequestCoverUpload(ctx, admin, program.ID, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ObjectKey, "programs/"+program.ID+"/cover-"))
	assert.True(t, strings.HasSuffix(first.ObjectKey, ".png"))
	assert.Contains(t, first.UploadURL, first.ObjectKey)

	got, err := svc.GetProgram(ctx, member, program.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+first.ObjectKey, got.ImageURL)

	listed, err := svc.ListPrograms(ctx, member, service.ProgramQuery{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, got.ImageURL, listed[0].ImageURL)

	second, err := svc.RequestCoverUpload(ctx, admin, program.ID, "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, first.ObjectKey, second.ObjectKey)
	assert.Equal(t, []string{first.ObjectKey}, media.deleted)

	_, err = svc.RequestCoverUpload(ctx, admin, program.ID, "image/gif")
	var validationErr *service.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	_, err = svc.RequestCoverUpload(ctx, member, program.ID, "image/png")
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = svc.RequestCoverUpload(ctx, admin, "missing", "image/png")
	assert.ErrorIs(t, err, service.ErrProgramNotFound)
}

func TestProgramService_CoverUploadNeedsStorage(t *testing.T) {
	svc := newProgramService(t, nil)

	_, err := svc.RequestCoverUpload(context.Background(), admin, "p1", "image/png")
	assert.ErrorIs(t, err, service.ErrStorageDisabled)
}

func TestProgramService_UpdateProgram(t *testing.T) {
	svc := newProgramService(t, nil)
	ctx := context.Background()
	program, err := svc.CreateProgram(ctx, admin, strengthInput())
	require.NoError(t, err)

	// cached read before the edit
	_, err = svc.GetProgram(ctx, member, program.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateProgram(ctx, admin, program.ID, service.UpdateProgramInput{
		Title:      strPtr("  Strength Plus "),
		Difficulty: strPtr(domain.DifficultyIntermediate),
		Details:    []domain.ProgramDetail{{ExerciseID: "press", DayNumber: 4, Sets: 4, Reps: 6}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Strength Plus", updated.Title)
	assert.Equal(t, 4, updated.DayCount())
	assert.Equal(t, 6, *updated.DurationWeeks, "unset fields are kept")

	got, err := svc.GetProgram(ctx, member, program.ID)
	require.NoError(t, err)
	assert.Equal(t, "Strength Plus", got.Title)
	assert.Equal(t, domain.DifficultyIntermediate, got.Difficulty)

	_, err = svc.UpdateProgram(ctx, admin, program.ID, service.UpdateProgramInput{IsPublic: boolPtr(false)})
	require.NoError(t, err)
	_, err = svc.GetProgram(ctx, member, program.ID)
	assert.ErrorIs(t, err, service.ErrProgramNotFound, "made private")
}

func TestProgramService_UpdateProgramRules(t *testing.T) {
	svc := newProgramService(t, nil)
	ctx := context.Background()
	public, err := svc.CreateProgram(ctx, admin, strengthInput())
	require.NoError(t, err)
	privateInput := strengthInput()
	privateInput.IsPublic = false
	private, err := svc.CreateProgram(ctx, admin, privateInput)
	require.NoError(t, err)

	_, err = svc.UpdateProgram(ctx, member, public.ID, service.UpdateProgramInput{Title: strPtr("Mine")})
	assert.ErrorIs(t, err, service.ErrForbidden)
	_, err = svc.UpdateProgram(ctx, member, private.ID, service.UpdateProgramInput{Title: strPtr("Mine")})
	assert.ErrorIs(t, err, service.ErrProgramNotFound)
	_, err = svc.UpdateProgram(ctx, admin, "missing", service.UpdateProgramInput{})
	assert.ErrorIs(t, err, service.ErrProgramNotFound)

	otherAdmin := service.Viewer{UserID: "admin-2", Role: domain.RoleAdmin}
	_, err = svc.UpdateProgram(ctx, otherAdmin, public.ID, service.UpdateProgramInput{Title: strPtr(" ")})
	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	_, err = svc.UpdateProgram(ctx, otherAdmin, public.ID, service.UpdateProgramInput{
		Details: []domain.ProgramDetail{{ExerciseID: "squat", DayNumber: 1, Sets: 0, Reps: 5}},
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "details[0].sets", validationErr.Field)
}

func TestProgramService_DeleteProgram(t *testing.T) {
	media := &recordingMedia{}
	svc := newProgramService(t, media)
	ctx := context.Background()
	program, err := svc.CreateProgram(ctx, admin, strengthInput())
	require.NoError(t, err)
	upload, err := svc.RequestCoverUpload(ctx, admin, program.ID, "image/webp")
	require.NoError(t, err)
	_, err = svc.GetProgram(ctx, member, program.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteProgram(ctx, member, program.ID), service.ErrForbidden)
	require.NoError(t, svc.DeleteProgram(ctx, admin, program.ID))
	assert.Equal(t, []string{upload.ObjectKey}, media.deleted)

	_, err = svc.GetProgram(ctx, member, program.ID)
	assert.ErrorIs(t, err, service.ErrProgramNotFound, "cached entry was dropped")
	assert.ErrorIs(t, svc.DeleteProgram(ctx, admin, program.ID), service.ErrProgramNotFound)
}

func TestProgramService_ListAuthoredPrograms(t *testing.T) {
	svc := newProgramService(t, nil)
	ctx := context.Background()
	privateInput := strengthInput()
	privateInput.IsPublic = false
	private, err := svc.CreateProgram(ctx, admin, privateInput)
	require.NoError(t, err)
	_, err = svc.CreateProgram(ctx, admin, strengthInput())
	require.NoError(t, err)

	own, err := svc.ListAuthoredPrograms(ctx, admin, service.ProgramQuery{})
	require.NoError(t, err)
	assert.Len(t, own, 2)

	none, err := svc.ListAuthoredPrograms(ctx, member, service.ProgramQuery{})
	require.NoError(t, err)
	assert.Empty(t, none)

	page, err := svc.ListAuthoredPrograms(ctx, admin, service.ProgramQuery{Limit: 1, Skip: 1})
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.True(t, containsID(own, private.ID))

	_, err = svc.ListAuthoredPrograms(ctx, service.Viewer{}, service.ProgramQuery{})
	var validationErr *service.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func containsID(programs []domain.Program, id string) bool {
	for _, p := range programs {
		if p.ID == id {
			return true
		}
	}
	return false
}

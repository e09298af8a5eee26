package catalog_test

import (
	"alcyxob/fitness-tracker/internal/catalog"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/mocks"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeMedia struct {
	err error
}

func (f fakeMedia) GeneratePresignedUploadURL(context.Context, string, string, time.Duration) (string, error) {
	return "", errors.New("unused")
}

func (f fakeMedia) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + key + "?sig=1", nil
}

func (f fakeMedia) DeleteObject(context.Context, string) error { return nil }

func testProgram() *domain.Program {
	weeks := 4
	return &domain.Program{
		ID:            "p1",
		AuthorID:      "admin",
		Title:         "Strength",
		IsPublic:      true,
		DurationWeeks: &weeks,
		ImageKey:      "programs/p1/cover.jpg",
		Details:       []domain.ProgramDetail{{ExerciseID: "squat", DayNumber: 1, Sets: 5, Reps: 5}},
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCatalog_GetCachesPrograms(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockProgramRepository(ctrl)
	m := metrics.NewTestManager()
	c := catalog.New(repoMock, m, logger.NewNop(), catalog.WithCache(1024*1024, time.Minute))

	repoMock.EXPECT().GetByID(gomock.Any(), "p1").Return(testProgram(), nil).Times(1)

	first, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	second, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Strength", second.Title)
	assert.Equal(t, "programs/p1/cover.jpg", second.ImageKey)
	require.NotNil(t, second.DurationWeeks)
	assert.Equal(t, 4, *second.DurationWeeks)
	assert.Equal(t, first.Details, second.Details)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCatalogCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterCatalogCache.WithLabelValues("miss")))
}

func TestCatalog_MissingProgramsAreNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockProgramRepository(ctrl)
	c := catalog.New(repoMock, metrics.NewTestManager(), logger.NewNop(), catalog.WithCache(1024*1024, time.Minute))

	gomock.InOrder(
		repoMock.EXPECT().GetByID(gomock.Any(), "p1").Return(nil, repository.ErrNotFound),
		repoMock.EXPECT().GetByID(gomock.Any(), "p1").Return(testProgram(), nil),
	)

	exists, err := c.Exists(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = c.Exists(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCatalog_InvalidateReloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockProgramRepository(ctrl)
	c := catalog.New(repoMock, metrics.NewTestManager(), logger.NewNop(), catalog.WithCache(1024*1024, time.Minute))

	updated := testProgram()
	updated.Title = "Strength v2"
	gomock.InOrder(
		repoMock.EXPECT().GetByID(gomock.Any(), "p1").Return(testProgram(), nil),
		repoMock.EXPECT().GetByID(gomock.Any(), "p1").Return(updated, nil),
	)

	_, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	c.Invalidate("p1")
	got, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Strength v2", got.Title)
}

func TestCatalog_ExistsPropagatesStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockProgramRepository(ctrl)
	c := catalog.New(repoMock, metrics.NewTestManager(), logger.NewNop())

	storeErr := errors.New("connection reset")
	repoMock.EXPECT().GetByID(gomock.Any(), "p1").Return(nil, storeErr)

	_, err := c.Exists(context.Background(), "p1")
	assert.ErrorIs(t, err, storeErr)
}

func TestCatalog_HydratesCoverImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockProgramRepository(ctrl)
	c := catalog.New(repoMock, metrics.NewTestManager(), logger.NewNop(), catalog.WithMedia(fakeMedia{}))

	repoMock.EXPECT().GetByID(gomock.Any(), "p1").Return(testProgram(), nil)

	got, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/programs/p1/cover.jpg?sig=1", got.ImageURL)
}

func TestCatalog_HydrationFailureKeepsProgram(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockProgramRepository(ctrl)
	c := catalog.New(repoMock, metrics.NewTestManager(), logger.NewNop(), catalog.WithMedia(fakeMedia{err: errors.New("no creds")}))

	repoMock.EXPECT().GetByID(gomock.Any(), "p1").Return(testProgram(), nil)

	got, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, got.ImageURL)
}

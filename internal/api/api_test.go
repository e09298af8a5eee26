package api_test

import (
	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/catalog"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

type staticClock struct{ now time.Time }

func (c staticClock) Now() time.Time { return c.now }

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	store := memory.NewStore()
	m := metrics.NewTestManager()
	cat := catalog.New(store.Programs(), m, log)
	auth := service.NewAuthService(store.Users(), "api-test-secret", time.Hour, []string{"admin@example.com"}, log)
	tracker := service.NewProgramTracker(store, cat, store.Users(),
		staticClock{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}, service.TrackerOptions{}, m, log)

	router := gin.New()
	api.SetupRoutes(router, api.RouterConfig{
		AuthService:    auth,
		ProgramService: service.NewProgramService(store.Programs(), cat, nil, log),
		Tracker:        tracker,
		Metrics:        m,
		AllowedOrigins: []string{"http://localhost:3000"},
		Logger:         log,
	})
	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Test", "email": email, "password": "long-password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "long-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (s *testServer) seedProgram(t *testing.T, id string) {
	t.Helper()
	_, err := s.store.Programs().Create(context.Background(), &domain.Program{ID: id, Title: "Program " + id, IsPublic: true})
	require.NoError(t, err)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/schedule/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/schedule/status", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_ScheduleFlow(t *testing.T) {
	s := newTestServer(t)
	s.seedProgram(t, "p1")
	s.seedProgram(t, "p2")
	token := s.login(t, "ann@example.com")

	w := s.do(t, http.MethodGet, "/api/v1/schedule/active", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	w = s.do(t, http.MethodPost, "/api/v1/schedule/start/p1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/v1/schedule/start/p2", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/schedule/active", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p2", decode[domain.Program](t, w).ID)

	w = s.do(t, http.MethodPost, "/api/v1/schedule/log", token, map[string]interface{}{
		"programId":       "p2",
		"dayNumber":       1,
		"completedAt":     "2024-01-01T08:00:00Z",
		"durationMinutes": 40,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/schedule/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[service.ScheduleStatus](t, w)
	assert.Equal(t, int64(1), status.CompletedWorkouts)
	assert.Equal(t, 1, status.CurrentWeek)
	assert.True(t, status.IsCompletedToday)

	w = s.do(t, http.MethodGet, "/api/v1/schedule/history?programId=p2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.WorkoutLogEntry](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p2", decode[api.UserResponse](t, w).CurrentProgramID)

	w = s.do(t, http.MethodPost, "/api/v1/schedule/complete/p2", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, "/api/v1/schedule/complete/p2", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRoutes_ErrorMapping(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "ann@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/schedule/start/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/schedule/log", token, map[string]interface{}{"programId": "p1", "dayNumber": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "dayNumber", decode[map[string]interface{}](t, w)["field"])

	w = s.do(t, http.MethodGet, "/api/v1/schedule/history?limit=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/my-programs?status=paused", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/schedule/complete/never", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Again", "email": "ann@example.com", "password": "long-password",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRoutes_MyPrograms(t *testing.T) {
	s := newTestServer(t)
	s.seedProgram(t, "p1")
	token := s.login(t, "ann@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/my-programs/save/p1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[service.SaveToggleResult](t, w).IsSaved)

	w = s.do(t, http.MethodGet, "/api/v1/my-programs?status=saved", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]service.MyProgram](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, "p1", mine[0].Enrollment.ProgramID)
	require.NotNil(t, mine[0].Program)
	assert.Equal(t, "Program p1", mine[0].Program.Title)

	w = s.do(t, http.MethodPost, "/api/v1/my-programs/save/p1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[service.SaveToggleResult](t, w).IsSaved)
}

func TestRoutes_ProgramAdmin(t *testing.T) {
	s := newTestServer(t)
	userToken := s.login(t, "ann@example.com")
	adminToken := s.login(t, "admin@example.com")
	body := map[string]interface{}{
		"title":      "Push Pull Legs",
		"isPublic":   true,
		"difficulty": "intermediate",
		"details": []map[string]interface{}{
			{"exerciseId": "bench", "dayNumber": 1, "sets": 4, "reps": 8},
		},
	}

	w := s.do(t, http.MethodPost, "/api/v1/programs", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/programs", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Program](t, w)

	w = s.do(t, http.MethodGet, "/api/v1/programs/"+created.ID, userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Push Pull Legs", decode[domain.Program](t, w).Title)

	w = s.do(t, http.MethodGet, "/api/v1/programs?difficulty=intermediate", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Program](t, w), 1)

	w = s.do(t, http.MethodPost, "/api/v1/programs/"+created.ID+"/cover-upload-url", adminToken, map[string]string{"contentType": "image/png"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutes_ProgramEditing(t *testing.T) {
	s := newTestServer(t)
	userToken := s.login(t, "ann@example.com")
	adminToken := s.login(t, "admin@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/programs", adminToken, map[string]interface{}{"title": "Base", "isPublic": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Program](t, w)

	w = s.do(t, http.MethodPost, "/api/v1/schedule/start/"+created.ID, userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/programs/authored", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Program](t, w), 1)

	w = s.do(t, http.MethodPatch, "/api/v1/programs/"+created.ID, userToken, map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/programs/"+created.ID, adminToken, map[string]string{"difficulty": "extreme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/programs/"+created.ID, adminToken, map[string]string{"title": "Base v2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Base v2", decode[domain.Program](t, w).Title)

	w = s.do(t, http.MethodDelete, "/api/v1/programs/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/schedule/active", userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/programs/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_MetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/ping", "", nil)

	w := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fitness_tracker_test_request")
}

func TestRoutes_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/schedule/status", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCounters(t *testing.T) {
	m := NewTestManager()

	m.CounterTrackerOps.WithLabelValues("start_program", OutcomeOK).Inc()
	m.CounterTrackerOps.WithLabelValues("start_program", OutcomeOK).Inc()
	m.CounterTrackerOps.WithLabelValues("start_program", OutcomeNotFound).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterTrackerOps.WithLabelValues("start_program", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterTrackerOps.WithLabelValues("start_program", OutcomeNotFound)))
}

func TestManagerHandler(t *testing.T) {
	m := NewTestManager()
	m.CounterWorkoutLogged.WithLabelValues("created").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `fitness_tracker_test_workouts_logged{kind="created"} 1`))
}

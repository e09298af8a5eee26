package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded by CounterTrackerOps.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

type Manager struct {
	// counters
	CounterRequests      *prometheus.CounterVec
	CounterTrackerOps    *prometheus.CounterVec
	CounterWorkoutLogged *prometheus.CounterVec
	CounterCatalogCache  *prometheus.CounterVec

	// histograms
	HistRequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

func NewTestManager() *Manager {
	m, _ := NewTestManagerAndRegistry()
	return m
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitness_tracker", "test", reg, reg), reg
}

// NewProductionManager registers the service metrics and the Go runtime and
// process collectors on a private registry.
func NewProductionManager(namespace string) *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewManager(namespace, "server", reg, reg)
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "route", "status"})
	counterTrackerOps := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "tracker_operations",
		Help:      "Program tracker operations by outcome",
	}, []string{"operation", "outcome"})
	counterWorkoutLogged := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_logged",
		Help:      "Logged workouts, split into new entries and same-day updates",
	}, []string{"kind"})
	counterCatalogCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "catalog_cache",
		Help:      "Program catalog cache lookups by result",
	}, []string{"result"})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		},
		[]string{"route"},
	)

	return &Manager{
		CounterRequests:      counterRequests,
		CounterTrackerOps:    counterTrackerOps,
		CounterWorkoutLogged: counterWorkoutLogged,
		CounterCatalogCache:  counterCatalogCache,
		HistRequestDuration:  histReqDuration,
		gatherer:             gatherer,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

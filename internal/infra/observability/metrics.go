package observability

import (
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the tracker BFA.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	externalErrors    *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	projectOps        *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	seedRuns          prometheus.Counter
	listFallbacks     prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_external_errors_total",
				Help: "Total errors from the hosted data backend.",
			},
			[]string{"collection"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		projectOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_project_operations_total",
				Help: "Total project mutations by kind.",
			},
			[]string{"op"},
		),
		statusTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_status_transitions_total",
				Help: "Total kanban status transitions by destination column.",
			},
			[]string{"to"},
		),
		seedRuns: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_sample_seed_runs_total",
				Help: "Total sample-data seed runs that inserted projects.",
			},
		),
		listFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_list_fallbacks_total",
				Help: "Total project list reads served from the built-in sample dataset.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter for a collection.
func (m *Metrics) IncrExternalError(collection string) {
	m.externalErrors.WithLabelValues(collection).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrProjectOp counts a project mutation ("create", "update", "delete", "move").
func (m *Metrics) IncrProjectOp(op string) {
	m.projectOps.WithLabelValues(op).Inc()
}

// IncrStatusTransition counts a kanban move into the given column.
func (m *Metrics) IncrStatusTransition(to domain.Status) {
	m.statusTransitions.WithLabelValues(string(to)).Inc()
}

// IncrSeedRun counts a sample-data seed that actually inserted projects.
func (m *Metrics) IncrSeedRun() {
	m.seedRuns.Inc()
}

// IncrListFallback counts a list read answered from the sample dataset.
func (m *Metrics) IncrListFallback() {
	m.listFallbacks.Inc()
}

// GetBoardSnapshot returns a snapshot of board-related metrics suitable for
// the GET /v1/metrics/board endpoint.
func (m *Metrics) GetBoardSnapshot() *domain.BoardMetrics {
	created := getCounterValue(m.projectOps, "create")
	deleted := getCounterValue(m.projectOps, "delete")

	var transitions float64
	for _, s := range domain.StatusColumns {
		transitions += getCounterValue(m.statusTransitions, string(s))
	}

	hits := getCounterValue(m.cacheHits, "projects")
	misses := getCounterValue(m.cacheMisses, "projects")
	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return &domain.BoardMetrics{
		ProjectsCreated:   int64(created),
		ProjectsDeleted:   int64(deleted),
		StatusTransitions: int64(transitions),
		SeedRuns:          int64(counterValue(m.seedRuns)),
		ListFallbacks:     int64(counterValue(m.listFallbacks)),
		CacheHitRate:      hitRate,
		Period:            "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

func counterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

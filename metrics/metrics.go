package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker/v2"
)

const namespace = "cinematch"

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the recommender's collectors on one registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	resultsReturned    prometheus.Histogram
	boostedCandidates  *prometheus.CounterVec
	catalogueEntries   prometheus.Gauge
	catalogueBuildTime prometheus.Gauge
	breakerState       *prometheus.GaugeVec
	breakerTransitions *prometheus.CounterVec
}

// New registers the recommender collectors on reg.
// A nil reg gets a fresh registry with Go and process collectors.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests by intent and outcome",
		}, []string{"intent", "outcome"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Recommendation latency in seconds by intent",
			Buckets:   prometheus.DefBuckets,
		}, []string{"intent"}),

		resultsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_results",
			Help:      "Number of rows returned per recommendation",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		}),

		boostedCandidates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boosted_candidates_total",
			Help:      "Total number of candidates that received a score boost",
		}, []string{"intent"}),

		catalogueEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalogue_entries",
			Help:      "Number of entries in the loaded catalogue",
		}),

		catalogueBuildTime: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalogue_build_seconds",
			Help:      "Time spent embedding and indexing the catalogue at startup",
		}),

		breakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "embedder_breaker_state",
			Help:      "Embedding circuit breaker state (0=closed, 1=half-open, 2=open)",
		}, []string{"breaker"}),

		breakerTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedder_breaker_transitions_total",
			Help:      "Total number of embedding circuit breaker state changes",
		}, []string{"breaker", "to"}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SetCatalogue records the size of the loaded catalogue and how long it
// took to build.
func (m *Metrics) SetCatalogue(entries int, buildTime time.Duration) {
	m.catalogueEntries.Set(float64(entries))
	m.catalogueBuildTime.Set(buildTime.Seconds())
}

// ObserveBreaker records a circuit breaker transition. Its signature
// matches ai.StateChangeFunc.
func (m *Metrics) ObserveBreaker(name string, _, to gobreaker.State) {
	m.breakerState.WithLabelValues(name).Set(float64(to))
	m.breakerTransitions.WithLabelValues(name, to.String()).Inc()
}

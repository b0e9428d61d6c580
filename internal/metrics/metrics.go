package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the bot
type MetricsRegistry struct {
	Gatherer prometheus.Gatherer

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Discord Metrics
	InteractionsTotal   *prometheus.CounterVec
	InteractionDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	RegistrationsTotal *prometheus.CounterVec
	RaceClaimsTotal    *prometheus.CounterVec
	ClaimsOpen         prometheus.Gauge
	AnnouncementsTotal prometheus.Counter
	TwitchAPIErrors    *prometheus.CounterVec
	WorkerRunDuration  *prometheus.HistogramVec
}

// NewMetricsRegistry registers every metric on reg. Pass
// prometheus.NewRegistry() in tests so repeated construction does not
// collide on the default registerer.
func NewMetricsRegistry(reg *prometheus.Registry) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		Gatherer: reg,

		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinkslip_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pinkslip_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pinkslip_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Discord Metrics
		InteractionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinkslip_interactions_total",
				Help: "Discord interactions handled by kind and outcome",
			},
			[]string{"kind", "name", "outcome"},
		),
		InteractionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pinkslip_interaction_duration_seconds",
				Help:    "Time spent handling a Discord interaction",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"kind"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinkslip_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinkslip_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		RegistrationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinkslip_registrations_total",
				Help: "Vehicle registrations by review outcome",
			},
			[]string{"outcome"},
		),
		RaceClaimsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinkslip_race_claims_total",
				Help: "Race claims that reached a terminal state",
			},
			[]string{"state"},
		),
		ClaimsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pinkslip_race_claims_open",
				Help: "Race claims still awaiting an action",
			},
		),
		AnnouncementsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pinkslip_stream_announcements_total",
				Help: "Go-live announcements posted",
			},
		),
		TwitchAPIErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinkslip_twitch_api_errors_total",
				Help: "Failed Helix calls by endpoint",
			},
			[]string{"endpoint"},
		),
		WorkerRunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pinkslip_worker_run_duration_seconds",
				Help:    "Background worker pass duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"worker"},
		),
	}
}

// ObserveRegistration is safe on a nil registry so services can run
// without metrics in tests.
func (m *MetricsRegistry) ObserveRegistration(outcome string) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveClaim counts a race claim reaching state.
func (m *MetricsRegistry) ObserveClaim(state string) {
	if m == nil {
		return
	}
	m.RaceClaimsTotal.WithLabelValues(state).Inc()
}

// ObserveCache counts a lookup against pattern as a hit or a miss.
func (m *MetricsRegistry) ObserveCache(pattern string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

func (m *MetricsRegistry) ObserveTwitchError(endpoint string) {
	if m == nil {
		return
	}
	m.TwitchAPIErrors.WithLabelValues(endpoint).Inc()
}

func (m *MetricsRegistry) ObserveAnnouncement() {
	if m == nil {
		return
	}
	m.AnnouncementsTotal.Inc()
}

// ObserveWorkerRun records how long one pass of worker took.
func (m *MetricsRegistry) ObserveWorkerRun(worker string, seconds float64) {
	if m == nil {
		return
	}
	m.WorkerRunDuration.WithLabelValues(worker).Observe(seconds)
}

func (m *MetricsRegistry) SetOpenClaims(n int64) {
	if m == nil {
		return
	}
	m.ClaimsOpen.Set(float64(n))
}

// ObserveInteraction counts one handled Discord interaction and its latency.
func (m *MetricsRegistry) ObserveInteraction(kind, name, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.InteractionsTotal.WithLabelValues(kind, name, outcome).Inc()
	m.InteractionDuration.WithLabelValues(kind).Observe(seconds)
}

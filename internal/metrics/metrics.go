package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the fleet tracker
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	AircraftEventsTotal *prometheus.CounterVec
	ContractEventsTotal *prometheus.CounterVec
	ProfitLoggedTotal   prometheus.Counter
	RegistrationsTotal  *prometheus.CounterVec
	ImageBytesUploaded  prometheus.Counter
}

// NewMetricsRegistry registers every metric on reg. Production passes
// prometheus.DefaultRegisterer; tests pass a fresh prometheus.NewRegistry().
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hangar_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hangar_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hangar_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hangar_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hangar_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hangar_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hangar_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		AircraftEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hangar_aircraft_events_total",
				Help: "Aircraft lifecycle events by kind (created, updated, sold, deleted)",
			},
			[]string{"event"},
		),
		ContractEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hangar_contract_events_total",
				Help: "Contract events by kind and contract type",
			},
			[]string{"event", "contract_type"},
		),
		ProfitLoggedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hangar_profit_entries_total",
				Help: "Total profit entries logged against contracts",
			},
		),
		RegistrationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hangar_registrations_total",
				Help: "User registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		ImageBytesUploaded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hangar_image_bytes_uploaded_total",
				Help: "Total bytes of aircraft images stored",
			},
		),
	}
}

// AircraftEvent increments the aircraft event counter. Safe on a nil
// registry so services can run without metrics in tests.
func (m *MetricsRegistry) AircraftEvent(event string) {
	if m == nil {
		return
	}
	m.AircraftEventsTotal.WithLabelValues(event).Inc()
}

func (m *MetricsRegistry) ContractEvent(event, contractType string) {
	if m == nil {
		return
	}
	m.ContractEventsTotal.WithLabelValues(event, contractType).Inc()
}

func (m *MetricsRegistry) ProfitLogged() {
	if m == nil {
		return
	}
	m.ProfitLoggedTotal.Inc()
}

func (m *MetricsRegistry) Registration(outcome string) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsRegistry) ImageStored(n int) {
	if m == nil {
		return
	}
	m.ImageBytesUploaded.Add(float64(n))
}

func (m *MetricsRegistry) CacheLookup(pattern string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

func (m *MetricsRegistry) DBQuery(queryType string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueriesTotal.WithLabelValues(queryType).Inc()
	m.DBQueryDuration.WithLabelValues(queryType).Observe(seconds)
}

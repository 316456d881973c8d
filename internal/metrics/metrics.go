package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Resolution metrics
	ResolutionsTotal *prometheus.CounterVec
	ValidationsTotal *prometheus.CounterVec

	// Search metrics
	SearchesTotal         *prometheus.CounterVec
	SearchResultCount     prometheus.Histogram
	SearchDurationSeconds prometheus.Histogram
	DiagnosticsTotal      *prometheus.CounterVec

	// Snapshot metrics
	SnapshotReloadsTotal *prometheus.CounterVec
	SnapshotSessions     prometheus.Gauge
	SnapshotLoadSeconds  prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Resolution metrics
		ResolutionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursefinder_resolutions_total",
				Help: "Total number of course resolutions by outcome",
			},
			[]string{"outcome"}, // outcome: resolved, generic, unrecognized
		),

		ValidationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursefinder_validations_total",
				Help: "Total number of query validations by reason",
			},
			[]string{"reason"}, // reason: ok, missing_family, needs_variant, variant_not_offered
		),

		// Search metrics
		SearchesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursefinder_searches_total",
				Help: "Total number of session searches by outcome",
			},
			[]string{"outcome"}, // outcome: hit, empty
		),

		SearchResultCount: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coursefinder_search_result_count",
				Help:    "Number of sessions returned per search",
				Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
			},
		),

		SearchDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coursefinder_search_duration_seconds",
				Help:    "Search duration in seconds, including diagnostics",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),

		DiagnosticsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursefinder_diagnostics_total",
				Help: "Total number of empty-search diagnoses by reason",
			},
			[]string{"reason"}, // reason: no_sessions_for_course, none_in_date_window, none_at_location, no_combined_match
		),

		// Snapshot metrics
		SnapshotReloadsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursefinder_snapshot_reloads_total",
				Help: "Total number of catalogue snapshot loads by status",
			},
			[]string{"status"}, // status: success, error, unchanged
		),

		SnapshotSessions: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "coursefinder_snapshot_sessions",
				Help: "Number of sessions in the currently loaded snapshot",
			},
		),

		SnapshotLoadSeconds: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "coursefinder_snapshot_load_timestamp_seconds",
				Help: "Unix timestamp of the last successful snapshot load",
			},
		),

		// HTTP metrics
		HTTPRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursefinder_http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),

		HTTPRequestDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coursefinder_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds by route",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"route"},
		),
	}

	return m
}

// RecordResolution records a resolution outcome
func (m *Metrics) RecordResolution(outcome string) {
	m.ResolutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordValidation records a validation reason
func (m *Metrics) RecordValidation(reason string) {
	m.ValidationsTotal.WithLabelValues(reason).Inc()
}

// RecordSearch records a search outcome with its result count and duration
func (m *Metrics) RecordSearch(outcome string, results int, duration float64) {
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchResultCount.Observe(float64(results))
	m.SearchDurationSeconds.Observe(duration)
}

// RecordDiagnosis records the reason an empty search was diagnosed with
func (m *Metrics) RecordDiagnosis(reason string) {
	m.DiagnosticsTotal.WithLabelValues(reason).Inc()
}

// RecordSnapshotReload records a snapshot load attempt
func (m *Metrics) RecordSnapshotReload(status string) {
	m.SnapshotReloadsTotal.WithLabelValues(status).Inc()
}

// SetSnapshotStats updates the gauges describing the loaded snapshot
func (m *Metrics) SetSnapshotStats(sessions int, loadedAtUnix float64) {
	m.SnapshotSessions.Set(float64(sessions))
	m.SnapshotLoadSeconds.Set(loadedAtUnix)
}

// RecordHTTPRequest records one handled HTTP request
func (m *Metrics) RecordHTTPRequest(route, status string, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(route, status).Inc()
	m.HTTPRequestDurationSeconds.WithLabelValues(route).Observe(duration)
}

package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics of the console API.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
	BootstrapRuns     *prometheus.CounterVec
	BulkDeleteRows    *prometheus.CounterVec
	RateLimitRejects  prometheus.Counter
	ExternalCallError *prometheus.CounterVec
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resguardo_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resguardo_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		BootstrapRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resguardo_site_bootstrap_total",
				Help: "Site bootstrap outcomes by path.",
			},
			[]string{"path"},
		),
		BulkDeleteRows: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resguardo_bulk_delete_rows_total",
				Help: "Bulk delete outcomes by entity and result.",
			},
			[]string{"entity", "result"},
		),
		RateLimitRejects: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "resguardo_rate_limit_rejects_total",
				Help: "Requests rejected by the rate limiter.",
			},
		),
		ExternalCallError: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resguardo_external_call_errors_total",
				Help: "Failed calls to external collaborators.",
			},
			[]string{"service"},
		),
	}
}

// RecordRequest records one finished HTTP request.
func (m *Metrics) RecordRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordBootstrap records one site bootstrap outcome.
func (m *Metrics) RecordBootstrap(path string) {
	m.BootstrapRuns.WithLabelValues(path).Inc()
}

// RecordBulkDelete records the rows deleted and failed of one bulk action.
func (m *Metrics) RecordBulkDelete(entity string, deleted, failed int) {
	m.BulkDeleteRows.WithLabelValues(entity, "deleted").Add(float64(deleted))
	m.BulkDeleteRows.WithLabelValues(entity, "failed").Add(float64(failed))
}

// RecordRateLimitReject records one request rejected by the rate limiter.
func (m *Metrics) RecordRateLimitReject() {
	m.RateLimitRejects.Inc()
}

// RecordExternalError records one failed external collaborator call.
func (m *Metrics) RecordExternalError(service string) {
	m.ExternalCallError.WithLabelValues(service).Inc()
}

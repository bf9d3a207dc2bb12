package observer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsEnabled = true // Flag to control metric collection

	// Labels for HTTP request metrics
	httpRequestLabels = []string{"method", "path", "status"}
	// Labels for database operations
	dbOperationLabels = []string{"operation", "entity", "status"}
	// Labels for webhook entry outcomes
	webhookEntryLabels = []string{"outcome"}

	// HTTPRequestsTotal counts requests handled by the API server.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wa_archive_http_requests_total",
			Help: "Total number of HTTP requests handled, labeled by method, path and status.",
		},
		httpRequestLabels,
	)

	// HTTPRequestDurationSeconds observes end-to-end request handling time.
	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wa_archive_http_request_duration_seconds",
			Help:    "Histogram of HTTP request handling durations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		httpRequestLabels,
	)

	// DatabaseOperationDurationSeconds observes repository call durations.
	DatabaseOperationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wa_archive_db_operation_duration_seconds",
			Help:    "Histogram of database operation durations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		dbOperationLabels,
	)

	// WebhookEntriesTotal counts normalized webhook entries by outcome
	// (processed, skipped, failed).
	WebhookEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wa_archive_webhook_entries_total",
			Help: "Total number of webhook message entries processed, labeled by outcome.",
		},
		webhookEntryLabels,
	)
)

// InitMetrics configures whether metric collection is active. Metrics are
// auto-registered via promauto; this only gates the helpers below.
func InitMetrics(enabled bool) {
	metricsEnabled = enabled
}

// RecordHTTPRequest increments the request counter and observes duration.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if !metricsEnabled {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDbOperationDuration records the duration for a database operation.
func ObserveDbOperationDuration(operation, entity string, duration time.Duration, err error) {
	if !metricsEnabled {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseOperationDurationSeconds.WithLabelValues(operation, entity, status).Observe(duration.Seconds())
}

// IncWebhookEntry increments the webhook entry counter for an outcome.
func IncWebhookEntry(outcome string) {
	if !metricsEnabled {
		return
	}
	WebhookEntriesTotal.WithLabelValues(outcome).Inc()
}

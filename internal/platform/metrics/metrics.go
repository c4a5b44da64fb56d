// Package metrics provides Prometheus metrics for the collections service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Import outcomes used as the "status" label of ImportsTotal.
const (
	ImportStatusSuccess       = "success"
	ImportStatusValidation    = "validation_error"
	ImportStatusConfiguration = "configuration_error"
	ImportStatusFailed        = "failed"
)

var (
	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collections",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "collections",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// ImportsTotal tracks CSV imports by outcome
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collections",
			Subsystem: "import",
			Name:      "runs_total",
			Help:      "Total number of CSV imports by status",
		},
		[]string{"status"},
	)

	// ImportDuration tracks how long CSV imports take
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "collections",
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "Duration of CSV imports in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// ImportedRecordsTotal tracks rows written by successful imports
	ImportedRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collections",
			Subsystem: "import",
			Name:      "records_total",
			Help:      "Total number of records written by CSV imports by kind",
		},
		[]string{"kind"},
	)

	// EventsPublishedTotal tracks domain events sent to the broker
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collections",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of domain events published by routing key and status",
		},
		[]string{"routing_key", "status"},
	)
)

// RecordHTTPRequest records an inbound HTTP request metric
func RecordHTTPRequest(method, route, statusCode string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordImport records the outcome of a CSV import
func RecordImport(status string, durationSeconds float64) {
	ImportsTotal.WithLabelValues(status).Inc()
	ImportDuration.Observe(durationSeconds)
}

// RecordImportedRecords records the counts of a committed import
func RecordImportedRecords(accountsCreated, accountsUpdated, consumersCreated, linksCreated int) {
	ImportedRecordsTotal.WithLabelValues("account_created").Add(float64(accountsCreated))
	ImportedRecordsTotal.WithLabelValues("account_updated").Add(float64(accountsUpdated))
	ImportedRecordsTotal.WithLabelValues("consumer_created").Add(float64(consumersCreated))
	ImportedRecordsTotal.WithLabelValues("link_created").Add(float64(linksCreated))
}

// RecordEventPublished records a publish attempt
func RecordEventPublished(routingKey, status string) {
	EventsPublishedTotal.WithLabelValues(routingKey, status).Inc()
}

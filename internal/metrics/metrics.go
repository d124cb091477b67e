package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Resource service operations by outcome
	ResourceOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_operations_total",
			Help: "Total number of resource service operations",
		},
		[]string{"resource", "operation", "outcome"}, // outcome: ok, not_found, invalid_reference, validation, conflict, error
	)
)

// RecordHTTPRequestDuration records the latency of one HTTP request
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementResourceOperation counts one resource service call
func IncrementResourceOperation(resource, operation, outcome string) {
	ResourceOperations.WithLabelValues(resource, operation, outcome).Inc()
}

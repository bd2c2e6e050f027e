package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/chardex/internal/db"
)

// Backend operation labels.
const (
	OpCount    = "count"
	OpSearch   = "search"
	OpSuggest  = "suggest"
	OpGetByIDs = "get_by_ids"
	OpUpsert   = "upsert"
)

// Search backend and record store Prometheus metrics.
var (
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chardex",
			Name:      "backend_request_duration_seconds",
			Help:      "Search backend / record store call duration in seconds",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	BackendErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chardex",
			Name:      "backend_errors_total",
			Help:      "Total failed search backend / record store calls",
		},
		[]string{"operation", "error_type"}, // "unavailable" / "error"
	)
)

var backendMetricsRegistered bool

// RegisterBackendMetrics registers backend metrics. Must be called once from main.
func RegisterBackendMetrics() {
	if backendMetricsRegistered {
		return
	}
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(BackendErrorsTotal)
	backendMetricsRegistered = true
}

// ObserveBackend records the duration of one backend call and counts it as
// failed when err is non-nil.
func ObserveBackend(op string, start time.Time, err error) {
	BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err == nil {
		return
	}
	errorType := "error"
	if db.IsUnavailable(err) {
		errorType = "unavailable"
	}
	BackendErrorsTotal.WithLabelValues(op, errorType).Inc()
}

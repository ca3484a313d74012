package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Authentication metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"},
	)

	// Exam access-check metrics
	AccessChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_access_checks_total",
			Help: "Total number of exam access-gate evaluations",
		},
		[]string{"result"},
	)

	// Grading metrics
	JudgeSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "judge_submissions_total",
			Help: "Total number of submissions sent to the judge",
		},
		[]string{"verdict"},
	)

	// Session metrics
	SessionsSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_superseded_total",
			Help: "Total number of sessions invalidated by a newer login",
		},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by subsystem and kind",
		},
		[]string{"subsystem", "kind"},
	)

	// Cache metrics
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache hits and misses by key type",
		},
		[]string{"type", "hit"},
	)
)

// TrackDBOperation times a database operation; callers defer
// ObserveDuration on the returned timer.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

func TrackAccessCheck(granted bool) {
	result := "denied"
	if granted {
		result = "granted"
	}
	AccessChecks.WithLabelValues(result).Inc()
}

func TrackError(subsystem, kind string) {
	ErrorsTotal.WithLabelValues(subsystem, kind).Inc()
}

func TrackCacheOperation(keyType string, hit bool) {
	label := "miss"
	if hit {
		label = "hit"
	}
	CacheOperations.WithLabelValues(keyType, label).Inc()
}

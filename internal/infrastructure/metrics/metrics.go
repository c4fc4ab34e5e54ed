package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpstreamRequests llamadas al servicio de empleados por operación y resultado
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_api_upstream_requests_total",
			Help: "Total number of calls to the upstream employee API",
		},
		[]string{"operation", "status"},
	)

	// UpstreamLatency latencia de las llamadas upstream
	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "employee_api_upstream_latency_seconds",
			Help:    "Upstream employee API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Retries reintentos tras un 429 del upstream
	Retries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_api_retries_total",
			Help: "Total number of retries after upstream rate limiting",
		},
		[]string{"operation"},
	)

	// RetryExhausted operaciones que agotaron los reintentos
	RetryExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_api_retry_exhausted_total",
			Help: "Total number of operations that gave up after exhausting retries",
		},
		[]string{"operation"},
	)

	// RateLimitDecisions decisiones del limitador del lado cliente
	RateLimitDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_api_ratelimit_decisions_total",
			Help: "Client-facing rate limiter decisions",
		},
		[]string{"route", "decision"},
	)
)

// Handler expone el registro por defecto en formato Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ClientRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "helipad", Name: "client_requests_total", Help: "Requests sent by the client, by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	ClientRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "helipad", Name: "client_request_duration_seconds", Help: "Round-trip time of client requests.", Buckets: prometheus.DefBuckets},
		[]string{"operation"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "helipad", Name: "rate_limit_allowed_total", Help: "Number of allowed padserver requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "helipad", Name: "rate_limit_rejected_total", Help: "Number of rejected padserver requests by limiter type."},
		[]string{"limiter"},
	)
)

// ObserveClientRequest records one client round trip.
func ObserveClientRequest(operation, outcome string, elapsed time.Duration) {
	ClientRequests.WithLabelValues(operation, outcome).Inc()
	ClientRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ClientRequests)
	reg.MustRegister(ClientRequestDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}

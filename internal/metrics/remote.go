package metrics

import "github.com/prometheus/client_golang/prometheus"

// Remote-call metrics for the sibling services (enrichment, similarity,
// retrieval). Registered explicitly from the composition root, not via init().
var (
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docgate",
			Name:      "remote_requests_total",
			Help:      "Total number of sibling-service requests",
		},
		[]string{"service", "operation", "status"},
	)

	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docgate",
			Name:      "remote_request_duration_seconds",
			Help:      "Sibling-service request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "operation"},
	)
)

// RegisterRemoteMetrics registers the sibling-service metrics.
func RegisterRemoteMetrics() {
	prometheus.MustRegister(RemoteRequestsTotal)
	prometheus.MustRegister(RemoteRequestDuration)
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proconnect_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proconnect_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ConnectionTransitions counts connection-request state transitions by action.
	ConnectionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proconnect_connection_transitions_total",
		Help: "Total connection-request state transitions by action",
	}, []string{"action"})

	// MediaUploads counts stored media files by kind (post media, profile picture).
	MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proconnect_media_uploads_total",
		Help: "Total media files stored by kind",
	}, []string{"kind"})

	// ResumeExports counts generated resume PDFs.
	ResumeExports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proconnect_resume_exports_total",
		Help: "Total resume PDFs generated",
	})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EventsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buglog_events_ingested_total",
			Help: "Total number of event ingestion attempts.",
		},
		[]string{"result"},
	)

	PoolAcquireSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "db_pool_acquire_seconds",
			Help:    "Time spent waiting for a pooled database connection.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2.5, 5},
		},
	)
)

// MustRegister registers every collector on reg with a constant service label.
// db may be nil; when set its pool statistics are exported too.
func MustRegister(reg prometheus.Registerer, serviceName string, db *sql.DB) {
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg)
	wrapped.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		EventsIngestedTotal,
		PoolAcquireSeconds,
	)
	if db != nil {
		wrapped.MustRegister(collectors.NewDBStatsCollector(db, serviceName))
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipdash_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shipdash_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipdash_upstream_requests_total",
			Help: "Requests issued to the upstream shipment API by outcome",
		},
		[]string{"operation", "outcome"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipdash_exports_total",
			Help: "Generated export files by format",
		},
		[]string{"format"},
	)

	SnapshotCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipdash_snapshot_cache_total",
			Help: "Shipment snapshot cache lookups by result",
		},
		[]string{"result"},
	)
)

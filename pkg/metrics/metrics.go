package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks served HTTP requests by route and status class.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status_class"})

	// ImportBatches counts asset import invocations.
	ImportBatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "asset_import_batches_total",
		Help: "Asset import batches processed.",
	})

	// ImportRows counts processed import rows by outcome (success or failed).
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_import_rows_total",
		Help: "Asset import rows processed, by outcome.",
	}, []string{"outcome"})
)

// Package metrics holds prometheus collectors and the HTTP middleware.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// CatalogReloadsTotal counts full catalog cache rebuilds.
	CatalogReloadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stratdex",
			Name:      "catalog_reloads_total",
			Help:      "Total number of catalog cache rebuilds",
		},
	)

	// CatalogSize tracks the number of strategies in the cache.
	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "stratdex",
			Name:      "catalog_size",
			Help:      "Number of strategies in the catalog cache",
		},
	)

	// SummaryRequestsTotal counts summarization calls per model and outcome.
	SummaryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stratdex",
			Name:      "summary_requests_total",
			Help:      "Total number of summarization model calls",
		},
		[]string{"model", "status"},
	)

	// SummaryRequestDuration measures summarization call latency per model.
	SummaryRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stratdex",
			Name:      "summary_request_duration_seconds",
			Help:      "Summarization model call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)
)

// RegisterCatalogMetrics registers the catalog and summarization
// collectors explicitly (no init()).
func RegisterCatalogMetrics() {
	prometheus.MustRegister(CatalogReloadsTotal)
	prometheus.MustRegister(CatalogSize)
	prometheus.MustRegister(SummaryRequestsTotal)
	prometheus.MustRegister(SummaryRequestDuration)
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceRecommendation = "recommendation"
	ServiceCompletion     = "completion"

	OutcomeOk         = "ok"
	OutcomeEmpty      = "empty"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recoviewer_upstream_requests_total",
			Help: "Total number of outbound calls by upstream service and outcome",
		},
		[]string{"service", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recoviewer_upstream_request_duration_seconds",
			Help:    "Duration of outbound calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	ProductsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recoviewer_products_fetched_total",
			Help: "Total number of product records returned by the recommendation API",
		},
	)

	EnrichmentRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recoviewer_enrichment_runs_total",
			Help: "Total number of enrichment batches by outcome",
		},
		[]string{"outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recoviewer_active_sessions",
			Help: "Number of viewer sessions held in memory",
		},
	)
)

// ObserveUpstream records one outbound call started at start.
func ObserveUpstream(service, outcome string, start time.Time) {
	UpstreamRequests.WithLabelValues(service, outcome).Inc()
	UpstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

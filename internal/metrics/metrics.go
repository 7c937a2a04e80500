// Package metrics provides Prometheus metrics for the analysis pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recamazon"

var (
	// PipelineRunsTotal counts pipeline runs by terminal status.
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total number of pipeline runs by terminal status",
		},
		[]string{"catalog", "status"},
	)

	// PipelineDuration measures end-to-end run duration.
	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of pipeline runs in seconds",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80, 160, 320},
		},
		[]string{"catalog"},
	)

	// StageTotal counts stage executions by outcome.
	StageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_total",
			Help:      "Total number of stage executions by outcome",
		},
		[]string{"stage", "outcome"},
	)

	// StageDuration measures stage duration.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// StageItems observes how many items, records, or characters a stage produced.
	StageItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_items",
			Help:      "Distribution of stage result sizes",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		},
		[]string{"stage"},
	)

	// ProviderRequestsTotal counts completion requests by provider and error class.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of completion requests by provider and result class",
		},
		[]string{"provider", "result"},
	)

	// ProviderRequestDuration measures completion request latency.
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of completion requests in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"provider"},
	)
)

// RecordRun records a finished pipeline run.
func RecordRun(catalog, status string, duration float64) {
	PipelineRunsTotal.WithLabelValues(catalog, status).Inc()
	PipelineDuration.WithLabelValues(catalog).Observe(duration)
}

// RecordStage records a finished stage. Outcome is "ok", "empty", or an error class.
func RecordStage(stage, outcome string, items int, duration float64) {
	StageTotal.WithLabelValues(stage, outcome).Inc()
	StageDuration.WithLabelValues(stage).Observe(duration)
	StageItems.WithLabelValues(stage).Observe(float64(items))
}

// RecordProviderRequest records one completion request attempt.
func RecordProviderRequest(provider, result string, duration float64) {
	ProviderRequestsTotal.WithLabelValues(provider, result).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(duration)
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

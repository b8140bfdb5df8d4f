// Package metrics exposes Prometheus collectors for the call analysis pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stage names used as label values
const (
	StageTranscribe = "transcribe"
	StageSentiment  = "sentiment"
	StageMetrics    = "metrics"
	StageArchive    = "archive"
	StagePersist    = "persist"
)

var (
	// analysesTotal counts finished analyses.
	// Labels: source (audio, transcript), status (success, failed, cached)
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_analyses_total",
			Help: "Total number of call analyses",
		},
		[]string{"source", "status"},
	)

	// stageDuration records how long each pipeline stage takes
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "call_analysis_stage_duration_seconds",
			Help:    "Duration of call analysis stages in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"stage"},
	)

	// insightsTotal counts generated insights by kind
	insightsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_insights_total",
			Help: "Total number of insights generated, by kind",
		},
		[]string{"kind"},
	)

	// upstreamRetriesTotal counts retried calls to external AI services
	upstreamRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_upstream_retries_total",
			Help: "Total number of retried calls to upstream AI services",
		},
		[]string{"service"},
	)
)

func init() {
	prometheus.MustRegister(analysesTotal)
	prometheus.MustRegister(stageDuration)
	prometheus.MustRegister(insightsTotal)
	prometheus.MustRegister(upstreamRetriesTotal)
}

// RecordAnalysis records one finished analysis
func RecordAnalysis(source, status string) {
	analysesTotal.WithLabelValues(source, status).Inc()
}

// ObserveStage records the duration of a stage that started at start
func ObserveStage(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// RecordInsight records the kind of insight produced
func RecordInsight(kind string) {
	insightsTotal.WithLabelValues(kind).Inc()
}

// RecordRetry records a retried upstream call
func RecordRetry(service string) {
	upstreamRetriesTotal.WithLabelValues(service).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline and analysis metrics, exposed on /metrics by the API server.
var (
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetflow_pipeline_runs_total",
		Help: "Pipeline runs by terminal status.",
	}, []string{"status"})

	TranscriptionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meetflow_transcription_seconds",
		Help:    "Wall-clock time spent in whisper transcription.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	AnalysisCandidatesTried = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meetflow_analysis_candidates_tried",
		Help:    "Candidate models consulted per analysis request.",
		Buckets: prometheus.LinearBuckets(1, 1, 5),
	})
)

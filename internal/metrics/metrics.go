package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "iv_engine"

// HTTP metrics, incremented by the instrumentation middleware.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"method", "path_pattern", "status_code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path_pattern"})
)

// Pipeline counters, incremented by the transcription orchestrator.
var (
	TranscriptionRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transcription_runs_total",
		Help:      "Transcription pipeline runs by outcome.",
	}, []string{"outcome"})

	TranscriptionRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transcription_run_duration_seconds",
		Help:      "Wall-clock duration of completed transcription runs.",
		Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
	})

	SSEEventsPublishedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sse_events_published_total",
		Help:      "Total SSE events published.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TranscriptionRunsTotal,
		TranscriptionRunDuration,
		SSEEventsPublishedTotal,
	)
}

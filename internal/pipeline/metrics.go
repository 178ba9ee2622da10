package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medtimeline_documents_processed_total",
		Help: "Documents run through the pipeline, by final status.",
	}, []string{"status"})

	processingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "medtimeline_processing_duration_seconds",
		Help:    "End-to-end per-document processing latency.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	segmentsProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medtimeline_segments_produced_total",
		Help: "Segments emitted across all documents.",
	})

	chunksProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medtimeline_chunks_produced_total",
		Help: "Chunks emitted across all documents.",
	})
)

func observeProcessed(status string, d time.Duration, segments, chunks int) {
	documentsProcessed.WithLabelValues(status).Inc()
	processingDuration.Observe(d.Seconds())
	segmentsProduced.Add(float64(segments))
	chunksProduced.Add(float64(chunks))
}

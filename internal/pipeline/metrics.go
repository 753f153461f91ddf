package pipeline

import "github.com/prometheus/client_golang/prometheus"

var (
	framesEnqueuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ocrstream",
			Subsystem: "pipeline",
			Name:      "frames_enqueued_total",
			Help:      "Frames accepted into the frame queue",
		},
	)

	framesDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ocrstream",
			Subsystem: "pipeline",
			Name:      "frames_dropped_total",
			Help:      "Frames dropped because the frame queue was full",
		},
	)

	resultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ocrstream",
			Subsystem: "pipeline",
			Name:      "results_total",
			Help:      "Results produced by workers",
		},
		[]string{"outcome"},
	)

	inferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ocrstream",
			Subsystem: "pipeline",
			Name:      "inference_duration_seconds",
			Help:      "Wall time spent in the recognizer per frame",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)

	workersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ocrstream",
			Subsystem: "pipeline",
			Name:      "workers",
			Help:      "Live worker goroutines",
		},
	)

	poolRestartsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ocrstream",
			Subsystem: "pipeline",
			Name:      "pool_restarts_total",
			Help:      "Worker pool restarts caused by configuration changes",
		},
	)

	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ocrstream",
			Subsystem: "pipeline",
			Name:      "queue_depth",
			Help:      "Items currently in the frame queue",
		},
	)
)

func init() {
	prometheus.MustRegister(framesEnqueuedTotal, framesDroppedTotal, resultsTotal,
		inferenceDuration, workersGauge, poolRestartsTotal, queueDepth)
}

func outcomeLabel(r Result) string {
	if r.Err != "" {
		return "error"
	}
	return "ok"
}

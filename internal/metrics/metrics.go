package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "facereporter"

var (
	PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total number of face pipeline runs, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	PipelineDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Wall time of a face pipeline run (seconds).",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"outcome"},
	)

	FacesDetectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faces_detected_total",
			Help:      "Total number of faces returned by the detector.",
		},
	)

	ThumbnailsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thumbnails_published_total",
			Help:      "Total number of thumbnail uploads, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	NotificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total number of per-face chat messages, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	EventsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_received_total",
			Help:      "Total number of Slack webhook deliveries, labeled by request type.",
		},
		[]string{"type"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func init() {
	prometheus.MustRegister(
		PipelineRunsTotal,
		PipelineDurationSeconds,
		FacesDetectedTotal,
		ThumbnailsPublishedTotal,
		NotificationsSentTotal,
		EventsReceivedTotal,
	)
}

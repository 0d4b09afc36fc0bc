package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	trackingProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "tracking_consumer",
			Name:      "messages_processed_total",
			Help:      "Tracking reports handled, by whether they moved the order",
		},
		[]string{"outcome"},
	)

	trackingFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "tracking_consumer",
			Name:      "messages_failed_total",
			Help:      "Total number of tracking reports that could not be applied",
		},
	)

	trackingDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "tracking_consumer",
			Name:      "messages_dlq_total",
			Help:      "Total number of tracking reports written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "tracking_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	trackingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "tracking_consumer",
			Name:      "message_processing_duration_seconds",
			Help:      "Histogram of tracking report processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	trackingInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "storefront",
			Subsystem: "tracking_consumer",
			Name:      "messages_in_progress",
			Help:      "Number of tracking reports currently being processed",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		trackingProcessed,
		trackingFailed,
		trackingDLQ,
		commitErrors,
		trackingDuration,
		trackingInProgress,
	)
}

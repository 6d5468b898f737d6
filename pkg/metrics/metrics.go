package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AlertPolls counts aggregator poll cycles by result (ok|degraded).
	AlertPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auzzie_alert_polls_total",
			Help: "Total number of alert aggregator poll cycles",
		},
		[]string{"result"},
	)

	// AlertSourceFailures counts poll sources that degraded to zero items.
	AlertSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auzzie_alert_source_failures_total",
			Help: "Total number of degraded alert sources per poll",
		},
		[]string{"source"},
	)

	// AlertFirings counts level-triggered alert effect firings.
	AlertFirings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auzzie_alert_firings_total",
			Help: "Total number of alert effect firings",
		},
	)

	// AlertFeedSize tracks the size of the merged alert feed after each poll.
	AlertFeedSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auzzie_alert_feed_size",
			Help: "Number of items in the merged alert feed",
		},
	)

	// BookingTransitions counts booking status transitions by target status and result.
	BookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auzzie_booking_transitions_total",
			Help: "Total number of booking status transition attempts",
		},
		[]string{"to", "result"},
	)

	// EmailDispatches counts outbound email attempts by kind and result.
	EmailDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auzzie_email_dispatches_total",
			Help: "Total number of outbound email dispatch attempts",
		},
		[]string{"kind", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auzzie_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Package metrics defines the Prometheus instruments for the dispatch path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchesTotal counts Send calls by terminal state:
	// "dispatched", "all_disabled" or "user_not_found".
	DispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifyd_dispatches_total",
		Help: "Total notification dispatch requests by result",
	}, []string{"result"})

	// ChannelSendsTotal counts individual channel delivery attempts.
	ChannelSendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifyd_channel_sends_total",
		Help: "Total per-channel delivery attempts by channel and status",
	}, []string{"channel", "status"})

	// DispatchDuration observes end-to-end Send latency in seconds.
	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "notifyd_dispatch_duration_seconds",
		Help:    "End-to-end dispatch latency",
		Buckets: prometheus.DefBuckets,
	})
)

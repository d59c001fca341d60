package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion
	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "r9k_events_processed_total",
			Help: "Message events by outcome",
		},
		[]string{"outcome"}, // "stored", "duplicate", "discarded", "failed"
	)

	EventsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "r9k_events_discarded_total",
			Help: "Message events dropped before persistence",
		},
		[]string{"reason"}, // "bot", "channel", "no_guild"
	)

	DuplicatesFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "r9k_duplicates_found_total",
			Help: "Messages whose content matched an earlier stored message",
		},
	)

	RepliesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "r9k_replies_total",
			Help: "Replies sent to the chat gateway",
		},
		[]string{"kind", "result"}, // kind: "duplicate" or rule name; result: "ok", "error"
	)

	// Storage
	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "r9k_store_latency_seconds",
			Help:    "Message store operation latency",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25},
		},
		[]string{"op"}, // "insert", "find_by_content"
	)
)

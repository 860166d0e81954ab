package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fiscalito_turns_total",
		Help: "Conversation turns handled, by outcome.",
	}, []string{"status"})

	retrievalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fiscalito_retrievals_total",
		Help: "Document retrieval requests served.",
	})

	turnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fiscalito_turn_duration_seconds",
		Help:    "End-to-end latency of a conversation turn.",
		Buckets: prometheus.DefBuckets,
	})
)

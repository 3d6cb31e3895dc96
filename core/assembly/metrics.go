package assembly

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const stateLabel = "state"

var (
	stateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_state_transitions_total",
			Help: "Pipeline transitions by target state",
		},
		[]string{stateLabel},
	)

	typesReached = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "message_types_total",
			Help: "Message types by the last state reached",
		},
		[]string{stateLabel},
	)

	sequencesAssembled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "type_sequences_total",
			Help: "Type sequences by outcome",
		},
		[]string{stateLabel},
	)

	snapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "registry_snapshot_duration_seconds",
			Help:    "Latency of registry snapshot saving",
			Buckets: prometheus.DefBuckets,
		},
	)
)

package inference

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	stepKey   = "step"
	resultKey = "result"
)

var (
	modelCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_calls_total",
			Help: "Number of model calls by pipeline step and result",
		},
		[]string{stepKey, resultKey},
	)

	modelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_call_duration_seconds",
			Help:    "Latency of model calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{stepKey},
	)
)

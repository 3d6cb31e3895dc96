package corpus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	savedSeeds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saved_seeds_total",
			Help: "Total count of seed files written",
		},
	)

	duplicateSeeds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "duplicate_seeds_total",
			Help: "Seeds whose content matched an earlier seed",
		},
	)

	discardedSeeds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discarded_seeds_total",
			Help: "Seed files removed before completion",
		},
	)

	seedSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seed_size_bytes",
			Help:    "Size of written seed files",
			Buckets: prometheus.ExponentialBuckets(16, 2, 10),
		},
	)
)

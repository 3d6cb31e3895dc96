package inference

import (
	"sort"
	"sync"
	"time"

	"github.com/influxdata/tdigest"
)

type LatencySummary struct {
	Step  string
	Count int
	P50   time.Duration
	P95   time.Duration
	Max   time.Duration
}

type latencyTracker struct {
	mu      sync.Mutex
	digests map[string]*tdigest.TDigest
	max     map[string]time.Duration
}

func newLatencyTracker() *latencyTracker {
	return &latencyTracker{
		digests: make(map[string]*tdigest.TDigest),
		max:     make(map[string]time.Duration),
	}
}

func (l *latencyTracker) observe(step string, d time.Duration) {
	modelCallDuration.WithLabelValues(step).Observe(d.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	digest, exists := l.digests[step]
	if !exists {
		digest = tdigest.New()
		l.digests[step] = digest
	}
	digest.Add(float64(d), 1)
	if d > l.max[step] {
		l.max[step] = d
	}
}

func (l *latencyTracker) summary() []LatencySummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := make([]LatencySummary, 0, len(l.digests))
	for step, digest := range l.digests {
		res = append(res, LatencySummary{
			Step:  step,
			Count: int(digest.Count()),
			P50:   time.Duration(digest.Quantile(0.5)),
			P95:   time.Duration(digest.Quantile(0.95)),
			Max:   l.max[step],
		})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Step < res[j].Step
	})
	return res
}

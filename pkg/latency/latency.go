// Package latency provides a per-operation latency tracker for benchmark
// runs. Samples are wall durations from the monotonic clock; percentiles are
// computed from the sorted sample set.
package latency

import (
	"sort"
	"time"
)

// Tracker accumulates duration samples for one operation kind.
type Tracker struct {
	samples []time.Duration
}

// NewTracker creates a tracker with room for capacity samples.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		samples: make([]time.Duration, 0, capacity),
	}
}

// Record times a single operation and stores the sample.
func (t *Tracker) Record(op func()) {
	start := time.Now()
	op()
	t.samples = append(t.samples, time.Since(start))
}

// Observe stores an externally measured sample.
func (t *Tracker) Observe(d time.Duration) {
	t.samples = append(t.samples, d)
}

// Len returns the number of recorded samples.
func (t *Tracker) Len() int {
	return len(t.samples)
}

// IsEmpty reports whether no samples have been recorded.
func (t *Tracker) IsEmpty() bool {
	return len(t.samples) == 0
}

// Clear drops all samples.
func (t *Tracker) Clear() {
	t.samples = t.samples[:0]
}

// Percentiles summarizes a sample distribution. P999 and P9999 are the
// p99.9 and p99.99 tail latencies.
type Percentiles struct {
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	P999  time.Duration
	P9999 time.Duration
}

// Percentiles sorts the samples and computes the summary. Returns false when
// no samples were recorded.
func (t *Tracker) Percentiles() (Percentiles, bool) {
	if len(t.samples) == 0 {
		return Percentiles{}, false
	}

	sort.Slice(t.samples, func(i, j int) bool { return t.samples[i] < t.samples[j] })

	var sum time.Duration
	for _, s := range t.samples {
		sum += s
	}

	return Percentiles{
		Min:   t.samples[0],
		Max:   t.samples[len(t.samples)-1],
		Mean:  sum / time.Duration(len(t.samples)),
		P50:   t.percentileAt(0.50),
		P95:   t.percentileAt(0.95),
		P99:   t.percentileAt(0.99),
		P999:  t.percentileAt(0.999),
		P9999: t.percentileAt(0.9999),
	}, true
}

func (t *Tracker) percentileAt(p float64) time.Duration {
	index := int(p * float64(len(t.samples)-1))
	return t.samples[index]
}

package workload

import (
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

// HighCancel models quote churn: nearly half the flow is cancels, biased
// toward the most recently placed orders the way market makers pull and
// re-place quotes. Exercises the removal path and free-slot reuse of each
// layout.
type HighCancel struct {
	state
}

// NewHighCancel creates the cancel-heavy scenario.
func NewHighCancel(params Params) *HighCancel {
	return &HighCancel{state: newState(params)}
}

// Name implements workloadv1.Generator.
func (g *HighCancel) Name() string { return ScenarioHighCancel }

// Reset implements workloadv1.Generator.
func (g *HighCancel) Reset() { g.reset() }

// Next emits roughly 50% limits, 45% cancels, 5% markets.
func (g *HighCancel) Next() (workloadv1.Event, bool) {
	if g.emitted >= g.params.Events {
		return workloadv1.Event{}, false
	}
	g.emitted++

	roll := g.rng.Float64()
	switch {
	case roll < 0.45 && len(g.live) > 0:
		return g.cancelAt(g.recentIndex()), true
	case roll < 0.50:
		return g.marketEvent(), true
	default:
		return g.limitEvent(g.randomSide(), g.uniformPrice()), true
	}
}

// recentIndex picks a live order biased toward the newest entries: three
// rolls, keep the largest index.
func (g *HighCancel) recentIndex() int {
	best := g.rng.Intn(len(g.live))
	for i := 0; i < 2; i++ {
		if idx := g.rng.Intn(len(g.live)); idx > best {
			best = idx
		}
	}
	return best
}

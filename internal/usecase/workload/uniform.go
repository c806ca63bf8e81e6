package workload

import (
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

// Uniform spreads limit prices uniformly over the full price range, with
// random-order cancels and occasional market orders mixed in. Wide spread
// touches many levels, the worst case for cache and TLB locality; it is the
// stress test the realistic scenarios are compared against.
type Uniform struct {
	state
}

// NewUniform creates the uniform random scenario.
func NewUniform(params Params) *Uniform {
	return &Uniform{state: newState(params)}
}

// Name implements workloadv1.Generator.
func (g *Uniform) Name() string { return ScenarioUniform }

// Reset implements workloadv1.Generator.
func (g *Uniform) Reset() { g.reset() }

// Next emits roughly 60% limits, 20% cancels, 20% markets.
func (g *Uniform) Next() (workloadv1.Event, bool) {
	if g.emitted >= g.params.Events {
		return workloadv1.Event{}, false
	}
	g.emitted++

	roll := g.rng.Float64()
	switch {
	case roll < 0.20 && len(g.live) > 0:
		return g.cancelAt(g.rng.Intn(len(g.live))), true
	case roll < 0.40:
		return g.marketEvent(), true
	default:
		return g.limitEvent(g.randomSide(), g.uniformPrice()), true
	}
}

package workload

import (
	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

const (
	steadySeedOrders  = 1000
	steadySpreadTicks = 100
)

// SteadyState models normal trading hours on a liquid instrument: the book
// is seeded with resting depth around the mid, then a continuous 60/30/10
// add/cancel/market mix runs against the warm book. The typical-case
// workload the headline numbers come from.
type SteadyState struct {
	state
}

// NewSteadyState creates the steady-state scenario.
func NewSteadyState(params Params) *SteadyState {
	return &SteadyState{state: newState(params)}
}

// Name implements workloadv1.Generator.
func (g *SteadyState) Name() string { return ScenarioSteadyState }

// Reset implements workloadv1.Generator.
func (g *SteadyState) Reset() { g.reset() }

// Next seeds the book with the first events, then emits roughly 60% limits,
// 30% cancels, 10% markets. The seed phase counts toward the event budget.
func (g *SteadyState) Next() (workloadv1.Event, bool) {
	if g.emitted >= g.params.Events {
		return workloadv1.Event{}, false
	}
	g.emitted++

	if g.emitted <= min(steadySeedOrders, g.params.Events/2) {
		side := g.randomSide()
		return g.limitEvent(side, g.spreadPrice(side)), true
	}

	roll := g.rng.Float64()
	switch {
	case roll < 0.30 && len(g.live) > 0:
		return g.cancelAt(g.rng.Intn(len(g.live))), true
	case roll < 0.40:
		return g.marketEvent(), true
	default:
		side := g.randomSide()
		return g.limitEvent(side, g.spreadPrice(side)), true
	}
}

// spreadPrice picks a price within the steady spread around the mid, bids
// below and asks above so the seeded book stays two-sided.
func (g *SteadyState) spreadPrice(side orderbookv1.Side) orderbookv1.Price {
	tick := g.params.Resolution.TickSize
	mid := (g.params.PriceMin + g.params.PriceMax) / 2
	mid -= mid % tick

	offset := orderbookv1.Price(1+g.rng.Int63n(steadySpreadTicks/2)) * tick
	if side == orderbookv1.SideBid {
		return g.alignPrice(mid - offset)
	}
	return g.alignPrice(mid + offset)
}

package workload

import (
	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

// Buildup is insert-only: the book grows monotonically for the whole run.
// Measures steady-state insert cost as depth accumulates, with no removal
// path noise.
type Buildup struct {
	state
}

// NewBuildup creates the insert-only scenario.
func NewBuildup(params Params) *Buildup {
	return &Buildup{state: newState(params)}
}

// Name implements workloadv1.Generator.
func (g *Buildup) Name() string { return ScenarioBuildup }

// Reset implements workloadv1.Generator.
func (g *Buildup) Reset() { g.reset() }

// Next emits limit orders only. Bids are reflected into the lower half of
// the range and asks into the upper half so the buildup never crosses and
// every order rests.
func (g *Buildup) Next() (workloadv1.Event, bool) {
	if g.emitted >= g.params.Events {
		return workloadv1.Event{}, false
	}
	g.emitted++

	tick := g.params.Resolution.TickSize
	mid := (g.params.PriceMin + g.params.PriceMax) / 2
	mid -= mid % tick

	side := g.randomSide()
	price := g.uniformPrice()
	if side == orderbookv1.SideBid && price > mid {
		price = g.alignPrice(mid - (price - mid))
	}
	if side == orderbookv1.SideAsk && price <= mid {
		price = g.alignPrice(mid + (mid - price) + tick)
	}
	return g.limitEvent(side, price), true
}

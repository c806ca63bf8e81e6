package workload

import (
	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

const (
	burstOrders     = 500
	burstRangeTicks = 20
	quietOrders     = 50
	quietRangeTicks = 2000
)

// Bursty alternates bursts of tightly clustered orders with quiet stretches
// spread over a wide price range, then tears the book down with cancels in
// random order. Bursts warm a handful of levels; the quiet phase touches
// cold ones and evicts them, so every burst restarts on a cold cache.
type Bursty struct {
	state
}

// NewBursty creates the bursty traffic scenario.
func NewBursty(params Params) *Bursty {
	return &Bursty{state: newState(params)}
}

// Name implements workloadv1.Generator.
func (g *Bursty) Name() string { return ScenarioBursty }

// Reset implements workloadv1.Generator.
func (g *Bursty) Reset() { g.reset() }

// Next spends the first half of the event budget on burst/quiet limit
// cycles and the second half canceling the placed orders in random order.
// Sides alternate within a phase so both books stay populated.
func (g *Bursty) Next() (workloadv1.Event, bool) {
	if g.emitted >= g.params.Events {
		return workloadv1.Event{}, false
	}
	position := g.emitted
	g.emitted++

	if position >= g.params.Events/2 {
		if len(g.live) == 0 {
			return g.limitEvent(g.randomSide(), g.quietPrice(position)), true
		}
		return g.cancelAt(g.rng.Intn(len(g.live))), true
	}

	side := orderbookv1.SideBid
	if position%2 == 1 {
		side = orderbookv1.SideAsk
	}

	cycleLen := burstOrders + quietOrders
	if position%cycleLen < burstOrders {
		return g.limitEvent(side, g.burstPrice(position)), true
	}
	return g.limitEvent(side, g.quietPrice(position)), true
}

// burstPrice clusters inside a tight band whose center drifts a little each
// cycle, the way successive news reactions land near but not on each other.
func (g *Bursty) burstPrice(position int) orderbookv1.Price {
	tick := g.params.Resolution.TickSize
	cycle := position / (burstOrders + quietOrders)

	center := (g.params.PriceMin + g.params.PriceMax) / 2
	center += orderbookv1.Price((cycle*10)%100) * tick
	offset := orderbookv1.Price(g.rng.Int63n(burstRangeTicks)) * tick
	return g.alignPrice(center - orderbookv1.Price(burstRangeTicks/2)*tick + offset)
}

// quietPrice spreads over a wide band around the mid.
func (g *Bursty) quietPrice(int) orderbookv1.Price {
	tick := g.params.Resolution.TickSize
	mid := (g.params.PriceMin + g.params.PriceMax) / 2

	offset := orderbookv1.Price(g.rng.Int63n(quietRangeTicks)) * tick
	return g.alignPrice(mid - orderbookv1.Price(quietRangeTicks/2)*tick + offset)
}

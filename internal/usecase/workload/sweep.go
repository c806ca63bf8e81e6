package workload

import (
	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

const (
	sweepLevels    = 100
	sweepSmall     = 5
	sweepMedium    = 20
	sweepLarge     = 50
	sweepOrderLots = 100
)

// Sweep builds a deep two-sided book and then fires large market orders that
// walk many price levels at once, the depth-traversal stress pattern of
// stop-loss cascades and institutional flow. Swept levels are replenished
// after each sweep so every sweep sees comparable depth.
type Sweep struct {
	state
	script []workloadv1.Event
	pos    int
}

// NewSweep creates the market-sweep scenario. The event sequence is fully
// precomputed, so it is deterministic without a seed.
func NewSweep(params Params) *Sweep {
	g := &Sweep{state: newState(params)}
	g.build()
	return g
}

// Name implements workloadv1.Generator.
func (g *Sweep) Name() string { return ScenarioSweep }

// Reset implements workloadv1.Generator.
func (g *Sweep) Reset() {
	g.reset()
	g.script = g.script[:0]
	g.build()
}

// Next implements workloadv1.Generator.
func (g *Sweep) Next() (workloadv1.Event, bool) {
	if g.pos >= len(g.script) {
		return workloadv1.Event{}, false
	}
	event := g.script[g.pos]
	g.pos++
	return event, true
}

func (g *Sweep) build() {
	g.pos = 0
	res := g.params.Resolution
	mid := (g.params.PriceMin + g.params.PriceMax) / 2
	mid -= mid % res.TickSize
	qty := orderbookv1.Quantity(sweepOrderLots) * res.LotSize

	levelPrice := func(side orderbookv1.Side, depth int) orderbookv1.Price {
		offset := orderbookv1.Price(depth) * res.TickSize
		if side == orderbookv1.SideBid {
			return mid - offset
		}
		return mid + offset
	}
	addLimit := func(side orderbookv1.Side, depth int) {
		g.script = append(g.script, workloadv1.Event{
			Type:  workloadv1.EventLimit,
			Order: orderbookv1.NewOrder(g.issueID(), side, levelPrice(side, depth), qty),
		})
	}

	// Seed both sides one order per level.
	for depth := 1; depth <= sweepLevels; depth++ {
		addLimit(orderbookv1.SideBid, depth)
		addLimit(orderbookv1.SideAsk, depth)
	}

	// Alternate sweep sizes and sides, replenishing what each sweep consumed.
	sizes := []int{sweepSmall, sweepMedium, sweepLarge}
	swept := orderbookv1.SideAsk
	for cycle := 0; len(g.script) < g.params.Events; cycle++ {
		levels := sizes[cycle%len(sizes)]
		taker := swept.Opposite()
		g.script = append(g.script, workloadv1.Event{
			Type:     workloadv1.EventMarket,
			Side:     taker,
			Quantity: orderbookv1.Quantity(levels) * qty,
		})
		for depth := 1; depth <= levels; depth++ {
			addLimit(swept, depth)
		}
		swept = swept.Opposite()
	}
}

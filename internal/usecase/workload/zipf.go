package workload

import (
	"math/rand"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

// Zipf draws price offsets from the mid with Zipfian popularity: a handful
// of levels near the touch take most of the traffic while a long tail of far
// levels is hit rarely. Exercises the hot-path/cold-path split directly.
type Zipf struct {
	state
	mid  orderbookv1.Price
	zipf *rand.Zipf
}

// NewZipf creates the Zipfian price popularity scenario.
func NewZipf(params Params) *Zipf {
	g := &Zipf{state: newState(params)}
	mid := (params.PriceMin + params.PriceMax) / 2
	g.mid = mid - mid%params.Resolution.TickSize
	g.zipf = newZipf(g.rng, params)
	return g
}

func newZipf(rng *rand.Rand, params Params) *rand.Zipf {
	halfTicks := uint64((params.PriceMax - params.PriceMin) / (2 * params.Resolution.TickSize))
	return rand.NewZipf(rng, 1.2, 1, halfTicks)
}

// Name implements workloadv1.Generator.
func (g *Zipf) Name() string { return ScenarioZipf }

// Reset implements workloadv1.Generator.
func (g *Zipf) Reset() {
	g.reset()
	g.zipf = newZipf(g.rng, g.params)
}

// Next emits roughly 70% limits, 15% cancels, 15% markets.
func (g *Zipf) Next() (workloadv1.Event, bool) {
	if g.emitted >= g.params.Events {
		return workloadv1.Event{}, false
	}
	g.emitted++

	roll := g.rng.Float64()
	switch {
	case roll < 0.15 && len(g.live) > 0:
		return g.cancelAt(g.rng.Intn(len(g.live))), true
	case roll < 0.30:
		return g.marketEvent(), true
	default:
		side := g.randomSide()
		offset := orderbookv1.Price(g.zipf.Uint64()+1) * g.params.Resolution.TickSize
		if side == orderbookv1.SideBid {
			return g.limitEvent(side, g.alignPrice(g.mid-offset)), true
		}
		return g.limitEvent(side, g.alignPrice(g.mid+offset)), true
	}
}

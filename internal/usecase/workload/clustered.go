package workload

import (
	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

// ClusteredMid concentrates limit prices in a gaussian cluster around the
// middle of the price range, bids below and asks above, the way real markets
// quote around the touch. This is the locality-friendly counterpart to
// Uniform.
type ClusteredMid struct {
	state
	mid    orderbookv1.Price
	stddev float64
}

// NewClusteredMid creates the clustered-around-mid scenario. The cluster
// width is 1% of the price range.
func NewClusteredMid(params Params) *ClusteredMid {
	mid := (params.PriceMin + params.PriceMax) / 2
	span := float64(params.PriceMax-params.PriceMin) / float64(params.Resolution.TickSize)
	return &ClusteredMid{
		state:  newState(params),
		mid:    mid - mid%params.Resolution.TickSize,
		stddev: span / 100,
	}
}

// Name implements workloadv1.Generator.
func (g *ClusteredMid) Name() string { return ScenarioClustered }

// Reset implements workloadv1.Generator.
func (g *ClusteredMid) Reset() { g.reset() }

// Next emits roughly 70% limits, 15% cancels, 15% markets.
func (g *ClusteredMid) Next() (workloadv1.Event, bool) {
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
		return g.limitEvent(side, g.clusteredPrice(side)), true
	}
}

// clusteredPrice samples a gaussian offset from mid; bids land below the
// mid, asks above, keeping the book two-sided.
func (g *ClusteredMid) clusteredPrice(side orderbookv1.Side) orderbookv1.Price {
	tick := g.params.Resolution.TickSize
	offsetTicks := g.rng.NormFloat64() * g.stddev
	if offsetTicks < 0 {
		offsetTicks = -offsetTicks
	}
	offset := orderbookv1.Price(offsetTicks+1) * tick

	if side == orderbookv1.SideBid {
		return g.alignPrice(g.mid - offset)
	}
	return g.alignPrice(g.mid + offset)
}

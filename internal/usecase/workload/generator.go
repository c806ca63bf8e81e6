// Package workload implements deterministic order event generators. Each
// generator is seeded, restartable via Reset, and produces the identical
// event sequence on every replay, which is what makes cross-variant
// conformance checking possible.
package workload

import (
	"fmt"
	"math/rand"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
)

// Scenario names accepted by New.
const (
	ScenarioUniform     = "uniform"
	ScenarioClustered   = "clustered"
	ScenarioZipf        = "zipf"
	ScenarioSweep       = "sweep"
	ScenarioBuildup     = "buildup"
	ScenarioHighCancel  = "highcancel"
	ScenarioBursty      = "bursty"
	ScenarioSteadyState = "steadystate"
)

// Params sizes a generated workload. Prices stay inside [PriceMin, PriceMax]
// and are always tick-aligned; quantities are lot-aligned.
type Params struct {
	Resolution orderbookv1.Resolution
	Seed       int64
	Events     int
	PriceMin   orderbookv1.Price
	PriceMax   orderbookv1.Price
	MaxLots    int64
}

// Scenarios lists all generator names.
func Scenarios() []string {
	return []string{
		ScenarioUniform, ScenarioClustered, ScenarioZipf, ScenarioSweep,
		ScenarioBuildup, ScenarioHighCancel, ScenarioBursty, ScenarioSteadyState,
	}
}

// New constructs the named generator.
func New(scenario string, params Params) (workloadv1.Generator, error) {
	switch scenario {
	case ScenarioUniform:
		return NewUniform(params), nil
	case ScenarioClustered:
		return NewClusteredMid(params), nil
	case ScenarioZipf:
		return NewZipf(params), nil
	case ScenarioSweep:
		return NewSweep(params), nil
	case ScenarioBuildup:
		return NewBuildup(params), nil
	case ScenarioHighCancel:
		return NewHighCancel(params), nil
	case ScenarioBursty:
		return NewBursty(params), nil
	case ScenarioSteadyState:
		return NewSteadyState(params), nil
	default:
		return nil, fmt.Errorf("unknown workload scenario %q", scenario)
	}
}

// state is the bookkeeping shared by the random generators: the rng, the id
// counter and the set of ids believed to be resting. The live set is an
// approximation (matching may have consumed an id); a cancel of a consumed id
// is a normal OrderNotFound outcome, identical for every variant.
type state struct {
	params  Params
	rng     *rand.Rand
	nextID  orderbookv1.OrderID
	live    []orderbookv1.OrderID
	emitted int
}

func newState(params Params) state {
	return state{
		params: params,
		rng:    rand.New(rand.NewSource(params.Seed)),
	}
}

func (s *state) reset() {
	s.rng = rand.New(rand.NewSource(s.params.Seed))
	s.nextID = 0
	s.live = s.live[:0]
	s.emitted = 0
}

func (s *state) issueID() orderbookv1.OrderID {
	s.nextID++
	return s.nextID
}

// alignPrice clamps into [PriceMin, PriceMax] and snaps down to the tick
// grid.
func (s *state) alignPrice(p orderbookv1.Price) orderbookv1.Price {
	if p < s.params.PriceMin {
		p = s.params.PriceMin
	}
	if p > s.params.PriceMax {
		p = s.params.PriceMax
	}
	tick := s.params.Resolution.TickSize
	p -= p % tick
	if p < s.params.PriceMin {
		p = s.params.PriceMin
	}
	return p
}

func (s *state) randomQuantity() orderbookv1.Quantity {
	lots := 1 + s.rng.Int63n(s.params.MaxLots)
	return orderbookv1.Quantity(lots) * s.params.Resolution.LotSize
}

func (s *state) randomSide() orderbookv1.Side {
	if s.rng.Intn(2) == 0 {
		return orderbookv1.SideBid
	}
	return orderbookv1.SideAsk
}

// uniformPrice picks a tick-aligned price uniformly over the full range.
func (s *state) uniformPrice() orderbookv1.Price {
	tick := s.params.Resolution.TickSize
	ticks := int64((s.params.PriceMax-s.params.PriceMin)/tick) + 1
	return s.params.PriceMin + orderbookv1.Price(s.rng.Int63n(ticks))*tick
}

func (s *state) limitEvent(side orderbookv1.Side, price orderbookv1.Price) workloadv1.Event {
	id := s.issueID()
	s.live = append(s.live, id)
	return workloadv1.Event{
		Type:  workloadv1.EventLimit,
		Order: orderbookv1.NewOrder(id, side, price, s.randomQuantity()),
	}
}

func (s *state) marketEvent() workloadv1.Event {
	return workloadv1.Event{
		Type:     workloadv1.EventMarket,
		Side:     s.randomSide(),
		Quantity: s.randomQuantity(),
	}
}

// cancelAt removes the live id at index and emits its cancel.
func (s *state) cancelAt(index int) workloadv1.Event {
	target := s.live[index]
	s.live = append(s.live[:index], s.live[index+1:]...)
	return workloadv1.Event{Type: workloadv1.EventCancel, Target: target}
}

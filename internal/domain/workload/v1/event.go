// Package workloadv1 defines the order event stream consumed by the matching
// engine and produced by workload generators.
package workloadv1

import (
	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

// EventType discriminates order events.
type EventType uint8

const (
	// EventLimit submits a new limit order.
	EventLimit EventType = iota
	// EventMarket submits a new market order.
	EventMarket
	// EventCancel cancels a resting order by id.
	EventCancel
)

func (t EventType) String() string {
	switch t {
	case EventLimit:
		return "limit"
	case EventMarket:
		return "market"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one order event. Order is set for limits, Side/Quantity for
// markets, Target for cancels.
type Event struct {
	Type     EventType
	Order    orderbookv1.Order
	Side     orderbookv1.Side
	Quantity orderbookv1.Quantity
	Target   orderbookv1.OrderID
}

// Generator produces a deterministic, restartable sequence of order events.
// Next returns false when the sequence is exhausted; Reset rewinds to the
// beginning so the identical sequence can be replayed against another book.
type Generator interface {
	Name() string
	Next() (Event, bool)
	Reset()
}

// Package book provides the storage variants behind the Book contract:
// a flat array-of-structs scan baseline, a columnar structure-of-arrays
// layout, a direct-indexed fixed-tick array, an ordered-map reference, and a
// hybrid hot/cold tiered book. All variants yield identical observable
// behavior for the same event sequence; they differ only in data layout and
// lookup cost.
package book

import (
	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

// level is one price level: resting orders in strict arrival order.
type level struct {
	orders []orderbookv1.Order
}

func (l *level) empty() bool {
	return len(l.orders) == 0
}

func (l *level) add(o orderbookv1.Order) {
	l.orders = append(l.orders, o)
}

func (l *level) depth() orderbookv1.Quantity {
	var total orderbookv1.Quantity
	for i := range l.orders {
		total += l.orders[i].Quantity
	}
	return total
}

// removeByID splices an order out of the level, preserving FIFO order of the
// rest.
func (l *level) removeByID(id orderbookv1.OrderID) (orderbookv1.Order, bool) {
	for i := range l.orders {
		if l.orders[i].ID == id {
			removed := l.orders[i]
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return removed, true
		}
	}
	return orderbookv1.Order{}, false
}

// fill consumes up to `remaining` quantity from the level front-to-back.
// Fully consumed orders are removed and reported through the removed
// callback; a partially consumed order keeps its place at the head. Returns
// the fills and the unconsumed remainder.
func (l *level) fill(remaining orderbookv1.Quantity, removed func(orderbookv1.OrderID)) ([]orderbookv1.Fill, orderbookv1.Quantity) {
	var fills []orderbookv1.Fill
	consumed := 0

	for i := range l.orders {
		if remaining == 0 {
			break
		}
		resting := &l.orders[i]

		take := resting.Quantity
		if remaining < take {
			take = remaining
		}
		resting.Quantity -= take
		remaining -= take

		fills = append(fills, orderbookv1.Fill{
			RestingID:        resting.ID,
			Price:            resting.Price,
			Quantity:         take,
			RestingRemaining: resting.Quantity,
		})

		if resting.Quantity == 0 {
			consumed++
			if removed != nil {
				removed(resting.ID)
			}
		}
	}

	if consumed > 0 {
		l.orders = append(l.orders[:0], l.orders[consumed:]...)
	}
	return fills, remaining
}

// Package matching implements the matching engine. The engine owns no book
// state; it applies order events to an injected Book and enforces price-time
// priority: best price first, earliest arrival sequence first at equal
// prices, never any other tie-break.
package matching

import (
	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
	"github.com/OGN3N/orderbook/pkg/logger"
)

// Engine applies order events to a single book instance. Not safe for
// concurrent use; callers serialize calls, one engine per book.
type Engine struct {
	book orderbookv1.Book
	log  logger.Interface
}

// NewEngine creates an engine bound to the given book.
func NewEngine(book orderbookv1.Book, log logger.Interface) *Engine {
	return &Engine{
		book: book,
		log:  log,
	}
}

// Result is the per-event outcome of Apply. Err carries the book error for a
// rejected event; errors are outcomes, not stream failures.
type Result struct {
	Fills    []orderbookv1.Fill
	Canceled orderbookv1.Order
	Err      error
}

// Apply dispatches one workload event.
func (e *Engine) Apply(event workloadv1.Event) Result {
	switch event.Type {
	case workloadv1.EventLimit:
		fills, err := e.SubmitLimit(event.Order)
		return Result{Fills: fills, Err: err}
	case workloadv1.EventMarket:
		return Result{Fills: e.SubmitMarket(event.Side, event.Quantity)}
	case workloadv1.EventCancel:
		canceled, err := e.Cancel(event.Target)
		return Result{Canceled: canceled, Err: err}
	default:
		return Result{}
	}
}

// SubmitLimit accepts a limit order. A non-crossing order rests directly. A
// crossing order consumes opposite liquidity one best level at a time,
// re-evaluating the opposite best after each level so price priority holds
// while the book changes underneath; any unfilled remainder then rests.
func (e *Engine) SubmitLimit(order orderbookv1.Order) ([]orderbookv1.Fill, error) {
	res := e.book.Resolution()
	if order.ID == 0 {
		return nil, orderbookv1.ErrInvalidOrder
	}
	if err := res.ValidatePrice(order.Price); err != nil {
		return nil, err
	}
	if err := res.ValidateQuantity(order.Quantity); err != nil {
		return nil, err
	}

	var fills []orderbookv1.Fill
	remaining := order.Quantity

	for remaining > 0 {
		best, ok := e.oppositeBest(order.Side)
		if !ok || !crosses(order.Side, order.Price, best) {
			break
		}

		depth := e.book.DepthAtPrice(best, order.Side.Opposite())
		take := min(remaining, depth)
		levelFills := e.book.ExecuteMarketOrder(order.Side, take)
		if len(levelFills) == 0 {
			break
		}
		for i := range levelFills {
			levelFills[i].TakerID = order.ID
			remaining -= levelFills[i].Quantity
		}
		fills = append(fills, levelFills...)
	}

	if remaining > 0 {
		rest := order
		rest.Quantity = remaining
		if err := e.book.AddLimitOrder(rest); err != nil {
			e.log.Debug("limit remainder rejected",
				logger.Field{Key: "order_id", Value: order.ID},
				logger.Field{Key: "error", Value: err.Error()},
			)
			return fills, err
		}
	}
	return fills, nil
}

// SubmitMarket consumes resting liquidity; an unfilled remainder is
// discarded, never rested.
func (e *Engine) SubmitMarket(side orderbookv1.Side, quantity orderbookv1.Quantity) []orderbookv1.Fill {
	return e.book.ExecuteMarketOrder(side, quantity)
}

// Cancel removes a resting order and returns its pre-cancel state.
func (e *Engine) Cancel(id orderbookv1.OrderID) (orderbookv1.Order, error) {
	return e.book.CancelOrder(id)
}

// Book returns the engine's book for read-side observations.
func (e *Engine) Book() orderbookv1.Book {
	return e.book
}

func (e *Engine) oppositeBest(side orderbookv1.Side) (orderbookv1.Price, bool) {
	if side == orderbookv1.SideBid {
		return e.book.BestAsk()
	}
	return e.book.BestBid()
}

// crosses reports whether a limit at `price` on `side` trades against the
// opposite best.
func crosses(side orderbookv1.Side, price, oppositeBest orderbookv1.Price) bool {
	if side == orderbookv1.SideBid {
		return price >= oppositeBest
	}
	return price <= oppositeBest
}

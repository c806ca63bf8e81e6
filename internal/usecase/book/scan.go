package book

import (
	"fmt"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

// ScanBook stores all resting orders in one growable slice in arrival order
// and finds price levels by scanning it. O(n) everywhere, but a single
// contiguous allocation; acceptable only for small depth, useful as the
// simplicity baseline.
type ScanBook struct {
	res    orderbookv1.Resolution
	orders []orderbookv1.Order
	live   map[orderbookv1.OrderID]struct{}
	seq    uint64
}

// NewScanBook creates an empty array-of-structs book.
func NewScanBook(res orderbookv1.Resolution) *ScanBook {
	return &ScanBook{
		res:  res,
		live: make(map[orderbookv1.OrderID]struct{}),
	}
}

// Resolution returns the book's tick/lot resolution.
func (b *ScanBook) Resolution() orderbookv1.Resolution {
	return b.res
}

// AddLimitOrder appends the order to the arrival sequence.
func (b *ScanBook) AddLimitOrder(order orderbookv1.Order) error {
	if order.ID == 0 {
		return orderbookv1.ErrInvalidOrder
	}
	if _, exists := b.live[order.ID]; exists {
		return fmt.Errorf("%w: id %d", orderbookv1.ErrDuplicateID, order.ID)
	}
	if err := b.res.ValidatePrice(order.Price); err != nil {
		return err
	}
	if err := b.res.ValidateQuantity(order.Quantity); err != nil {
		return err
	}

	b.seq++
	order.Sequence = b.seq
	order.Original = order.Quantity

	b.orders = append(b.orders, order)
	b.live[order.ID] = struct{}{}
	return nil
}

// ExecuteMarketOrder sweeps the opposite side best price first. Within a
// level, slice position is arrival order, so a front-to-back pass is FIFO.
func (b *ScanBook) ExecuteMarketOrder(side orderbookv1.Side, quantity orderbookv1.Quantity) []orderbookv1.Fill {
	opposite := side.Opposite()
	var fills []orderbookv1.Fill

	for quantity > 0 {
		price, ok := b.bestOn(opposite)
		if !ok {
			break
		}
		for i := range b.orders {
			if quantity == 0 {
				break
			}
			resting := &b.orders[i]
			if resting.Side != opposite || resting.Price != price {
				continue
			}
			take := min(resting.Quantity, quantity)
			resting.Quantity -= take
			quantity -= take
			fills = append(fills, orderbookv1.Fill{
				RestingID:        resting.ID,
				Price:            price,
				Quantity:         take,
				RestingRemaining: resting.Quantity,
			})
		}
		b.compact()
	}
	return fills
}

// CancelOrder splices the order out, preserving arrival order of the rest.
func (b *ScanBook) CancelOrder(id orderbookv1.OrderID) (orderbookv1.Order, error) {
	if _, exists := b.live[id]; !exists {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}
	for i := range b.orders {
		if b.orders[i].ID == id {
			removed := b.orders[i]
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			delete(b.live, id)
			return removed, nil
		}
	}
	// Live set and slice disagree; treat as not found rather than panic.
	delete(b.live, id)
	return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
}

// BestBid returns the highest bid price with resting quantity.
func (b *ScanBook) BestBid() (orderbookv1.Price, bool) {
	return b.bestOn(orderbookv1.SideBid)
}

// BestAsk returns the lowest ask price with resting quantity.
func (b *ScanBook) BestAsk() (orderbookv1.Price, bool) {
	return b.bestOn(orderbookv1.SideAsk)
}

// DepthAtPrice sums remaining quantity at an exact price on a side.
func (b *ScanBook) DepthAtPrice(price orderbookv1.Price, side orderbookv1.Side) orderbookv1.Quantity {
	var total orderbookv1.Quantity
	for i := range b.orders {
		if b.orders[i].Side == side && b.orders[i].Price == price {
			total += b.orders[i].Quantity
		}
	}
	return total
}

func (b *ScanBook) bestOn(side orderbookv1.Side) (orderbookv1.Price, bool) {
	var best orderbookv1.Price
	found := false
	for i := range b.orders {
		o := &b.orders[i]
		if o.Side != side {
			continue
		}
		if !found {
			best = o.Price
			found = true
			continue
		}
		if side == orderbookv1.SideBid && o.Price > best {
			best = o.Price
		}
		if side == orderbookv1.SideAsk && o.Price < best {
			best = o.Price
		}
	}
	return best, found
}

// compact drops fully filled orders after a sweep pass.
func (b *ScanBook) compact() {
	kept := b.orders[:0]
	for _, o := range b.orders {
		if o.Quantity == 0 {
			delete(b.live, o.ID)
			continue
		}
		kept = append(kept, o)
	}
	b.orders = kept
}

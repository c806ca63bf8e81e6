package book

import (
	"fmt"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

// ColumnarBook stores order fields in separate parallel slices sharing one
// slot index, so an operation touching a single field (scanning quantities
// for depth, prices for the best level) walks a dense homogeneous array
// instead of loading whole order records. A slot index per id is kept
// alongside for cancels. Slot order is arrival order, which keeps level walks
// FIFO for free.
type ColumnarBook struct {
	res orderbookv1.Resolution

	ids        []orderbookv1.OrderID
	sides      []orderbookv1.Side
	prices     []orderbookv1.Price
	quantities []orderbookv1.Quantity
	originals  []orderbookv1.Quantity
	sequences  []uint64

	slots map[orderbookv1.OrderID]int
	seq   uint64
}

// NewColumnarBook creates an empty structure-of-arrays book.
func NewColumnarBook(res orderbookv1.Resolution) *ColumnarBook {
	return &ColumnarBook{
		res:   res,
		slots: make(map[orderbookv1.OrderID]int),
	}
}

// Resolution returns the book's tick/lot resolution.
func (b *ColumnarBook) Resolution() orderbookv1.Resolution {
	return b.res
}

// AddLimitOrder appends one element to every column.
func (b *ColumnarBook) AddLimitOrder(order orderbookv1.Order) error {
	if order.ID == 0 {
		return orderbookv1.ErrInvalidOrder
	}
	if _, exists := b.slots[order.ID]; exists {
		return fmt.Errorf("%w: id %d", orderbookv1.ErrDuplicateID, order.ID)
	}
	if err := b.res.ValidatePrice(order.Price); err != nil {
		return err
	}
	if err := b.res.ValidateQuantity(order.Quantity); err != nil {
		return err
	}

	b.seq++
	b.slots[order.ID] = len(b.ids)
	b.ids = append(b.ids, order.ID)
	b.sides = append(b.sides, order.Side)
	b.prices = append(b.prices, order.Price)
	b.quantities = append(b.quantities, order.Quantity)
	b.originals = append(b.originals, order.Quantity)
	b.sequences = append(b.sequences, b.seq)
	return nil
}

// ExecuteMarketOrder sweeps the opposite side best price first, FIFO within
// each level by slot order.
func (b *ColumnarBook) ExecuteMarketOrder(side orderbookv1.Side, quantity orderbookv1.Quantity) []orderbookv1.Fill {
	opposite := side.Opposite()
	var fills []orderbookv1.Fill

	for quantity > 0 {
		price, ok := b.bestOn(opposite)
		if !ok {
			break
		}
		for i := range b.ids {
			if quantity == 0 {
				break
			}
			if b.sides[i] != opposite || b.prices[i] != price {
				continue
			}
			take := min(b.quantities[i], quantity)
			b.quantities[i] -= take
			quantity -= take
			fills = append(fills, orderbookv1.Fill{
				RestingID:        b.ids[i],
				Price:            price,
				Quantity:         take,
				RestingRemaining: b.quantities[i],
			})
		}
		b.compact()
	}
	return fills
}

// CancelOrder removes the order's slot from every column.
func (b *ColumnarBook) CancelOrder(id orderbookv1.OrderID) (orderbookv1.Order, error) {
	slot, exists := b.slots[id]
	if !exists {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}

	removed := orderbookv1.Order{
		ID:       b.ids[slot],
		Side:     b.sides[slot],
		Price:    b.prices[slot],
		Quantity: b.quantities[slot],
		Original: b.originals[slot],
		Sequence: b.sequences[slot],
	}
	b.removeAt(slot)
	delete(b.slots, id)
	return removed, nil
}

// BestBid returns the highest bid price with resting quantity.
func (b *ColumnarBook) BestBid() (orderbookv1.Price, bool) {
	return b.bestOn(orderbookv1.SideBid)
}

// BestAsk returns the lowest ask price with resting quantity.
func (b *ColumnarBook) BestAsk() (orderbookv1.Price, bool) {
	return b.bestOn(orderbookv1.SideAsk)
}

// DepthAtPrice sums the quantity column over slots matching price and side.
func (b *ColumnarBook) DepthAtPrice(price orderbookv1.Price, side orderbookv1.Side) orderbookv1.Quantity {
	var total orderbookv1.Quantity
	for i := range b.prices {
		if b.sides[i] == side && b.prices[i] == price {
			total += b.quantities[i]
		}
	}
	return total
}

// bestOn scans only the side and price columns.
func (b *ColumnarBook) bestOn(side orderbookv1.Side) (orderbookv1.Price, bool) {
	var best orderbookv1.Price
	found := false
	for i := range b.prices {
		if b.sides[i] != side {
			continue
		}
		if !found {
			best = b.prices[i]
			found = true
			continue
		}
		if side == orderbookv1.SideBid && b.prices[i] > best {
			best = b.prices[i]
		}
		if side == orderbookv1.SideAsk && b.prices[i] < best {
			best = b.prices[i]
		}
	}
	return best, found
}

// removeAt splices one slot out of every column and reindexes the slots that
// shifted down.
func (b *ColumnarBook) removeAt(slot int) {
	b.ids = append(b.ids[:slot], b.ids[slot+1:]...)
	b.sides = append(b.sides[:slot], b.sides[slot+1:]...)
	b.prices = append(b.prices[:slot], b.prices[slot+1:]...)
	b.quantities = append(b.quantities[:slot], b.quantities[slot+1:]...)
	b.originals = append(b.originals[:slot], b.originals[slot+1:]...)
	b.sequences = append(b.sequences[:slot], b.sequences[slot+1:]...)
	for i := slot; i < len(b.ids); i++ {
		b.slots[b.ids[i]] = i
	}
}

// compact drops fully filled slots after a sweep pass and rebuilds the slot
// index.
func (b *ColumnarBook) compact() {
	w := 0
	for r := 0; r < len(b.ids); r++ {
		if b.quantities[r] == 0 {
			delete(b.slots, b.ids[r])
			continue
		}
		if w != r {
			b.ids[w] = b.ids[r]
			b.sides[w] = b.sides[r]
			b.prices[w] = b.prices[r]
			b.quantities[w] = b.quantities[r]
			b.originals[w] = b.originals[r]
			b.sequences[w] = b.sequences[r]
		}
		b.slots[b.ids[w]] = w
		w++
	}
	b.ids = b.ids[:w]
	b.sides = b.sides[:w]
	b.prices = b.prices[:w]
	b.quantities = b.quantities[:w]
	b.originals = b.originals[:w]
	b.sequences = b.sequences[:w]
}

package book

import (
	"fmt"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

type tickRef struct {
	side orderbookv1.Side
	idx  int
}

// FixedTickBook preallocates one level slot per tick over a bounded price
// window [base, base+span*tick). Price maps to slot by integer offset, giving
// O(1) level lookup at the cost of memory proportional to the window and a
// hard ErrPriceOutOfRange outside it.
type FixedTickBook struct {
	res  orderbookv1.Resolution
	base orderbookv1.Price
	span int

	bids []level
	asks []level

	refs map[orderbookv1.OrderID]tickRef
	seq  uint64
}

// NewFixedTickBook creates a direct-indexed book covering span ticks starting
// at base. Base must be tick-aligned and positive.
func NewFixedTickBook(res orderbookv1.Resolution, base orderbookv1.Price, span int) (*FixedTickBook, error) {
	if span <= 0 {
		return nil, fmt.Errorf("fixed-tick span must be positive, got %d", span)
	}
	if err := res.ValidatePrice(base); err != nil {
		return nil, fmt.Errorf("fixed-tick base: %w", err)
	}
	return &FixedTickBook{
		res:  res,
		base: base,
		span: span,
		bids: make([]level, span),
		asks: make([]level, span),
		refs: make(map[orderbookv1.OrderID]tickRef),
	}, nil
}

// Resolution returns the book's tick/lot resolution.
func (b *FixedTickBook) Resolution() orderbookv1.Resolution {
	return b.res
}

// AddLimitOrder appends the order to its directly indexed level.
func (b *FixedTickBook) AddLimitOrder(order orderbookv1.Order) error {
	if order.ID == 0 {
		return orderbookv1.ErrInvalidOrder
	}
	if _, exists := b.refs[order.ID]; exists {
		return fmt.Errorf("%w: id %d", orderbookv1.ErrDuplicateID, order.ID)
	}
	if err := b.res.ValidatePrice(order.Price); err != nil {
		return err
	}
	if err := b.res.ValidateQuantity(order.Quantity); err != nil {
		return err
	}
	idx, ok := b.index(order.Price)
	if !ok {
		return fmt.Errorf("%w: price %d outside [%d, %d)", orderbookv1.ErrPriceOutOfRange,
			order.Price, b.base, b.base+orderbookv1.Price(b.span)*b.res.TickSize)
	}

	b.seq++
	order.Sequence = b.seq
	order.Original = order.Quantity

	b.sideLevels(order.Side)[idx].add(order)
	b.refs[order.ID] = tickRef{side: order.Side, idx: idx}
	return nil
}

// ExecuteMarketOrder walks the opposite side's slots in improving order.
func (b *FixedTickBook) ExecuteMarketOrder(side orderbookv1.Side, quantity orderbookv1.Quantity) []orderbookv1.Fill {
	var fills []orderbookv1.Fill
	removed := func(id orderbookv1.OrderID) { delete(b.refs, id) }

	if side == orderbookv1.SideBid {
		// Sweep asks lowest first.
		for idx := 0; idx < b.span && quantity > 0; idx++ {
			if b.asks[idx].empty() {
				continue
			}
			var levelFills []orderbookv1.Fill
			levelFills, quantity = b.asks[idx].fill(quantity, removed)
			fills = append(fills, levelFills...)
		}
		return fills
	}

	// Sweep bids highest first.
	for idx := b.span - 1; idx >= 0 && quantity > 0; idx-- {
		if b.bids[idx].empty() {
			continue
		}
		var levelFills []orderbookv1.Fill
		levelFills, quantity = b.bids[idx].fill(quantity, removed)
		fills = append(fills, levelFills...)
	}
	return fills
}

// CancelOrder removes the order from its slot via the id index.
func (b *FixedTickBook) CancelOrder(id orderbookv1.OrderID) (orderbookv1.Order, error) {
	ref, exists := b.refs[id]
	if !exists {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}
	removed, ok := b.sideLevels(ref.side)[ref.idx].removeByID(id)
	delete(b.refs, id)
	if !ok {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}
	return removed, nil
}

// BestBid scans bid slots from the top of the window down.
func (b *FixedTickBook) BestBid() (orderbookv1.Price, bool) {
	for idx := b.span - 1; idx >= 0; idx-- {
		if !b.bids[idx].empty() {
			return b.priceAt(idx), true
		}
	}
	return 0, false
}

// BestAsk scans ask slots from the bottom of the window up.
func (b *FixedTickBook) BestAsk() (orderbookv1.Price, bool) {
	for idx := 0; idx < b.span; idx++ {
		if !b.asks[idx].empty() {
			return b.priceAt(idx), true
		}
	}
	return 0, false
}

// DepthAtPrice returns zero for prices outside the window; out-of-range is
// only an error on insert.
func (b *FixedTickBook) DepthAtPrice(price orderbookv1.Price, side orderbookv1.Side) orderbookv1.Quantity {
	idx, ok := b.index(price)
	if !ok {
		return 0
	}
	return b.sideLevels(side)[idx].depth()
}

func (b *FixedTickBook) sideLevels(side orderbookv1.Side) []level {
	if side == orderbookv1.SideBid {
		return b.bids
	}
	return b.asks
}

func (b *FixedTickBook) index(price orderbookv1.Price) (int, bool) {
	if price < b.base || price%b.res.TickSize != 0 {
		return 0, false
	}
	idx := int((price - b.base) / b.res.TickSize)
	if idx >= b.span {
		return 0, false
	}
	return idx, true
}

func (b *FixedTickBook) priceAt(idx int) orderbookv1.Price {
	return b.base + orderbookv1.Price(idx)*b.res.TickSize
}

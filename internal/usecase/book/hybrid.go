package book

import (
	"fmt"

	"github.com/google/btree"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

// HybridBook splits storage into a hot tier and a cold tier. The hot tier is
// a direct-indexed window of levels around the current best prices; the cold
// tier is an ordered tree holding everything outside the window. A price
// lives in exactly one tier at a time. The tier manager recenters the window
// only after an operation that moved best bid or best ask, and only when the
// window has drifted far enough; migration moves whole levels so FIFO order
// is preserved and callers see a single logical book.
type HybridBook struct {
	res   orderbookv1.Resolution
	width int
	lo    orderbookv1.Price

	hotBids []level
	hotAsks []level

	coldBids *btree.BTreeG[*treeLevel]
	coldAsks *btree.BTreeG[*treeLevel]

	refs map[orderbookv1.OrderID]treeRef
	seq  uint64
}

// NewHybridBook creates a hybrid book whose hot window spans width ticks
// centered on the given price.
func NewHybridBook(res orderbookv1.Resolution, center orderbookv1.Price, width int) (*HybridBook, error) {
	if width <= 0 {
		return nil, fmt.Errorf("hybrid hot window width must be positive, got %d", width)
	}
	if err := res.ValidatePrice(center); err != nil {
		return nil, fmt.Errorf("hybrid window center: %w", err)
	}
	b := &HybridBook{
		res:      res,
		width:    width,
		hotBids:  make([]level, width),
		hotAsks:  make([]level, width),
		coldBids: btree.NewG(8, levelLess),
		coldAsks: btree.NewG(8, levelLess),
		refs:     make(map[orderbookv1.OrderID]treeRef),
	}
	b.lo = b.clampLo(center - orderbookv1.Price(width/2)*res.TickSize)
	return b, nil
}

// Resolution returns the book's tick/lot resolution.
func (b *HybridBook) Resolution() orderbookv1.Resolution {
	return b.res
}

// AddLimitOrder routes the order to the tier owning its price, then lets the
// tier manager react if the insert improved a best price.
func (b *HybridBook) AddLimitOrder(order orderbookv1.Order) error {
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

	before, hadBefore := b.bestOn(order.Side)

	b.seq++
	order.Sequence = b.seq
	order.Original = order.Quantity

	if idx, ok := b.hotIndex(order.Price); ok {
		b.hotLevels(order.Side)[idx].add(order)
	} else {
		tree := b.coldTree(order.Side)
		lvl, exists := tree.Get(&treeLevel{price: order.Price})
		if !exists {
			lvl = &treeLevel{price: order.Price}
			tree.ReplaceOrInsert(lvl)
		}
		lvl.add(order)
	}
	b.refs[order.ID] = treeRef{side: order.Side, price: order.Price}

	if after, hasAfter := b.bestOn(order.Side); !hadBefore || !hasAfter || after != before {
		b.rebalance()
	}
	return nil
}

// ExecuteMarketOrder consumes the globally best opposite level on each
// iteration, regardless of which tier holds it.
func (b *HybridBook) ExecuteMarketOrder(side orderbookv1.Side, quantity orderbookv1.Quantity) []orderbookv1.Fill {
	opposite := side.Opposite()
	before, hadBefore := b.bestOn(opposite)
	removed := func(id orderbookv1.OrderID) { delete(b.refs, id) }

	var fills []orderbookv1.Fill
	for quantity > 0 {
		price, ok := b.bestOn(opposite)
		if !ok {
			break
		}

		var levelFills []orderbookv1.Fill
		if idx, hot := b.hotIndex(price); hot {
			levelFills, quantity = b.hotLevels(opposite)[idx].fill(quantity, removed)
		} else {
			tree := b.coldTree(opposite)
			lvl, _ := tree.Get(&treeLevel{price: price})
			levelFills, quantity = lvl.fill(quantity, removed)
			if lvl.empty() {
				tree.Delete(lvl)
			}
		}
		fills = append(fills, levelFills...)
	}

	if after, hasAfter := b.bestOn(opposite); hadBefore && (!hasAfter || after != before) {
		b.rebalance()
	}
	return fills
}

// CancelOrder removes the order from whichever tier currently owns its
// price.
func (b *HybridBook) CancelOrder(id orderbookv1.OrderID) (orderbookv1.Order, error) {
	ref, exists := b.refs[id]
	if !exists {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}
	delete(b.refs, id)

	before, hadBefore := b.bestOn(ref.side)

	var removed orderbookv1.Order
	var ok bool
	if idx, hot := b.hotIndex(ref.price); hot {
		removed, ok = b.hotLevels(ref.side)[idx].removeByID(id)
	} else {
		tree := b.coldTree(ref.side)
		if lvl, found := tree.Get(&treeLevel{price: ref.price}); found {
			removed, ok = lvl.removeByID(id)
			if lvl.empty() {
				tree.Delete(lvl)
			}
		}
	}
	if !ok {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}

	if after, hasAfter := b.bestOn(ref.side); hadBefore && (!hasAfter || after != before) {
		b.rebalance()
	}
	return removed, nil
}

// BestBid returns the best bid across both tiers.
func (b *HybridBook) BestBid() (orderbookv1.Price, bool) {
	return b.bestOn(orderbookv1.SideBid)
}

// BestAsk returns the best ask across both tiers.
func (b *HybridBook) BestAsk() (orderbookv1.Price, bool) {
	return b.bestOn(orderbookv1.SideAsk)
}

// DepthAtPrice reports depth from whichever tier owns the price.
func (b *HybridBook) DepthAtPrice(price orderbookv1.Price, side orderbookv1.Side) orderbookv1.Quantity {
	if idx, hot := b.hotIndex(price); hot {
		return b.hotLevels(side)[idx].depth()
	}
	lvl, ok := b.coldTree(side).Get(&treeLevel{price: price})
	if !ok {
		return 0
	}
	return lvl.depth()
}

func (b *HybridBook) hotLevels(side orderbookv1.Side) []level {
	if side == orderbookv1.SideBid {
		return b.hotBids
	}
	return b.hotAsks
}

func (b *HybridBook) coldTree(side orderbookv1.Side) *btree.BTreeG[*treeLevel] {
	if side == orderbookv1.SideBid {
		return b.coldBids
	}
	return b.coldAsks
}

func (b *HybridBook) hotIndex(price orderbookv1.Price) (int, bool) {
	if price < b.lo || price%b.res.TickSize != 0 {
		return 0, false
	}
	idx := int((price - b.lo) / b.res.TickSize)
	if idx >= b.width {
		return 0, false
	}
	return idx, true
}

func (b *HybridBook) hotPriceAt(idx int) orderbookv1.Price {
	return b.lo + orderbookv1.Price(idx)*b.res.TickSize
}

// bestOn combines the hot window scan with the cold tree extreme. The cold
// tier can hold prices on either side of the window, so the hot result alone
// is not authoritative.
func (b *HybridBook) bestOn(side orderbookv1.Side) (orderbookv1.Price, bool) {
	var hotBest orderbookv1.Price
	hotFound := false
	levels := b.hotLevels(side)
	if side == orderbookv1.SideBid {
		for idx := b.width - 1; idx >= 0; idx-- {
			if !levels[idx].empty() {
				hotBest = b.hotPriceAt(idx)
				hotFound = true
				break
			}
		}
	} else {
		for idx := 0; idx < b.width; idx++ {
			if !levels[idx].empty() {
				hotBest = b.hotPriceAt(idx)
				hotFound = true
				break
			}
		}
	}

	var coldLvl *treeLevel
	var coldFound bool
	if side == orderbookv1.SideBid {
		coldLvl, coldFound = b.coldBids.Max()
	} else {
		coldLvl, coldFound = b.coldAsks.Min()
	}

	switch {
	case hotFound && coldFound:
		if side == orderbookv1.SideBid {
			return max(hotBest, coldLvl.price), true
		}
		return min(hotBest, coldLvl.price), true
	case hotFound:
		return hotBest, true
	case coldFound:
		return coldLvl.price, true
	default:
		return 0, false
	}
}

// rebalance recenters the hot window on the current market. Called only
// after operations that moved a best price; the window shifts only once the
// desired center has drifted at least a quarter of the window, so steady
// two-sided flow does not thrash migrations.
func (b *HybridBook) rebalance() {
	bid, hasBid := b.bestOn(orderbookv1.SideBid)
	ask, hasAsk := b.bestOn(orderbookv1.SideAsk)

	var center orderbookv1.Price
	switch {
	case hasBid && hasAsk:
		center = (bid + ask) / 2
	case hasBid:
		center = bid
	case hasAsk:
		center = ask
	default:
		return
	}
	center -= center % b.res.TickSize

	newLo := b.clampLo(center - orderbookv1.Price(b.width/2)*b.res.TickSize)
	drift := newLo - b.lo
	if drift < 0 {
		drift = -drift
	}
	if int(drift/b.res.TickSize) < b.width/4 {
		return
	}
	b.shiftWindow(newLo)
}

// shiftWindow migrates whole levels between tiers for the new window bounds.
// Level slices move wholesale, so FIFO order within a level survives.
func (b *HybridBook) shiftWindow(newLo orderbookv1.Price) {
	newHi := newLo + orderbookv1.Price(b.width)*b.res.TickSize

	migrate := func(hot []level, cold *btree.BTreeG[*treeLevel]) []level {
		fresh := make([]level, b.width)

		// Hot levels leaving the window sink to the cold tree.
		for idx := range hot {
			if hot[idx].empty() {
				continue
			}
			price := b.hotPriceAt(idx)
			if price >= newLo && price < newHi {
				fresh[int((price-newLo)/b.res.TickSize)] = hot[idx]
			} else {
				cold.ReplaceOrInsert(&treeLevel{price: price, level: hot[idx]})
			}
		}

		// Cold levels entering the window rise to the hot array.
		var entering []*treeLevel
		cold.AscendGreaterOrEqual(&treeLevel{price: newLo}, func(lvl *treeLevel) bool {
			if lvl.price >= newHi {
				return false
			}
			entering = append(entering, lvl)
			return true
		})
		for _, lvl := range entering {
			cold.Delete(lvl)
			fresh[int((lvl.price-newLo)/b.res.TickSize)] = lvl.level
		}
		return fresh
	}

	b.hotBids = migrate(b.hotBids, b.coldBids)
	b.hotAsks = migrate(b.hotAsks, b.coldAsks)
	b.lo = newLo
}

func (b *HybridBook) clampLo(lo orderbookv1.Price) orderbookv1.Price {
	if lo < b.res.TickSize {
		return b.res.TickSize
	}
	return lo
}

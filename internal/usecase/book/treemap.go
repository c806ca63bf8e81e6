package book

import (
	"fmt"

	"github.com/google/btree"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

type treeLevel struct {
	price orderbookv1.Price
	level
}

func levelLess(a, b *treeLevel) bool {
	return a.price < b.price
}

type treeRef struct {
	side  orderbookv1.Side
	price orderbookv1.Price
}

// TreeBook keeps price levels in balanced ordered trees keyed by price.
// O(log n) level lookup, no price range restriction. This is the correctness
// reference the other variants are checked against.
type TreeBook struct {
	res  orderbookv1.Resolution
	bids *btree.BTreeG[*treeLevel]
	asks *btree.BTreeG[*treeLevel]
	refs map[orderbookv1.OrderID]treeRef
	seq  uint64
}

// NewTreeBook creates an empty ordered-map book.
func NewTreeBook(res orderbookv1.Resolution) *TreeBook {
	return &TreeBook{
		res:  res,
		bids: btree.NewG(8, levelLess),
		asks: btree.NewG(8, levelLess),
		refs: make(map[orderbookv1.OrderID]treeRef),
	}
}

// Resolution returns the book's tick/lot resolution.
func (b *TreeBook) Resolution() orderbookv1.Resolution {
	return b.res
}

// AddLimitOrder appends the order to its price level, creating the level if
// absent.
func (b *TreeBook) AddLimitOrder(order orderbookv1.Order) error {
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

	b.seq++
	order.Sequence = b.seq
	order.Original = order.Quantity

	tree := b.sideTree(order.Side)
	lvl, exists := tree.Get(&treeLevel{price: order.Price})
	if !exists {
		lvl = &treeLevel{price: order.Price}
		tree.ReplaceOrInsert(lvl)
	}
	lvl.add(order)
	b.refs[order.ID] = treeRef{side: order.Side, price: order.Price}
	return nil
}

// ExecuteMarketOrder consumes opposite-side levels from the best end of the
// tree, deleting levels as they empty.
func (b *TreeBook) ExecuteMarketOrder(side orderbookv1.Side, quantity orderbookv1.Quantity) []orderbookv1.Fill {
	opposite := side.Opposite()
	tree := b.sideTree(opposite)
	removed := func(id orderbookv1.OrderID) { delete(b.refs, id) }

	var fills []orderbookv1.Fill
	for quantity > 0 {
		var lvl *treeLevel
		var ok bool
		if opposite == orderbookv1.SideAsk {
			lvl, ok = tree.Min()
		} else {
			lvl, ok = tree.Max()
		}
		if !ok {
			break
		}

		var levelFills []orderbookv1.Fill
		levelFills, quantity = lvl.fill(quantity, removed)
		fills = append(fills, levelFills...)

		if lvl.empty() {
			tree.Delete(lvl)
		}
	}
	return fills
}

// CancelOrder removes the order from its level, dropping the level if it
// empties.
func (b *TreeBook) CancelOrder(id orderbookv1.OrderID) (orderbookv1.Order, error) {
	ref, exists := b.refs[id]
	if !exists {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}
	delete(b.refs, id)

	tree := b.sideTree(ref.side)
	lvl, ok := tree.Get(&treeLevel{price: ref.price})
	if !ok {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}
	removed, ok := lvl.removeByID(id)
	if !ok {
		return orderbookv1.Order{}, fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, id)
	}
	if lvl.empty() {
		tree.Delete(lvl)
	}
	return removed, nil
}

// BestBid returns the highest bid level price.
func (b *TreeBook) BestBid() (orderbookv1.Price, bool) {
	lvl, ok := b.bids.Max()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// BestAsk returns the lowest ask level price.
func (b *TreeBook) BestAsk() (orderbookv1.Price, bool) {
	lvl, ok := b.asks.Min()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// DepthAtPrice returns the level's aggregate quantity, zero if absent.
func (b *TreeBook) DepthAtPrice(price orderbookv1.Price, side orderbookv1.Side) orderbookv1.Quantity {
	lvl, ok := b.sideTree(side).Get(&treeLevel{price: price})
	if !ok {
		return 0
	}
	return lvl.depth()
}

func (b *TreeBook) sideTree(side orderbookv1.Side) *btree.BTreeG[*treeLevel] {
	if side == orderbookv1.SideBid {
		return b.bids
	}
	return b.asks
}

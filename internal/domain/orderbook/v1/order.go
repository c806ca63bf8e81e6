package orderbookv1

import "fmt"

// Price is a quoted price in raw integer units (e.g. cents). A price used
// against a book must be an exact multiple of the book's tick size.
type Price int64

// Quantity is an order size in raw integer units (e.g. shares). A quantity
// used against a book must be an exact multiple of the book's lot size.
type Quantity int64

// OrderID identifies an order. IDs are assigned by the caller and must be
// unique for the lifetime of a book instance. Zero is reserved to mean
// "no order" (see Fill.TakerID) and is rejected on insert.
type OrderID uint64

// Side represents the direction of an order.
type Side uint8

const (
	// SideBid represents a buy order.
	SideBid Side = iota
	// SideAsk represents a sell order.
	SideAsk
)

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBid {
		return SideAsk
	}
	return SideBid
}

func (s Side) String() string {
	if s == SideBid {
		return "bid"
	}
	return "ask"
}

// Resolution fixes the minimum valid increments for a book. It is immutable
// for the lifetime of the book instance.
type Resolution struct {
	TickSize Price
	LotSize  Quantity
}

// ValidatePrice checks that a price is positive and an exact multiple of the
// tick size.
func (r Resolution) ValidatePrice(p Price) error {
	if p <= 0 || p%r.TickSize != 0 {
		return fmt.Errorf("%w: price %d (tick size %d)", ErrInvalidPrice, p, r.TickSize)
	}
	return nil
}

// ValidateQuantity checks that a quantity is positive and an exact multiple
// of the lot size.
func (r Resolution) ValidateQuantity(q Quantity) error {
	if q <= 0 || q%r.LotSize != 0 {
		return fmt.Errorf("%w: quantity %d (lot size %d)", ErrInvalidQuantity, q, r.LotSize)
	}
	return nil
}

// Order represents a single order. Quantity is the remaining open size;
// Original is the size at submission. Sequence is assigned by the book on
// insert and is the sole time-priority key at equal prices.
type Order struct {
	ID       OrderID
	Side     Side
	Price    Price
	Quantity Quantity
	Original Quantity
	Sequence uint64
}

// NewOrder creates an order with the given parameters. Original mirrors the
// submitted quantity; Sequence stays zero until the order is accepted by a
// book.
func NewOrder(id OrderID, side Side, price Price, quantity Quantity) Order {
	return Order{
		ID:       id,
		Side:     side,
		Price:    price,
		Quantity: quantity,
		Original: quantity,
	}
}

// IsFilled checks if the order has no remaining quantity.
func (o Order) IsFilled() bool {
	return o.Quantity == 0
}

// Fill is an immutable record of a single match event. TakerID is zero for a
// pure market sweep with no incoming order id. RestingRemaining is the
// remaining quantity of the resting order after this fill.
type Fill struct {
	RestingID        OrderID
	TakerID          OrderID
	Price            Price
	Quantity         Quantity
	RestingRemaining Quantity
}

package orderbookv1

import "errors"

var (
	// ErrDuplicateID is returned when inserting an order whose id is already
	// live on the book.
	ErrDuplicateID = errors.New("order id already live on book")
	// ErrOrderNotFound is returned when canceling an id with no live order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidPrice is returned for a price that is not a positive multiple
	// of the book's tick size.
	ErrInvalidPrice = errors.New("price is not a valid tick")
	// ErrInvalidQuantity is returned for a quantity that is not a positive
	// multiple of the book's lot size.
	ErrInvalidQuantity = errors.New("quantity is not a valid lot")
	// ErrInvalidOrder is returned for an order with the reserved zero id.
	ErrInvalidOrder = errors.New("order id must be nonzero")
	// ErrPriceOutOfRange is returned by direct-indexed books when a price
	// falls outside the preallocated window.
	ErrPriceOutOfRange = errors.New("price outside preallocated window")
)

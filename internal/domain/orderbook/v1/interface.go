package orderbookv1

// Book is the uniform contract implemented by every storage variant. A book
// holds one instrument's resting orders on two sides, keyed by exact price,
// FIFO within a price level. Implementations are not safe for concurrent use;
// callers serialize all calls against one instance.
type Book interface {
	// AddLimitOrder inserts a new resting order at the tail of its price
	// level. It never matches, even when the price crosses the opposite side;
	// resolving a cross is the matching engine's job. Returns ErrDuplicateID,
	// ErrInvalidOrder, ErrInvalidPrice, ErrInvalidQuantity, or (for
	// direct-indexed variants) ErrPriceOutOfRange.
	AddLimitOrder(order Order) error

	// ExecuteMarketOrder consumes resting liquidity from the side opposite
	// `side`, best price first, FIFO within a level, until the requested
	// quantity is exhausted or the opposite side is empty. A partial fill is
	// normal; the returned fills may total less than requested.
	ExecuteMarketOrder(side Side, quantity Quantity) []Fill

	// CancelOrder removes a live resting order and returns its pre-cancel
	// state. Returns ErrOrderNotFound if no live order has the id.
	CancelOrder(id OrderID) (Order, error)

	// BestBid returns the price of the best non-empty bid level.
	BestBid() (Price, bool)

	// BestAsk returns the price of the best non-empty ask level.
	BestAsk() (Price, bool)

	// DepthAtPrice returns the aggregate resting quantity at an exact price
	// on a side, zero if the level does not exist.
	DepthAtPrice(price Price, side Side) Quantity

	// Resolution returns the tick/lot resolution fixed at construction.
	Resolution() Resolution
}

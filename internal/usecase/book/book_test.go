package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

func testConfig() Config {
	return Config{
		Resolution:    orderbookv1.Resolution{TickSize: 1, LotSize: 1},
		FixedTickBase: 1,
		FixedTickSpan: 1000,
		HybridCenter:  500,
		HybridWidth:   64,
	}
}

// newTestBook fails the test instead of returning an error so table tests
// stay flat.
func newTestBook(t *testing.T, variant string) orderbookv1.Book {
	t.Helper()
	b, err := New(variant, testConfig())
	require.NoError(t, err)
	return b
}

// forEachVariant runs the same assertions against every storage variant.
func forEachVariant(t *testing.T, fn func(t *testing.T, b orderbookv1.Book)) {
	for _, variant := range Variants() {
		t.Run(variant, func(t *testing.T) {
			fn(t, newTestBook(t, variant))
		})
	}
}

func TestNew_UnknownVariant(t *testing.T) {
	_, err := New("linkedlist", testConfig())
	assert.Error(t, err)
}

func TestBook_AddAndBest(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		_, hasBid := b.BestBid()
		_, hasAsk := b.BestAsk()
		assert.False(t, hasBid)
		assert.False(t, hasAsk)

		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 10)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(2, orderbookv1.SideBid, 98, 5)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(3, orderbookv1.SideAsk, 103, 7)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(4, orderbookv1.SideAsk, 105, 2)))

		bid, ok := b.BestBid()
		require.True(t, ok)
		assert.Equal(t, orderbookv1.Price(100), bid)

		ask, ok := b.BestAsk()
		require.True(t, ok)
		assert.Equal(t, orderbookv1.Price(103), ask)

		assert.Equal(t, orderbookv1.Quantity(10), b.DepthAtPrice(100, orderbookv1.SideBid))
		assert.Equal(t, orderbookv1.Quantity(7), b.DepthAtPrice(103, orderbookv1.SideAsk))
		assert.Equal(t, orderbookv1.Quantity(0), b.DepthAtPrice(100, orderbookv1.SideAsk))
		assert.Equal(t, orderbookv1.Quantity(0), b.DepthAtPrice(99, orderbookv1.SideBid))
	})
}

func TestBook_DepthAggregatesLevel(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideAsk, 100, 4)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(2, orderbookv1.SideAsk, 100, 6)))

		assert.Equal(t, orderbookv1.Quantity(10), b.DepthAtPrice(100, orderbookv1.SideAsk))
	})
}

func TestBook_PartialFillOfRestingOrder(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 10)))

		fills := b.ExecuteMarketOrder(orderbookv1.SideAsk, 4)
		require.Len(t, fills, 1)
		assert.Equal(t, orderbookv1.Fill{
			RestingID:        1,
			TakerID:          0,
			Price:            100,
			Quantity:         4,
			RestingRemaining: 6,
		}, fills[0])

		// Resting order stays at the head of its level with the remainder.
		assert.Equal(t, orderbookv1.Quantity(6), b.DepthAtPrice(100, orderbookv1.SideBid))
		bid, ok := b.BestBid()
		require.True(t, ok)
		assert.Equal(t, orderbookv1.Price(100), bid)
	})
}

func TestBook_MarketSweepFIFOWithinLevel(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 5)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(2, orderbookv1.SideBid, 100, 5)))

		fills := b.ExecuteMarketOrder(orderbookv1.SideAsk, 7)
		require.Len(t, fills, 2)

		assert.Equal(t, orderbookv1.OrderID(1), fills[0].RestingID)
		assert.Equal(t, orderbookv1.Quantity(5), fills[0].Quantity)
		assert.Equal(t, orderbookv1.Quantity(0), fills[0].RestingRemaining)

		assert.Equal(t, orderbookv1.OrderID(2), fills[1].RestingID)
		assert.Equal(t, orderbookv1.Quantity(2), fills[1].Quantity)
		assert.Equal(t, orderbookv1.Quantity(3), fills[1].RestingRemaining)

		assert.Equal(t, orderbookv1.Quantity(3), b.DepthAtPrice(100, orderbookv1.SideBid))
	})
}

func TestBook_MarketSweepsPriceLevelsInOrder(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideAsk, 102, 3)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(2, orderbookv1.SideAsk, 101, 3)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(3, orderbookv1.SideAsk, 103, 3)))

		fills := b.ExecuteMarketOrder(orderbookv1.SideBid, 8)
		require.Len(t, fills, 3)
		assert.Equal(t, orderbookv1.Price(101), fills[0].Price)
		assert.Equal(t, orderbookv1.Price(102), fills[1].Price)
		assert.Equal(t, orderbookv1.Price(103), fills[2].Price)
		assert.Equal(t, orderbookv1.Quantity(2), fills[2].Quantity)

		assert.Equal(t, orderbookv1.Quantity(1), b.DepthAtPrice(103, orderbookv1.SideAsk))
	})
}

func TestBook_MarketShortfallFillsWhatExists(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideAsk, 100, 3)))

		fills := b.ExecuteMarketOrder(orderbookv1.SideBid, 10)
		require.Len(t, fills, 1)
		assert.Equal(t, orderbookv1.Quantity(3), fills[0].Quantity)

		_, hasAsk := b.BestAsk()
		assert.False(t, hasAsk)
	})
}

func TestBook_MarketAgainstEmptyBook(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		fills := b.ExecuteMarketOrder(orderbookv1.SideBid, 10)
		assert.Empty(t, fills)
	})
}

func TestBook_CancelRemovesOrder(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 10)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(2, orderbookv1.SideBid, 99, 5)))

		canceled, err := b.CancelOrder(1)
		require.NoError(t, err)
		assert.Equal(t, orderbookv1.OrderID(1), canceled.ID)
		assert.Equal(t, orderbookv1.Quantity(10), canceled.Quantity)

		assert.Equal(t, orderbookv1.Quantity(0), b.DepthAtPrice(100, orderbookv1.SideBid))
		bid, ok := b.BestBid()
		require.True(t, ok)
		assert.Equal(t, orderbookv1.Price(99), bid)

		// Second cancel of the same id is a normal not-found outcome.
		_, err = b.CancelOrder(1)
		assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
	})
}

func TestBook_CancelPreservesFIFOOfRest(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideAsk, 100, 1)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(2, orderbookv1.SideAsk, 100, 2)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(3, orderbookv1.SideAsk, 100, 3)))

		_, err := b.CancelOrder(2)
		require.NoError(t, err)

		fills := b.ExecuteMarketOrder(orderbookv1.SideBid, 4)
		require.Len(t, fills, 2)
		assert.Equal(t, orderbookv1.OrderID(1), fills[0].RestingID)
		assert.Equal(t, orderbookv1.OrderID(3), fills[1].RestingID)
	})
}

func TestBook_CancelUnknownID(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		_, err := b.CancelOrder(42)
		assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
	})
}

func TestBook_DuplicateID(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 10)))
		err := b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideAsk, 105, 5))
		assert.ErrorIs(t, err, orderbookv1.ErrDuplicateID)

		// Book unchanged by the rejected insert.
		assert.Equal(t, orderbookv1.Quantity(0), b.DepthAtPrice(105, orderbookv1.SideAsk))
	})
}

func TestBook_IDReusableAfterCancel(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 10)))
		_, err := b.CancelOrder(1)
		require.NoError(t, err)
		assert.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 101, 5)))
	})
}

func TestBook_RejectsZeroID(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		err := b.AddLimitOrder(orderbookv1.NewOrder(0, orderbookv1.SideBid, 100, 10))
		assert.ErrorIs(t, err, orderbookv1.ErrInvalidOrder)
	})
}

func TestBook_ValidatesResolution(t *testing.T) {
	res := orderbookv1.Resolution{TickSize: 5, LotSize: 10}
	cfg := Config{
		Resolution:    res,
		FixedTickBase: 5,
		FixedTickSpan: 1000,
		HybridCenter:  500,
		HybridWidth:   64,
	}
	for _, variant := range Variants() {
		t.Run(variant, func(t *testing.T) {
			b, err := New(variant, cfg)
			require.NoError(t, err)

			err = b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 102, 10))
			assert.ErrorIs(t, err, orderbookv1.ErrInvalidPrice)

			err = b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, -5, 10))
			assert.ErrorIs(t, err, orderbookv1.ErrInvalidPrice)

			err = b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 13))
			assert.ErrorIs(t, err, orderbookv1.ErrInvalidQuantity)

			err = b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 0))
			assert.ErrorIs(t, err, orderbookv1.ErrInvalidQuantity)

			assert.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 100, 20)))
		})
	}
}

func TestBook_SequenceAssignedOnInsert(t *testing.T) {
	forEachVariant(t, func(t *testing.T, b orderbookv1.Book) {
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(7, orderbookv1.SideBid, 100, 1)))
		require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(8, orderbookv1.SideBid, 100, 1)))

		first, err := b.CancelOrder(7)
		require.NoError(t, err)
		second, err := b.CancelOrder(8)
		require.NoError(t, err)
		assert.Less(t, first.Sequence, second.Sequence)
	})
}

func TestFixedTickBook_PriceOutOfRange(t *testing.T) {
	cfg := testConfig()
	fixed, err := NewFixedTickBook(cfg.Resolution, cfg.FixedTickBase, cfg.FixedTickSpan)
	require.NoError(t, err)

	outside := cfg.FixedTickBase + orderbookv1.Price(cfg.FixedTickSpan)
	err = fixed.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, outside, 10))
	assert.ErrorIs(t, err, orderbookv1.ErrPriceOutOfRange)
	assert.Equal(t, orderbookv1.Quantity(0), fixed.DepthAtPrice(outside, orderbookv1.SideBid))

	// The unbounded reference accepts the same order.
	tree := NewTreeBook(cfg.Resolution)
	assert.NoError(t, tree.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, outside, 10)))
}

func TestFixedTickBook_ConstructorValidation(t *testing.T) {
	res := orderbookv1.Resolution{TickSize: 1, LotSize: 1}

	_, err := NewFixedTickBook(res, 1, 0)
	assert.Error(t, err)

	_, err = NewFixedTickBook(res, -10, 100)
	assert.Error(t, err)
}

func TestHybridBook_WindowShiftPreservesOrders(t *testing.T) {
	res := orderbookv1.Resolution{TickSize: 1, LotSize: 1}
	b, err := NewHybridBook(res, 500, 16)
	require.NoError(t, err)

	// Two queued orders at a level near the initial window.
	require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideBid, 500, 5)))
	require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(2, orderbookv1.SideBid, 500, 5)))

	// Drive the market far away so the window recenters and the level at 500
	// migrates to the cold tier.
	require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(3, orderbookv1.SideAsk, 900, 1)))
	require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(4, orderbookv1.SideBid, 880, 1)))

	assert.Equal(t, orderbookv1.Quantity(10), b.DepthAtPrice(500, orderbookv1.SideBid))

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.Equal(t, orderbookv1.Price(880), bid)
	ask, ok := b.BestAsk()
	require.True(t, ok)
	assert.Equal(t, orderbookv1.Price(900), ask)

	// Drain the near orders, then sweep the migrated level. FIFO must have
	// survived the migration.
	_, err = b.CancelOrder(4)
	require.NoError(t, err)
	fills := b.ExecuteMarketOrder(orderbookv1.SideAsk, 7)
	require.Len(t, fills, 2)
	assert.Equal(t, orderbookv1.OrderID(1), fills[0].RestingID)
	assert.Equal(t, orderbookv1.OrderID(2), fills[1].RestingID)
}

func TestHybridBook_CancelInColdTier(t *testing.T) {
	res := orderbookv1.Resolution{TickSize: 1, LotSize: 1}
	b, err := NewHybridBook(res, 500, 16)
	require.NoError(t, err)

	// Far outside the hot window, so it lands cold immediately.
	require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideAsk, 2000, 3)))
	assert.Equal(t, orderbookv1.Quantity(3), b.DepthAtPrice(2000, orderbookv1.SideAsk))

	canceled, err := b.CancelOrder(1)
	require.NoError(t, err)
	assert.Equal(t, orderbookv1.OrderID(1), canceled.ID)
	_, hasAsk := b.BestAsk()
	assert.False(t, hasAsk)
}

func TestHybridBook_BestSpansBothTiers(t *testing.T) {
	res := orderbookv1.Resolution{TickSize: 1, LotSize: 1}
	b, err := NewHybridBook(res, 500, 16)
	require.NoError(t, err)

	// A cold ask below the hot window must still be the best ask.
	require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(1, orderbookv1.SideAsk, 500, 1)))
	require.NoError(t, b.AddLimitOrder(orderbookv1.NewOrder(2, orderbookv1.SideAsk, 100, 1)))

	ask, ok := b.BestAsk()
	require.True(t, ok)
	assert.Equal(t, orderbookv1.Price(100), ask)
}

func TestHybridBook_ConstructorValidation(t *testing.T) {
	res := orderbookv1.Resolution{TickSize: 1, LotSize: 1}

	_, err := NewHybridBook(res, 500, 0)
	assert.Error(t, err)

	_, err = NewHybridBook(res, -500, 16)
	assert.Error(t, err)
}

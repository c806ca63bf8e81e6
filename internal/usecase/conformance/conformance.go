// Package conformance checks that a storage variant is observably identical
// to the ordered-map baseline. It replays one event sequence against both
// books through the matching engine and compares best bid/ask, level depth
// and the full fill sequence after every event. This equivalence is the
// contract the multi-variant design exists to preserve.
package conformance

import (
	"fmt"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
	"github.com/OGN3N/orderbook/internal/usecase/matching"
	"github.com/OGN3N/orderbook/pkg/logger"
)

// Check replays the generator's sequence from the start against candidate
// and baseline and returns a descriptive error at the first divergence.
func Check(gen workloadv1.Generator, candidate, baseline orderbookv1.Book, log logger.Interface) error {
	gen.Reset()

	candEngine := matching.NewEngine(candidate, log)
	baseEngine := matching.NewEngine(baseline, log)

	for index := 0; ; index++ {
		event, ok := gen.Next()
		if !ok {
			return nil
		}

		candResult := candEngine.Apply(event)
		baseResult := baseEngine.Apply(event)

		if err := compareResults(candResult, baseResult); err != nil {
			return fmt.Errorf("event %d (%s): %w", index, event.Type, err)
		}
		if err := compareBook(event, candidate, baseline); err != nil {
			return fmt.Errorf("event %d (%s): %w", index, event.Type, err)
		}
	}
}

func compareResults(cand, base matching.Result) error {
	if (cand.Err != nil) != (base.Err != nil) {
		return fmt.Errorf("error mismatch: candidate=%v baseline=%v", cand.Err, base.Err)
	}
	if cand.Canceled != base.Canceled {
		return fmt.Errorf("canceled order mismatch: candidate=%+v baseline=%+v", cand.Canceled, base.Canceled)
	}
	if len(cand.Fills) != len(base.Fills) {
		return fmt.Errorf("fill count mismatch: candidate=%d baseline=%d", len(cand.Fills), len(base.Fills))
	}
	for i := range cand.Fills {
		if cand.Fills[i] != base.Fills[i] {
			return fmt.Errorf("fill %d mismatch: candidate=%+v baseline=%+v", i, cand.Fills[i], base.Fills[i])
		}
	}
	return nil
}

// compareBook checks top-of-book on both sides plus depth at the price the
// event touched.
func compareBook(event workloadv1.Event, candidate, baseline orderbookv1.Book) error {
	candBid, candHasBid := candidate.BestBid()
	baseBid, baseHasBid := baseline.BestBid()
	if candHasBid != baseHasBid || (candHasBid && candBid != baseBid) {
		return fmt.Errorf("best bid mismatch: candidate=(%d,%t) baseline=(%d,%t)",
			candBid, candHasBid, baseBid, baseHasBid)
	}

	candAsk, candHasAsk := candidate.BestAsk()
	baseAsk, baseHasAsk := baseline.BestAsk()
	if candHasAsk != baseHasAsk || (candHasAsk && candAsk != baseAsk) {
		return fmt.Errorf("best ask mismatch: candidate=(%d,%t) baseline=(%d,%t)",
			candAsk, candHasAsk, baseAsk, baseHasAsk)
	}

	if event.Type == workloadv1.EventLimit {
		price := event.Order.Price
		for _, side := range []orderbookv1.Side{orderbookv1.SideBid, orderbookv1.SideAsk} {
			candDepth := candidate.DepthAtPrice(price, side)
			baseDepth := baseline.DepthAtPrice(price, side)
			if candDepth != baseDepth {
				return fmt.Errorf("depth mismatch at %d/%s: candidate=%d baseline=%d",
					price, side, candDepth, baseDepth)
			}
		}
	}
	return nil
}

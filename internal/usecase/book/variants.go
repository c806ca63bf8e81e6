package book

import (
	"fmt"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
)

// Variant names accepted by New.
const (
	VariantScan      = "scan"
	VariantColumnar  = "columnar"
	VariantFixedTick = "fixedtick"
	VariantTreeMap   = "treemap"
	VariantHybrid    = "hybrid"
)

// Config carries the construction parameters shared by all variants plus the
// sizing knobs of the bounded ones.
type Config struct {
	Resolution orderbookv1.Resolution

	// Fixed-tick window: [FixedTickBase, FixedTickBase+FixedTickSpan ticks).
	FixedTickBase orderbookv1.Price
	FixedTickSpan int

	// Hybrid hot window: HybridWidth ticks centered on HybridCenter.
	HybridCenter orderbookv1.Price
	HybridWidth  int
}

// Variants lists all storage variant names, baseline last.
func Variants() []string {
	return []string{VariantScan, VariantColumnar, VariantFixedTick, VariantHybrid, VariantTreeMap}
}

// New constructs an empty book of the named variant.
func New(variant string, cfg Config) (orderbookv1.Book, error) {
	switch variant {
	case VariantScan:
		return NewScanBook(cfg.Resolution), nil
	case VariantColumnar:
		return NewColumnarBook(cfg.Resolution), nil
	case VariantFixedTick:
		return NewFixedTickBook(cfg.Resolution, cfg.FixedTickBase, cfg.FixedTickSpan)
	case VariantTreeMap:
		return NewTreeBook(cfg.Resolution), nil
	case VariantHybrid:
		return NewHybridBook(cfg.Resolution, cfg.HybridCenter, cfg.HybridWidth)
	default:
		return nil, fmt.Errorf("unknown book variant %q", variant)
	}
}

package main

import (
	"os"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	"github.com/OGN3N/orderbook/internal/usecase/book"
	"github.com/OGN3N/orderbook/internal/usecase/conformance"
	"github.com/OGN3N/orderbook/internal/usecase/workload"
	"github.com/OGN3N/orderbook/pkg/config"
	"github.com/OGN3N/orderbook/pkg/errors"
	"github.com/OGN3N/orderbook/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}

	log, err = logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		panic(err)
	}
}

func main() {
	resolution := orderbookv1.Resolution{
		TickSize: orderbookv1.Price(cfg.Book.TickSize),
		LotSize:  orderbookv1.Quantity(cfg.Book.LotSize),
	}
	bookConfig := book.Config{
		Resolution:    resolution,
		FixedTickBase: orderbookv1.Price(cfg.Book.FixedTickBase),
		FixedTickSpan: cfg.Book.FixedTickSpan,
		HybridCenter:  orderbookv1.Price(cfg.Book.HybridCenter),
		HybridWidth:   cfg.Book.HybridWidth,
	}
	// Prices stay inside the fixed-tick window so the bounded variant accepts
	// the same events as the unbounded ones.
	params := workload.Params{
		Resolution: resolution,
		Seed:       cfg.Bench.Seed,
		Events:     cfg.Bench.Events,
		PriceMin:   orderbookv1.Price(cfg.Book.FixedTickBase),
		PriceMax:   orderbookv1.Price(cfg.Book.FixedTickBase) + orderbookv1.Price(cfg.Book.FixedTickSpan-1)*resolution.TickSize,
		MaxLots:    cfg.Bench.MaxLots,
	}

	failures := 0
	for _, scenario := range cfg.Bench.Scenarios {
		gen, err := workload.New(scenario, params)
		if err != nil {
			log.Error(err, logger.Field{
				Key:   "scenario",
				Value: scenario,
			})
			os.Exit(1)
		}

		for _, variant := range book.Variants() {
			if variant == book.VariantTreeMap {
				continue
			}

			candidate, err := book.New(variant, bookConfig)
			if err != nil {
				log.Error(err, logger.Field{
					Key:   "variant",
					Value: variant,
				})
				os.Exit(1)
			}
			baseline, err := book.New(book.VariantTreeMap, bookConfig)
			if err != nil {
				log.Error(err, logger.Field{
					Key:   "variant",
					Value: book.VariantTreeMap,
				})
				os.Exit(1)
			}

			if err := conformance.Check(gen, candidate, baseline, log); err != nil {
				failures++
				log.Error(errors.NewTracer(errors.ConformanceMismatchError).Wrap(err),
					logger.Field{Key: "scenario", Value: scenario},
					logger.Field{Key: "variant", Value: variant},
					logger.Field{Key: "detail", Value: err.Error()},
				)
				continue
			}
			log.Info("Variant conforms",
				logger.Field{Key: "scenario", Value: scenario},
				logger.Field{Key: "variant", Value: variant},
			)
		}
	}

	_ = log.Sync()
	if failures > 0 {
		os.Exit(1)
	}
}

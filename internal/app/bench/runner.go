// Package bench wires workload generators, storage variants, the matching
// engine and latency tracking into one benchmark run.
package bench

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	workloadv1 "github.com/OGN3N/orderbook/internal/domain/workload/v1"
	"github.com/OGN3N/orderbook/internal/metrics"
	"github.com/OGN3N/orderbook/internal/usecase/book"
	"github.com/OGN3N/orderbook/internal/usecase/matching"
	"github.com/OGN3N/orderbook/internal/usecase/report"
	"github.com/OGN3N/orderbook/internal/usecase/workload"
	"github.com/OGN3N/orderbook/pkg/config"
	"github.com/OGN3N/orderbook/pkg/errors"
	"github.com/OGN3N/orderbook/pkg/latency"
	"github.com/OGN3N/orderbook/pkg/logger"
)

// Runner executes the configured scenarios against the configured variants.
// Variants run concurrently within a scenario; each goroutine owns its book,
// engine and generator outright, so no book is ever shared.
type Runner struct {
	cfg *config.Config
	log logger.Interface
}

// NewRunner creates a benchmark runner.
func NewRunner(cfg *config.Config, log logger.Interface) *Runner {
	return &Runner{
		cfg: cfg,
		log: log,
	}
}

// Run executes all scenario/variant combinations and returns the collected
// rows.
func (r *Runner) Run(ctx context.Context) (*report.RunSummary, error) {
	summary := &report.RunSummary{
		RunID:     report.NewRunID(),
		StartedAt: time.Now(),
	}
	r.log.Info("benchmark run starting",
		logger.Field{Key: "runID", Value: summary.RunID},
		logger.Field{Key: "scenarios", Value: r.cfg.Bench.Scenarios},
		logger.Field{Key: "variants", Value: r.cfg.Bench.Variants},
		logger.Field{Key: "events", Value: r.cfg.Bench.Events},
	)

	for _, scenario := range r.cfg.Bench.Scenarios {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rows, err := r.runScenario(scenario)
		if err != nil {
			return nil, err
		}
		summary.Rows = append(summary.Rows, rows...)
	}

	summary.FinishedAt = time.Now()
	r.log.Info("benchmark run finished",
		logger.Field{Key: "runID", Value: summary.RunID},
		logger.Field{Key: "rows", Value: len(summary.Rows)},
		logger.Field{Key: "elapsed", Value: summary.FinishedAt.Sub(summary.StartedAt).String()},
	)
	return summary, nil
}

func (r *Runner) runScenario(scenario string) ([]report.Row, error) {
	var (
		mu   sync.Mutex
		rows []report.Row
		errs []error
		wg   sync.WaitGroup
	)

	for _, variant := range r.cfg.Bench.Variants {
		wg.Add(1)
		go func(variant string) {
			defer wg.Done()
			variantRows, err := r.runVariant(scenario, variant)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: %w", scenario, variant, err))
				return
			}
			rows = append(rows, variantRows...)
		}(variant)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}

	// Stable output order regardless of goroutine completion.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Variant != rows[j].Variant {
			return rows[i].Variant < rows[j].Variant
		}
		return rows[i].Operation < rows[j].Operation
	})
	return rows, nil
}

// runVariant replays one freshly generated event sequence against one fresh
// book, timing each engine call.
func (r *Runner) runVariant(scenario, variant string) ([]report.Row, error) {
	gen, err := workload.New(scenario, r.workloadParams())
	if err != nil {
		return nil, errors.NewTracer(errors.WorkloadError).Wrap(err)
	}
	bk, err := book.New(variant, r.bookConfig())
	if err != nil {
		return nil, errors.NewTracer(errors.BookConstructError).Wrap(err)
	}
	engine := matching.NewEngine(bk, r.log)

	trackers := map[workloadv1.EventType]*latency.Tracker{
		workloadv1.EventLimit:  latency.NewTracker(r.cfg.Bench.Events),
		workloadv1.EventMarket: latency.NewTracker(r.cfg.Bench.Events),
		workloadv1.EventCancel: latency.NewTracker(r.cfg.Bench.Events),
	}

	for {
		event, ok := gen.Next()
		if !ok {
			break
		}

		start := time.Now()
		result := engine.Apply(event)
		elapsed := time.Since(start)

		trackers[event.Type].Observe(elapsed)
		r.observe(variant, event, result, elapsed)
	}

	var rows []report.Row
	for _, eventType := range []workloadv1.EventType{workloadv1.EventLimit, workloadv1.EventMarket, workloadv1.EventCancel} {
		tracker := trackers[eventType]
		percentiles, ok := tracker.Percentiles()
		if !ok {
			continue
		}
		rows = append(rows, report.Row{
			Variant:     variant,
			Scenario:    scenario,
			Operation:   eventType.String(),
			Samples:     tracker.Len(),
			Percentiles: percentiles,
		})
	}
	return rows, nil
}

func (r *Runner) observe(variant string, event workloadv1.Event, result matching.Result, elapsed time.Duration) {
	outcome := "ok"
	if result.Err != nil {
		outcome = "rejected"
	}
	operation := event.Type.String()
	metrics.EventsTotal.WithLabelValues(variant, operation, outcome).Inc()
	metrics.OperationDuration.WithLabelValues(variant, operation).Observe(elapsed.Seconds())
	if len(result.Fills) > 0 {
		metrics.FillsTotal.WithLabelValues(variant).Add(float64(len(result.Fills)))
	}
}

// workloadParams scopes generated prices to the fixed-tick window
// [base, base+span ticks), the one bounded variant; every variant then sees
// the identical accepted-event stream.
func (r *Runner) workloadParams() workload.Params {
	res := r.resolution()
	return workload.Params{
		Resolution: res,
		Seed:       r.cfg.Bench.Seed,
		Events:     r.cfg.Bench.Events,
		PriceMin:   orderbookv1.Price(r.cfg.Book.FixedTickBase),
		PriceMax:   orderbookv1.Price(r.cfg.Book.FixedTickBase) + orderbookv1.Price(r.cfg.Book.FixedTickSpan-1)*res.TickSize,
		MaxLots:    r.cfg.Bench.MaxLots,
	}
}

func (r *Runner) bookConfig() book.Config {
	return book.Config{
		Resolution:    r.resolution(),
		FixedTickBase: orderbookv1.Price(r.cfg.Book.FixedTickBase),
		FixedTickSpan: r.cfg.Book.FixedTickSpan,
		HybridCenter:  orderbookv1.Price(r.cfg.Book.HybridCenter),
		HybridWidth:   r.cfg.Book.HybridWidth,
	}
}

func (r *Runner) resolution() orderbookv1.Resolution {
	return orderbookv1.Resolution{
		TickSize: orderbookv1.Price(r.cfg.Book.TickSize),
		LotSize:  orderbookv1.Quantity(r.cfg.Book.LotSize),
	}
}

package bench

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/OGN3N/orderbook/internal/domain/orderbook/v1"
	"github.com/OGN3N/orderbook/pkg/config"
	"github.com/OGN3N/orderbook/pkg/errors"
	"github.com/OGN3N/orderbook/pkg/logger"
)

func testRunner(t *testing.T, mutate func(*config.Config)) *Runner {
	t.Helper()
	cfg := &config.Config{
		Bench: config.BenchConfig{
			Scenarios: []string{"uniform"},
			Variants:  []string{"treemap"},
			Events:    500,
			Seed:      42,
			MaxLots:   20,
		},
		Book: config.BookConfig{
			TickSize:      1,
			LotSize:       1,
			FixedTickBase: 100,
			FixedTickSpan: 1000,
			HybridCenter:  500,
			HybridWidth:   64,
		},
	}
	if mutate != nil {
		mutate(cfg)
	}
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return NewRunner(cfg, log)
}

// Generated prices must be scoped to the fixed-tick window so the bounded
// variant accepts the same event stream as the unbounded ones.
func TestRunner_WorkloadParamsScopedToFixedTickWindow(t *testing.T) {
	r := testRunner(t, nil)
	params := r.workloadParams()

	assert.Equal(t, orderbookv1.Price(100), params.PriceMin)
	assert.Equal(t, orderbookv1.Price(1099), params.PriceMax)
}

func TestRunner_RunProducesRows(t *testing.T) {
	r := testRunner(t, nil)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
	require.NotEmpty(t, summary.Rows)
	for _, row := range summary.Rows {
		assert.Equal(t, "treemap", row.Variant)
		assert.Equal(t, "uniform", row.Scenario)
		assert.Positive(t, row.Samples)
	}
}

func TestRunner_UnknownVariantSurfacesBookConstructError(t *testing.T) {
	r := testRunner(t, func(cfg *config.Config) {
		cfg.Bench.Variants = []string{"linkedlist"}
	})

	_, err := r.Run(context.Background())
	require.Error(t, err)

	var tracer *errors.ErrorTracer
	require.True(t, stderrors.As(err, &tracer))
	assert.Equal(t, errors.BookConstructError.String(), tracer.Message)
}

func TestRunner_UnknownScenarioSurfacesWorkloadError(t *testing.T) {
	r := testRunner(t, func(cfg *config.Config) {
		cfg.Bench.Scenarios = []string{"flashcrash"}
	})

	_, err := r.Run(context.Background())
	require.Error(t, err)

	var tracer *errors.ErrorTracer
	require.True(t, stderrors.As(err, &tracer))
	assert.Equal(t, errors.WorkloadError.String(), tracer.Message)
}

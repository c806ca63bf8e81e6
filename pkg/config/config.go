package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/OGN3N/orderbook/pkg/errors"
)

// Config represents the harness configuration.
type Config struct {
	App         AppConfig         `envPrefix:"APP_"`
	Bench       BenchConfig       `envPrefix:"BENCH_"`
	Book        BookConfig        `envPrefix:"BOOK_"`
	ResultKafka ResultKafkaConfig `envPrefix:"RESULT_KAFKA_"`
	Metrics     MetricsConfig     `envPrefix:"METRICS_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"orderbook-bench"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// BenchConfig selects scenarios, variants and run sizing.
type BenchConfig struct {
	Scenarios []string `env:"SCENARIOS" envSeparator:"," envDefault:"uniform,clustered,zipf,sweep,buildup,highcancel,bursty,steadystate"`
	Variants  []string `env:"VARIANTS" envSeparator:"," envDefault:"scan,columnar,fixedtick,hybrid,treemap"`
	Events    int      `env:"EVENTS" envDefault:"10000"`
	Seed      int64    `env:"SEED" envDefault:"42"`
	MaxLots   int64    `env:"MAX_LOTS" envDefault:"100"`
	CSVPath   string   `env:"CSV_PATH" envDefault:"results.csv"`
}

// BookConfig fixes the resolution and the sizing of the bounded variants.
type BookConfig struct {
	TickSize      int64 `env:"TICK_SIZE" envDefault:"1"`
	LotSize       int64 `env:"LOT_SIZE" envDefault:"1"`
	FixedTickBase int64 `env:"FIXED_TICK_BASE" envDefault:"1"`
	FixedTickSpan int   `env:"FIXED_TICK_SPAN" envDefault:"10000"`
	HybridCenter  int64 `env:"HYBRID_CENTER" envDefault:"5000"`
	HybridWidth   int   `env:"HYBRID_WIDTH" envDefault:"200"`
}

// ResultKafkaConfig configures the optional result stream.
type ResultKafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"bench-results"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Addr    string `env:"ADDR" envDefault:":9090"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.NewTracer(errors.ConfigParseError).Wrap(err)
	}

	return cfg, nil
}

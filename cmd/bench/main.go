package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OGN3N/orderbook/internal/app/bench"
	"github.com/OGN3N/orderbook/internal/metrics"
	"github.com/OGN3N/orderbook/internal/usecase/report"
	resultpublisher "github.com/OGN3N/orderbook/internal/usecase/result-publisher"
	"github.com/OGN3N/orderbook/pkg/config"
	"github.com/OGN3N/orderbook/pkg/errors"
	"github.com/OGN3N/orderbook/pkg/httplib/healthcheck"
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
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("Received shutdown signal", logger.Field{
			Key:   "signal",
			Value: sig.String(),
		})
		cancel()
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		metrics.Register(registry)
		metricsServer = startMetricsServer(registry)
	}

	runner := bench.NewRunner(cfg, log)
	summary, err := runner.Run(ctx)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "run_benchmark",
		})
		os.Exit(1)
	}

	if err := report.WriteTable(os.Stdout, summary.Rows); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "write_table",
		})
	}

	if cfg.Bench.CSVPath != "" {
		if err := writeCSV(cfg.Bench.CSVPath, summary.Rows); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "write_csv",
			})
			os.Exit(1)
		}
		log.Info("CSV written", logger.Field{
			Key:   "path",
			Value: cfg.Bench.CSVPath,
		})
	}

	if cfg.ResultKafka.Enabled {
		publisher := resultpublisher.NewPublisher(cfg.ResultKafka, log)
		defer publisher.Close()

		publishCtx, publishCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer publishCancel()

		if err := publisher.PublishRunSummary(publishCtx, summary); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "publish_run_summary",
			})
			os.Exit(1)
		}
		log.Info("Run summary published", logger.Field{
			Key:   "runID",
			Value: summary.RunID,
		})
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "shutdown_metrics_server",
			})
		}
	}

	_ = log.Sync()
}

func startMetricsServer(registry *prometheus.Registry) *http.Server {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: healthcheck.HealthCheck{}.Handler(router),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "serve_metrics",
			})
		}
	}()
	log.Info("Metrics server listening", logger.Field{
		Key:   "addr",
		Value: cfg.Metrics.Addr,
	})
	return server
}

func writeCSV(path string, rows []report.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewTracer(errors.ReportWriteError).Wrap(err)
	}
	defer f.Close()
	if err := report.WriteCSV(f, rows); err != nil {
		return errors.NewTracer(errors.ReportWriteError).Wrap(err)
	}
	return nil
}

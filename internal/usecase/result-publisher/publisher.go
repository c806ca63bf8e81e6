package resultpublisher

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/OGN3N/orderbook/internal/usecase/report"
	"github.com/OGN3N/orderbook/pkg/config"
	"github.com/OGN3N/orderbook/pkg/errors"
	"github.com/OGN3N/orderbook/pkg/logger"
)

// Publisher represents a Kafka publisher for benchmark run summaries.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for publishing run summaries.
func NewPublisher(cfg config.ResultKafkaConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishRunSummary publishes a run summary to the Kafka topic, keyed by run
// id.
func (p *Publisher) PublishRunSummary(ctx context.Context, summary *report.RunSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		p.logger.Error(err,
			logger.Field{Key: "runID", Value: summary.RunID},
		)
		return errors.NewTracer(errors.ResultPublishError).Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(summary.RunID),
		Value: payload,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "runID", Value: summary.RunID},
			logger.Field{Key: "topic", Value: p.kafkaWriter.Topic},
		)
		return errors.NewTracer(errors.ResultPublishError).Wrap(err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}

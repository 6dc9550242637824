package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

type AdvisoryReqMessageProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// Creates a new API Gateway advisory producer and ensures topic exists
func NewAdvisoryReqMessageProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*AdvisoryReqMessageProducer, error) {
	if cfg.AdvisoryTopic == "" {
		return nil, fmt.Errorf("kafka advisory topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for advisory producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.AdvisoryTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure advisory topic %s exists for advisory producer: %w", cfg.AdvisoryTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.AdvisoryTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Using async for high throughput
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.AdvisoryTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.AdvisoryTopic, "count", len(messages))
			}
		},
	}

	return &AdvisoryReqMessageProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.AdvisoryTopic,
	}, nil
}

func (p *AdvisoryReqMessageProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for advisory producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish message via advisory producer",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s via advisory producer: %w", p.topic, err)
	}

	p.logger.Debug("Published message via advisory producer",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *AdvisoryReqMessageProducer) Close() error {
	p.logger.Info("Closing advisory Kafka message producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close advisory kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

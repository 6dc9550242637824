package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

// CommittedEventProducer publishes committed transaction events drained from
// the outbox. Writes are synchronous with full acks so the poller only marks
// a message processed once the broker has durably accepted it.
type CommittedEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// Creates a new committed-event producer and ensures topic exists
func NewCommittedEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*CommittedEventProducer, error) {
	if cfg.CommittedEventsTopic == "" {
		return nil, fmt.Errorf("kafka committed events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for committed event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.CommittedEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure committed events topic %s exists: %w", cfg.CommittedEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.CommittedEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write committed event messages", "topic", cfg.CommittedEventsTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote committed event messages", "topic", cfg.CommittedEventsTopic, "count", len(messages))
			}
		},
	}

	return &CommittedEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.CommittedEventsTopic,
	}, nil
}

func (p *CommittedEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for committed event producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish committed event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish committed event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published committed event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *CommittedEventProducer) Close() error {
	p.logger.Info("Closing committed event Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close committed event kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

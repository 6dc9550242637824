package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/outbox"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/agrifed-procurement-ledger/internal/platform/messaging/producers"
)

// committedEventType identifies the reporting feed event for one commit
const committedEventType = "transaction_committed"

// CommittedEvent is the reporting feed payload for a committed transaction
type CommittedEvent struct {
	EventType   string         `json:"event_type"`
	Record      *ledger.Record `json:"record"`
	PublishedAt time.Time      `json:"published_at"`
}

// EventPublisher publishes outbox messages to the committed events topic
type EventPublisher interface {
	PublishCommittedEvent(ctx context.Context, message *outbox.Message) error
}

// EventPublisherImpl implements EventPublisher
type EventPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewEventPublisher creates a new publisher
func NewEventPublisher(
	logger *slog.Logger,
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
) EventPublisher {
	return &EventPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishCommittedEvent pushes one outbox message onto the committed events
// topic and marks it processed. A payload that cannot be decoded is terminal:
// the message goes straight to FAILED_TO_PUBLISH since retrying cannot fix it.
func (p *EventPublisherImpl) PublishCommittedEvent(ctx context.Context, message *outbox.Message) error {
	record, err := message.GetRecord()
	if err != nil {
		p.logger.Error("Failed to unmarshal ledger record from outbox payload",
			"outbox_id", message.ID, "record_id", message.RecordID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if record.CorrelationID != "" {
		logger = p.logger.With("correlation_id", record.CorrelationID)
	}

	logger.Info("Attempting to publish committed event", "outbox_id", message.ID, "record_id", message.RecordID)

	event := CommittedEvent{
		EventType:   committedEventType,
		Record:      record,
		PublishedAt: time.Now().UTC(),
	}

	if err := p.producer.Publish(ctx, record.ID.String(), event); err != nil {
		logger.Error("Failed to publish committed event", "outbox_id", message.ID, "record_id", message.RecordID, "error", err)
		return fmt.Errorf("failed to publish committed event for record %s: %w", record.ID.String(), err)
	}

	// Mark outbox message as processed
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "record_id", message.RecordID, "error", err,
		)
		return fmt.Errorf("event for %s published, but failed to mark outbox %d as PROCESSED: %w", record.ID.String(), message.ID, err)
	}

	logger.Info("Outbox message successfully published and marked as PROCESSED", "outbox_id", message.ID, "record_id", message.RecordID)
	return nil
}

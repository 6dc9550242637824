package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/advisory_processor/service"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/agrifed-procurement-ledger/internal/platform/messaging/producers"
)

// AdvisoryEventHandler handles incoming advisory request messages from Kafka
type AdvisoryEventHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewAdvisoryEventHandler creates a new handler
func NewAdvisoryEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *AdvisoryEventHandler {
	return &AdvisoryEventHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages
func (h *AdvisoryEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.AdvisoryRequest
	if err := json.Unmarshal(value, &request); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal advisory request from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
				// Return original error if DLQ fails
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if request.CorrelationID != "" {
		logger = h.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Received advisory request for processing",
		"request_id", request.RequestID.String(),
		"commodity", request.CommodityName,
		"region", request.Region,
	)

	if err := h.processingService.ProcessAdvisory(ctx, &request); err != nil {
		logger.Error("Failed to process advisory request",
			"request_id", request.RequestID.String(),
			"commodity", request.CommodityName,
			"error", err,
		)
		return fmt.Errorf("processing advisory %s failed: %w", request.RequestID.String(), err)
	}

	logger.Info("Successfully processed advisory request", "request_id", request.RequestID.String())
	return nil // Success, commit offset
}

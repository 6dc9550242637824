package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/domain/advisory"
	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
)

type ProcessingServiceImpl struct {
	advisoryRepo advisory.Repository
	generator    AdvisoryGenerator
	logger       *slog.Logger
}

func NewProcessingService(
	logger *slog.Logger,
	advisoryRepo advisory.Repository,
	generator AdvisoryGenerator,
) ProcessingService {
	return &ProcessingServiceImpl{
		advisoryRepo: advisoryRepo,
		generator:    generator,
		logger:       logger,
	}
}

// ProcessAdvisory handles the core logic for one advisory broadcast request.
// Business failures are recorded as terminal FAILED advisories and return nil
// so the consumer commits the offset; infrastructure errors propagate so
// Kafka redelivers the message.
func (s *ProcessingServiceImpl) ProcessAdvisory(ctx context.Context, request *shared.AdvisoryRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Processing advisory request",
		"request_id", request.RequestID.String(),
		"commodity", request.CommodityName,
		"region", request.Region,
	)

	// 1. Validate the request
	if err := request.Validate(); err != nil {
		logger.Error("Advisory request validation failed", "request_id", request.RequestID.String(), "error", err)
		s.recordFailure(ctx, logger, request, string(shared.FailureReasonUnknownError))
		return nil // Acknowledge the message, the failure is terminal
	}

	// 2. Check idempotency: the gateway writes the pending row before
	// publishing, so a missing row means the message arrived outside the
	// normal path and gets its own pending row here.
	existing, err := s.advisoryRepo.GetByRequestID(ctx, request.RequestID)
	if err != nil {
		if !errors.Is(err, advisory.ErrAdvisoryNotFound{}) {
			return fmt.Errorf("failed to load advisory %s: %w", request.RequestID.String(), err)
		}
		if createErr := s.advisoryRepo.Create(ctx, advisory.NewAdvisory(request)); createErr != nil {
			return fmt.Errorf("failed to create advisory %s: %w", request.RequestID.String(), createErr)
		}
	} else if existing.Status != shared.AdvisoryStatusPending {
		logger.Info("Advisory already processed, skipping",
			"request_id", request.RequestID.String(),
			"status", string(existing.Status),
		)
		return nil
	}

	// 3. Render the broadcast body
	body, err := s.generator.Generate(ctx, request)
	if err != nil {
		if errors.Is(err, pricing.ErrPriceNotFound{}) {
			logger.Warn("Advisory rejected, commodity has no published price",
				"request_id", request.RequestID.String(),
				"commodity", request.CommodityName,
			)
			s.recordFailure(ctx, logger, request, string(shared.FailureReasonUnknownCommodity))
			return nil
		}

		logger.Error("Advisory generation failed",
			"request_id", request.RequestID.String(),
			"error", err,
		)
		s.recordFailure(ctx, logger, request, string(shared.FailureReasonGenerationFailed))
		return nil
	}

	// 4. Record the rendered advisory
	if err := s.advisoryRepo.UpdateResult(ctx, request.RequestID, shared.AdvisoryStatusSucceeded, body, ""); err != nil {
		return fmt.Errorf("failed to record advisory result for %s: %w", request.RequestID.String(), err)
	}

	logger.Info("Advisory rendered successfully", "request_id", request.RequestID.String())
	return nil
}

func (s *ProcessingServiceImpl) recordFailure(ctx context.Context, logger *slog.Logger, request *shared.AdvisoryRequest, reason string) {
	if err := s.advisoryRepo.UpdateResult(ctx, request.RequestID, shared.AdvisoryStatusFailed, "", reason); err != nil {
		logger.Error("Failed to record advisory failure",
			"request_id", request.RequestID.String(),
			"failure_reason", reason,
			"error", err,
		)
	}
}

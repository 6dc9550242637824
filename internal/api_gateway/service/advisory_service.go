package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/domain/advisory"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/agrifed-procurement-ledger/internal/platform/messaging/producers"
	"github.com/google/uuid"
)

// AdvisoryServiceImpl implements the AdvisoryService interface
type AdvisoryServiceImpl struct {
	advisoryRepo advisory.Repository
	producer     producers.MessagePublisher
	logger       *slog.Logger
}

// NewAdvisoryService creates a new advisory request service
func NewAdvisoryService(logger *slog.Logger, advisoryRepo advisory.Repository, producer producers.MessagePublisher) AdvisoryService {
	return &AdvisoryServiceImpl{
		advisoryRepo: advisoryRepo,
		producer:     producer,
		logger:       logger,
	}
}

// RequestBroadcast queues an advisory generation task, supporting
// deduplication via the idempotency key. The pending row is written before
// the Kafka publish so a client polling the request ID immediately sees a
// PENDING task instead of a 404.
func (s *AdvisoryServiceImpl) RequestBroadcast(ctx context.Context, req *shared.AdvisoryRequest) (string, bool, error) {
	if err := req.Validate(); err != nil {
		return "", false, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.advisoryRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			s.logger.Error("Failed to check for existing advisory with idempotency key",
				"idempotency_key", req.IdempotencyKey,
				"error", err,
			)
			return "", false, err
		}
		if existing != nil {
			s.logger.Info("Found existing advisory with idempotency key",
				"idempotency_key", req.IdempotencyKey,
				"request_id", existing.RequestID,
				"status", string(existing.Status),
			)
			return existing.RequestID.String(), true, nil
		}
	}

	adv := advisory.NewAdvisory(req)
	if err := s.advisoryRepo.Create(ctx, adv); err != nil {
		s.logger.Error("Failed to create pending advisory",
			"request_id", req.RequestID,
			"error", err,
		)
		return "", false, err
	}

	if err := s.producer.Publish(ctx, req.RequestID.String(), req); err != nil {
		s.logger.Error("Failed to publish advisory request",
			"request_id", req.RequestID,
			"commodity", req.CommodityName,
			"error", err,
		)
		return "", false, err
	}

	s.logger.Info("Advisory request published",
		"request_id", req.RequestID,
		"commodity", req.CommodityName,
		"region", req.Region,
	)

	return req.RequestID.String(), false, nil
}

// GetAdvisory retrieves an advisory by request ID. Returns nil if not found
func (s *AdvisoryServiceImpl) GetAdvisory(ctx context.Context, requestID uuid.UUID) (*AdvisoryView, error) {
	adv, err := s.advisoryRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		var errNotFound advisory.ErrAdvisoryNotFound
		if errors.As(err, &errNotFound) {
			s.logger.Info("Advisory not found", "request_id", requestID.String())
			return nil, nil
		}
		s.logger.Error("Failed to get advisory", "request_id", requestID.String(), "error", err)
		return nil, err
	}
	return toAdvisoryView(adv), nil
}

// ListAdvisories retrieves advisories newest first
func (s *AdvisoryServiceImpl) ListAdvisories(ctx context.Context, page, perPage int) ([]*AdvisoryView, error) {
	offset := (page - 1) * perPage

	advisories, err := s.advisoryRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, err
	}

	views := make([]*AdvisoryView, 0, len(advisories))
	for _, adv := range advisories {
		views = append(views, toAdvisoryView(adv))
	}
	return views, nil
}

func toAdvisoryView(adv *advisory.Advisory) *AdvisoryView {
	return &AdvisoryView{
		RequestID:     adv.RequestID,
		CommodityName: adv.CommodityName,
		Region:        adv.Region,
		RequestedBy:   adv.RequestedBy,
		Status:        adv.Status,
		Body:          adv.Body,
		FailureReason: adv.FailureReason,
		CreatedAt:     adv.CreatedAt,
		ProcessedAt:   adv.ProcessedAt,
	}
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/advisory"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/agrifed-procurement-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AdvisoryRepository implements the advisory.Repository interface for PostgreSQL
type AdvisoryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewAdvisoryRepository creates a new PostgreSQL advisory repository
func NewAdvisoryRepository(logger *slog.Logger, db *persistence.PostgresDB) advisory.Repository {
	return &AdvisoryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create stores a new pending advisory
func (r *AdvisoryRepository) Create(ctx context.Context, adv *advisory.Advisory) error {
	query := `
		INSERT INTO advisories (request_id, commodity_name, region, requested_by, idempotency_key, correlation_id, status, body, failure_reason, created_at, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier.Exec(ctx, query,
		adv.RequestID,
		adv.CommodityName,
		adv.Region,
		adv.RequestedBy,
		adv.IdempotencyKey,
		adv.CorrelationID,
		adv.Status,
		adv.Body,
		adv.FailureReason,
		adv.CreatedAt,
		adv.ProcessedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create advisory", "request_id", adv.RequestID.String(), "error", err)
		return fmt.Errorf("failed to create advisory: %w", err)
	}

	return nil
}

// GetByRequestID retrieves an advisory by its request ID.
// Returns ErrAdvisoryNotFound if no advisory exists.
func (r *AdvisoryRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*advisory.Advisory, error) {
	query := `
		SELECT request_id, commodity_name, region, requested_by, idempotency_key, correlation_id, status, body, failure_reason, created_at, processed_at
		FROM advisories
		WHERE request_id = $1
	`

	adv, err := r.scanOne(r.querier.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, advisory.ErrAdvisoryNotFound{RequestID: requestID}
		}
		r.logger.Error("Failed to get advisory", "request_id", requestID.String(), "error", err)
		return nil, fmt.Errorf("failed to get advisory: %w", err)
	}

	return adv, nil
}

// GetByIdempotencyKey retrieves an advisory by its idempotency key.
// Returns nil when no advisory exists, enabling gateway deduplication.
func (r *AdvisoryRepository) GetByIdempotencyKey(ctx context.Context, idempotencyKey string) (*advisory.Advisory, error) {
	if idempotencyKey == "" {
		return nil, errors.New("idempotency key cannot be empty")
	}

	query := `
		SELECT request_id, commodity_name, region, requested_by, idempotency_key, correlation_id, status, body, failure_reason, created_at, processed_at
		FROM advisories
		WHERE idempotency_key = $1
	`

	adv, err := r.scanOne(r.querier.QueryRow(ctx, query, idempotencyKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get advisory by idempotency key", "idempotency_key", idempotencyKey, "error", err)
		return nil, fmt.Errorf("failed to get advisory by idempotency key: %w", err)
	}

	return adv, nil
}

// UpdateResult records the terminal outcome of advisory processing.
// Returns ErrAdvisoryNotFound if the advisory doesn't exist.
func (r *AdvisoryRepository) UpdateResult(ctx context.Context, requestID uuid.UUID, status shared.AdvisoryStatus, body, failureReason string) error {
	query := `
		UPDATE advisories
		SET status = $1, body = $2, failure_reason = $3, processed_at = $4
		WHERE request_id = $5
	`

	result, err := r.querier.Exec(ctx, query, status, body, failureReason, time.Now(), requestID)
	if err != nil {
		r.logger.Error("Failed to update advisory result",
			"request_id", requestID.String(),
			"status", string(status),
			"error", err,
		)
		return fmt.Errorf("failed to update advisory result: %w", err)
	}

	if result.RowsAffected() == 0 {
		return advisory.ErrAdvisoryNotFound{RequestID: requestID}
	}

	return nil
}

// List retrieves advisories newest first with limit/offset pagination
func (r *AdvisoryRepository) List(ctx context.Context, limit, offset int) ([]*advisory.Advisory, error) {
	query := `
		SELECT request_id, commodity_name, region, requested_by, idempotency_key, correlation_id, status, body, failure_reason, created_at, processed_at
		FROM advisories
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.querier.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list advisories", "error", err)
		return nil, fmt.Errorf("failed to list advisories: %w", err)
	}
	defer rows.Close()

	var advisories []*advisory.Advisory
	for rows.Next() {
		adv, err := r.scanOne(rows)
		if err != nil {
			r.logger.Error("Failed to scan advisory", "error", err)
			return nil, fmt.Errorf("failed to scan advisory: %w", err)
		}
		advisories = append(advisories, adv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over advisories", "error", err)
		return nil, fmt.Errorf("error iterating over advisories: %w", err)
	}

	return advisories, nil
}

func (r *AdvisoryRepository) scanOne(row pgx.Row) (*advisory.Advisory, error) {
	var adv advisory.Advisory
	err := row.Scan(
		&adv.RequestID,
		&adv.CommodityName,
		&adv.Region,
		&adv.RequestedBy,
		&adv.IdempotencyKey,
		&adv.CorrelationID,
		&adv.Status,
		&adv.Body,
		&adv.FailureReason,
		&adv.CreatedAt,
		&adv.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &adv, nil
}

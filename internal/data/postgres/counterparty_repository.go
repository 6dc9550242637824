package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/domain/counterparty"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/agrifed-procurement-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CounterpartyRepository implements the counterparty.Repository interface for PostgreSQL
type CounterpartyRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCounterpartyRepository creates a new PostgreSQL counterparty directory repository
func NewCounterpartyRepository(logger *slog.Logger, db *persistence.PostgresDB) counterparty.Repository {
	return &CounterpartyRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create registers a new directory entry
func (r *CounterpartyRepository) Create(ctx context.Context, cp *counterparty.Counterparty) error {
	query := `
		INSERT INTO counterparties (id, name, source_type, village, contact, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		cp.ID,
		cp.Name,
		cp.SourceType,
		cp.Village,
		cp.Contact,
		cp.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create counterparty", "name", cp.Name, "error", err)
		return fmt.Errorf("failed to create counterparty: %w", err)
	}

	return nil
}

// GetByID retrieves a directory entry by its ID
func (r *CounterpartyRepository) GetByID(ctx context.Context, id uuid.UUID) (*counterparty.Counterparty, error) {
	query := `
		SELECT id, name, source_type, village, contact, created_at
		FROM counterparties
		WHERE id = $1
	`

	var cp counterparty.Counterparty
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&cp.ID,
		&cp.Name,
		&cp.SourceType,
		&cp.Village,
		&cp.Contact,
		&cp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, counterparty.ErrCounterpartyNotFound{ID: id}
		}
		r.logger.Error("Failed to get counterparty", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get counterparty: %w", err)
	}

	return &cp, nil
}

// ListBySourceType retrieves the eligible parties for a source type,
// ordered by name for stable choice-control population.
func (r *CounterpartyRepository) ListBySourceType(ctx context.Context, sourceType shared.SourceType) ([]*counterparty.Counterparty, error) {
	query := `
		SELECT id, name, source_type, village, contact, created_at
		FROM counterparties
		WHERE source_type = $1
		ORDER BY name ASC
	`

	rows, err := r.querier.Query(ctx, query, sourceType)
	if err != nil {
		r.logger.Error("Failed to list counterparties", "source_type", string(sourceType), "error", err)
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}
	defer rows.Close()

	var parties []*counterparty.Counterparty
	for rows.Next() {
		var cp counterparty.Counterparty
		err := rows.Scan(
			&cp.ID,
			&cp.Name,
			&cp.SourceType,
			&cp.Village,
			&cp.Contact,
			&cp.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan counterparty", "error", err)
			return nil, fmt.Errorf("failed to scan counterparty: %w", err)
		}
		parties = append(parties, &cp)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over counterparties", "error", err)
		return nil, fmt.Errorf("error iterating over counterparties: %w", err)
	}

	return parties, nil
}

// Package postgres provides PostgreSQL implementations of the master-data
// repositories: commodity prices, the counterparty directory, advisories
// and the transactional outbox.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// CommodityRepository implements the pricing.Repository interface for PostgreSQL
type CommodityRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCommodityRepository creates a new PostgreSQL commodity price repository
func NewCommodityRepository(logger *slog.Logger, db *persistence.PostgresDB) pricing.Repository {
	return &CommodityRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Upsert publishes a price, replacing the live record for the commodity.
// One live record per commodity name is enforced by the primary key.
func (r *CommodityRepository) Upsert(ctx context.Context, price *pricing.CommodityPrice) error {
	query := `
		INSERT INTO commodity_prices (commodity_name, base_price_per_kg, last_updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (commodity_name)
		DO UPDATE SET base_price_per_kg = $2, last_updated_at = $3, updated_by = $4
	`

	_, err := r.querier.Exec(ctx, query,
		price.CommodityName,
		price.BasePricePerKg,
		price.LastUpdatedAt,
		price.UpdatedBy,
	)
	if err != nil {
		r.logger.Error("Failed to upsert commodity price", "commodity", price.CommodityName, "error", err)
		return fmt.Errorf("failed to upsert commodity price: %w", err)
	}

	return nil
}

// GetByName retrieves the live price for a commodity.
// Returns ErrPriceNotFound if no price has been published.
func (r *CommodityRepository) GetByName(ctx context.Context, commodityName string) (*pricing.CommodityPrice, error) {
	query := `
		SELECT commodity_name, base_price_per_kg, last_updated_at, updated_by
		FROM commodity_prices
		WHERE commodity_name = $1
	`

	var price pricing.CommodityPrice
	err := r.querier.QueryRow(ctx, query, commodityName).Scan(
		&price.CommodityName,
		&price.BasePricePerKg,
		&price.LastUpdatedAt,
		&price.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pricing.ErrPriceNotFound{CommodityName: commodityName}
		}
		r.logger.Error("Failed to get commodity price", "commodity", commodityName, "error", err)
		return nil, fmt.Errorf("failed to get commodity price: %w", err)
	}

	return &price, nil
}

// List retrieves all published prices ordered by commodity name
func (r *CommodityRepository) List(ctx context.Context) ([]*pricing.CommodityPrice, error) {
	query := `
		SELECT commodity_name, base_price_per_kg, last_updated_at, updated_by
		FROM commodity_prices
		ORDER BY commodity_name ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list commodity prices", "error", err)
		return nil, fmt.Errorf("failed to list commodity prices: %w", err)
	}
	defer rows.Close()

	var prices []*pricing.CommodityPrice
	for rows.Next() {
		var price pricing.CommodityPrice
		err := rows.Scan(
			&price.CommodityName,
			&price.BasePricePerKg,
			&price.LastUpdatedAt,
			&price.UpdatedBy,
		)
		if err != nil {
			r.logger.Error("Failed to scan commodity price", "error", err)
			return nil, fmt.Errorf("failed to scan commodity price: %w", err)
		}
		prices = append(prices, &price)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over commodity prices", "error", err)
		return nil, fmt.Errorf("error iterating over commodity prices: %w", err)
	}

	return prices, nil
}

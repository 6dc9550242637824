package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCommodityRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &CommodityRepository{querier: mock, logger: logger}

	price := &pricing.CommodityPrice{
		CommodityName:  "Tomato",
		BasePricePerKg: 26.50,
		LastUpdatedAt:  time.Now(),
		UpdatedBy:      "union-admin",
	}

	query := `
		INSERT INTO commodity_prices \(commodity_name, base_price_per_kg, last_updated_at, updated_by\)
		VALUES \(\$1, \$2, \$3, \$4\)
		ON CONFLICT \(commodity_name\)
		DO UPDATE SET base_price_per_kg = \$2, last_updated_at = \$3, updated_by = \$4
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(price.CommodityName, price.BasePricePerKg, price.LastUpdatedAt, price.UpdatedBy).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Upsert(ctx, price)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(price.CommodityName, price.BasePricePerKg, price.LastUpdatedAt, price.UpdatedBy).
			WillReturnError(expectedErr)

		err := repo.Upsert(ctx, price)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert commodity price")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommodityRepository_GetByName(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &CommodityRepository{querier: mock, logger: logger}
	now := time.Now()

	expectedPrice := &pricing.CommodityPrice{
		CommodityName:  "Tomato",
		BasePricePerKg: 26.50,
		LastUpdatedAt:  now,
		UpdatedBy:      "union-admin",
	}

	query := `
		SELECT commodity_name, base_price_per_kg, last_updated_at, updated_by
		FROM commodity_prices
		WHERE commodity_name = \$1
	`
	rows := pgxmock.NewRows([]string{"commodity_name", "base_price_per_kg", "last_updated_at", "updated_by"}).
		AddRow(expectedPrice.CommodityName, expectedPrice.BasePricePerKg, expectedPrice.LastUpdatedAt, expectedPrice.UpdatedBy)

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("Tomato").WillReturnRows(rows)

		price, err := repo.GetByName(ctx, "Tomato")
		assert.NoError(t, err)
		assert.Equal(t, expectedPrice, price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("Okra").WillReturnError(pgx.ErrNoRows)

		price, err := repo.GetByName(ctx, "Okra")
		assert.Error(t, err)
		assert.Nil(t, price)
		var notFoundErr pricing.ErrPriceNotFound
		assert.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "Okra", notFoundErr.CommodityName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("some db error")
		mock.ExpectQuery(query).WithArgs("Tomato").WillReturnError(dbErr)

		price, err := repo.GetByName(ctx, "Tomato")
		assert.Error(t, err)
		assert.Nil(t, price)
		assert.Contains(t, err.Error(), "failed to get commodity price")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommodityRepository_List(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &CommodityRepository{querier: mock, logger: logger}
	now := time.Now()

	query := `
		SELECT commodity_name, base_price_per_kg, last_updated_at, updated_by
		FROM commodity_prices
		ORDER BY commodity_name ASC
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"commodity_name", "base_price_per_kg", "last_updated_at", "updated_by"}).
			AddRow("Maize", 14.00, now, "union-admin").
			AddRow("Tomato", 26.50, now, "union-admin")
		mock.ExpectQuery(query).WillReturnRows(rows)

		prices, err := repo.List(ctx)
		assert.NoError(t, err)
		require.Len(t, prices, 2)
		assert.Equal(t, "Maize", prices[0].CommodityName)
		assert.Equal(t, "Tomato", prices[1].CommodityName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"commodity_name", "base_price_per_kg", "last_updated_at", "updated_by"})
		mock.ExpectQuery(query).WillReturnRows(rows)

		prices, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, prices)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("some db error")
		mock.ExpectQuery(query).WillReturnError(dbErr)

		prices, err := repo.List(ctx)
		assert.Error(t, err)
		assert.Nil(t, prices)
		assert.Contains(t, err.Error(), "failed to list commodity prices")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

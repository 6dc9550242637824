package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/counterparty"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterpartyColumns() []string {
	return []string{"id", "name", "source_type", "village", "contact", "created_at"}
}

func registeredFarmer() *counterparty.Counterparty {
	return &counterparty.Counterparty{
		ID:         uuid.New(),
		Name:       "Abebe Bekele",
		SourceType: shared.SourceTypeFarmer,
		Village:    "Holeta",
		Contact:    "0911-234567",
		CreatedAt:  time.Now(),
	}
}

func TestCounterpartyRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &CounterpartyRepository{querier: mock, logger: logger}
	cp := registeredFarmer()

	query := `
		INSERT INTO counterparties \(id, name, source_type, village, contact, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)
	`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(cp.ID, cp.Name, cp.SourceType, cp.Village, cp.Contact, cp.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, cp)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		dbErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(cp.ID, cp.Name, cp.SourceType, cp.Village, cp.Contact, cp.CreatedAt).
			WillReturnError(dbErr)

		err := repo.Create(ctx, cp)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create counterparty")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCounterpartyRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &CounterpartyRepository{querier: mock, logger: logger}
	cp := registeredFarmer()

	query := `
		SELECT id, name, source_type, village, contact, created_at
		FROM counterparties
		WHERE id = \$1
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows(counterpartyColumns()).
			AddRow(cp.ID, cp.Name, cp.SourceType, cp.Village, cp.Contact, cp.CreatedAt)
		mock.ExpectQuery(query).WithArgs(cp.ID).WillReturnRows(rows)

		got, err := repo.GetByID(ctx, cp.ID)
		assert.NoError(t, err)
		assert.Equal(t, cp.Name, got.Name)
		assert.Equal(t, shared.SourceTypeFarmer, got.SourceType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		missingID := uuid.New()
		mock.ExpectQuery(query).WithArgs(missingID).WillReturnError(pgx.ErrNoRows)

		got, err := repo.GetByID(ctx, missingID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, counterparty.ErrCounterpartyNotFound{ID: missingID})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("some db error")
		mock.ExpectQuery(query).WithArgs(cp.ID).WillReturnError(dbErr)

		got, err := repo.GetByID(ctx, cp.ID)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "failed to get counterparty")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCounterpartyRepository_ListBySourceType(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &CounterpartyRepository{querier: mock, logger: logger}
	now := time.Now()

	query := `
		SELECT id, name, source_type, village, contact, created_at
		FROM counterparties
		WHERE source_type = \$1
		ORDER BY name ASC
	`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows(counterpartyColumns()).
			AddRow(uuid.New(), "Abebe Bekele", shared.SourceTypeFarmer, "Holeta", "0911-234567", now).
			AddRow(uuid.New(), "Chaltu Dinsa", shared.SourceTypeFarmer, "Sebeta", "0911-765432", now)
		mock.ExpectQuery(query).WithArgs(shared.SourceTypeFarmer).WillReturnRows(rows)

		parties, err := repo.ListBySourceType(ctx, shared.SourceTypeFarmer)
		assert.NoError(t, err)
		require.Len(t, parties, 2)
		assert.Equal(t, "Abebe Bekele", parties[0].Name)
		assert.Equal(t, "Chaltu Dinsa", parties[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty directory", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(shared.SourceTypeUnion).WillReturnRows(pgxmock.NewRows(counterpartyColumns()))

		parties, err := repo.ListBySourceType(ctx, shared.SourceTypeUnion)
		assert.NoError(t, err)
		assert.Empty(t, parties)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("some db error")
		mock.ExpectQuery(query).WithArgs(shared.SourceTypeVendor).WillReturnError(dbErr)

		parties, err := repo.ListBySourceType(ctx, shared.SourceTypeVendor)
		assert.Nil(t, parties)
		assert.Contains(t, err.Error(), "failed to list counterparties")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

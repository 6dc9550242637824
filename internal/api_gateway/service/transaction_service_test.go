package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func procurementRecord(commodity string, grade shared.Grade, quantity float64, unit shared.Unit, totalAmount float64, createdAt time.Time) *ledger.Record {
	return &ledger.Record{
		ID:               uuid.New(),
		Kind:             shared.KindProcurement,
		SourceType:       shared.SourceTypeFarmer,
		CounterpartyName: "Abebe Bekele",
		CommodityName:    commodity,
		Grade:            grade,
		Quantity:         quantity,
		Unit:             unit,
		EffectiveDate:    createdAt,
		UnitPrice:        totalAmount / quantity,
		TotalAmount:      totalAmount,
		Status:           shared.TransactionStatusLocked,
		CreatedAt:        createdAt,
	}
}

func TestTransactionService_ListTransactions(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, time.August, 30, 8, 0, 0, 0, time.UTC)

	t.Run("FiltersAndSorts", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		tomatoOld := procurementRecord("Tomato", shared.GradeA, 100, shared.UnitKilogram, 2650, base)
		tomatoNew := procurementRecord("Tomato", shared.GradeB, 250, shared.UnitKilogram, 5300, base.Add(2*time.Hour))
		onion := procurementRecord("Onion", shared.GradeA, 50, shared.UnitKilogram, 900, base.Add(time.Hour))

		mockLedger.On("ListByKind", ctx, shared.KindProcurement).
			Return([]*ledger.Record{tomatoOld, tomatoNew, onion}, nil).Once()

		records, err := svc.ListTransactions(ctx, shared.KindProcurement,
			ledger.FilterCriteria{CommodityName: "Tomato"}, ledger.DefaultSortSpec())

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, tomatoNew.ID, records[0].ID)
		assert.Equal(t, tomatoOld.ID, records[1].ID)
		mockLedger.AssertExpectations(t)
	})

	t.Run("AllSentinelDisablesCriterion", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		tomato := procurementRecord("Tomato", shared.GradeA, 100, shared.UnitKilogram, 2650, base)
		onion := procurementRecord("Onion", shared.GradeB, 50, shared.UnitKilogram, 900, base.Add(time.Hour))

		mockLedger.On("ListByKind", ctx, shared.KindProcurement).
			Return([]*ledger.Record{tomato, onion}, nil).Once()

		records, err := svc.ListTransactions(ctx, shared.KindProcurement,
			ledger.FilterCriteria{CommodityName: ledger.FilterAll, Grade: "All"},
			ledger.SortSpec{Field: ledger.SortFieldTotalAmount, Order: ledger.SortAscending})

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, onion.ID, records[0].ID)
		assert.Equal(t, tomato.ID, records[1].ID)
		mockLedger.AssertExpectations(t)
	})

	t.Run("EmptyResultIsNotAnError", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		mockLedger.On("ListByKind", ctx, shared.KindSales).
			Return([]*ledger.Record{}, nil).Once()

		records, err := svc.ListTransactions(ctx, shared.KindSales,
			ledger.FilterCriteria{}, ledger.DefaultSortSpec())

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
		mockLedger.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		mockLedger.On("ListByKind", ctx, shared.KindProcurement).
			Return(nil, errors.New("connection error")).Once()

		records, err := svc.ListTransactions(ctx, shared.KindProcurement,
			ledger.FilterCriteria{}, ledger.DefaultSortSpec())

		assert.Error(t, err)
		assert.Nil(t, records)
		mockLedger.AssertExpectations(t)
	})
}

func TestTransactionService_GetTransactionByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		record := procurementRecord("Tomato", shared.GradeB, 250, shared.UnitKilogram, 5300, time.Now())
		mockLedger.On("GetByID", ctx, record.ID).Return(record, nil).Once()

		got, err := svc.GetTransactionByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		mockLedger.AssertExpectations(t)
	})

	t.Run("NotFoundReturnsNil", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		id := uuid.New()
		mockLedger.On("GetByID", ctx, id).Return(nil, ledger.ErrRecordNotFound{ID: id}).Once()

		got, err := svc.GetTransactionByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got)
		mockLedger.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		id := uuid.New()
		mockLedger.On("GetByID", ctx, id).Return(nil, errors.New("connection error")).Once()

		got, err := svc.GetTransactionByID(ctx, id)
		assert.Error(t, err)
		assert.Nil(t, got)
		mockLedger.AssertExpectations(t)
	})
}

func TestTransactionService_ProcurementSummary(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, time.August, 30, 8, 0, 0, 0, time.UTC)

	t.Run("NormalizesQuintalsAndGroupsByCommodity", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		records := []*ledger.Record{
			procurementRecord("Tomato", shared.GradeB, 250, shared.UnitKilogram, 5300, base),
			procurementRecord("Tomato", shared.GradeA, 3, shared.UnitQuintal, 7950, base.Add(time.Hour)),
			procurementRecord("Onion", shared.GradeA, 50, shared.UnitKilogram, 900, base.Add(2*time.Hour)),
		}
		mockLedger.On("ListByKind", ctx, shared.KindProcurement).Return(records, nil).Once()

		summary, err := svc.ProcurementSummary(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(3), summary.TotalRecords)
		assert.InDelta(t, 14150.0, summary.TotalAmount, 1e-9)

		require.Len(t, summary.Commodities, 2)
		// Lines are sorted by commodity name
		assert.Equal(t, "Onion", summary.Commodities[0].CommodityName)
		assert.Equal(t, int64(1), summary.Commodities[0].RecordCount)
		assert.InDelta(t, 50.0, summary.Commodities[0].TotalQuantityKg, 1e-9)

		assert.Equal(t, "Tomato", summary.Commodities[1].CommodityName)
		assert.Equal(t, int64(2), summary.Commodities[1].RecordCount)
		// 250 kg plus 3 quintals at 100 kg each
		assert.InDelta(t, 550.0, summary.Commodities[1].TotalQuantityKg, 1e-9)
		assert.InDelta(t, 13250.0, summary.Commodities[1].TotalAmount, 1e-9)
		mockLedger.AssertExpectations(t)
	})

	t.Run("EmptyPartition", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		mockLedger.On("ListByKind", ctx, shared.KindProcurement).Return([]*ledger.Record{}, nil).Once()

		summary, err := svc.ProcurementSummary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), summary.TotalRecords)
		assert.Empty(t, summary.Commodities)
		mockLedger.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mockLedger := new(MockLedgerRepository)
		svc := NewTransactionService(newTestLogger(), mockLedger)

		mockLedger.On("ListByKind", ctx, shared.KindProcurement).
			Return(nil, errors.New("connection error")).Once()

		summary, err := svc.ProcurementSummary(ctx)
		assert.Error(t, err)
		assert.Nil(t, summary)
		mockLedger.AssertExpectations(t)
	})
}

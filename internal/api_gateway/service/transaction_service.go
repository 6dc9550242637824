package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	ledgerRepo ledger.Repository
	logger     *slog.Logger
}

// NewTransactionService creates a new transaction read service
func NewTransactionService(logger *slog.Logger, ledgerRepo ledger.Repository) TransactionService {
	return &TransactionServiceImpl{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// ListTransactions projects one kind partition through the filter criteria
// and sort spec. The repository returns the partition snapshot; the ordering
// and filter rules live in the domain so they never drift with store
// collation.
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, kind shared.TransactionKind, criteria ledger.FilterCriteria, spec ledger.SortSpec) ([]*ledger.Record, error) {
	records, err := s.ledgerRepo.ListByKind(ctx, kind)
	if err != nil {
		s.logger.Error("Failed to list ledger partition", "kind", string(kind), "error", err)
		return nil, err
	}

	return ledger.Project(records, kind, criteria, spec), nil
}

// GetTransactionByID retrieves a committed record by its ID. Returns nil if not found
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, id uuid.UUID) (*ledger.Record, error) {
	record, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		var errNotFound ledger.ErrRecordNotFound
		if errors.As(err, &errNotFound) {
			s.logger.Info("Transaction not found", "record_id", id.String())
			return nil, nil
		}
		s.logger.Error("Failed to get transaction by ID", "record_id", id.String(), "error", err)
		return nil, err
	}
	return record, nil
}

// ProcurementSummary aggregates the procurement partition per commodity.
// Quintal quantities are normalized to kilograms before summing.
func (s *TransactionServiceImpl) ProcurementSummary(ctx context.Context) (*ProcurementSummary, error) {
	records, err := s.ledgerRepo.ListByKind(ctx, shared.KindProcurement)
	if err != nil {
		s.logger.Error("Failed to load procurement partition for summary", "error", err)
		return nil, err
	}

	lines := make(map[string]*CommoditySummaryLine)
	summary := &ProcurementSummary{}
	for _, r := range records {
		line, ok := lines[r.CommodityName]
		if !ok {
			line = &CommoditySummaryLine{CommodityName: r.CommodityName}
			lines[r.CommodityName] = line
		}

		quantityKg := r.Quantity
		if r.Unit == shared.UnitQuintal {
			quantityKg *= pricing.KgPerQuintal
		}

		line.RecordCount++
		line.TotalQuantityKg += quantityKg
		line.TotalAmount += r.TotalAmount

		summary.TotalRecords++
		summary.TotalAmount += r.TotalAmount
	}

	summary.Commodities = make([]CommoditySummaryLine, 0, len(lines))
	for _, line := range lines {
		summary.Commodities = append(summary.Commodities, *line)
	}
	sort.Slice(summary.Commodities, func(i, j int) bool {
		return summary.Commodities[i].CommodityName < summary.Commodities[j].CommodityName
	})

	return summary, nil
}

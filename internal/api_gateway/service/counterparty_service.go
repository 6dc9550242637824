package service

import (
	"context"

	"github.com/agrifed-procurement-ledger/internal/domain/counterparty"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// CounterpartyServiceImpl implements the CounterpartyService interface
type CounterpartyServiceImpl struct {
	counterpartyRepo counterparty.Repository
}

// NewCounterpartyService creates a new counterparty directory service
func NewCounterpartyService(counterpartyRepo counterparty.Repository) CounterpartyService {
	return &CounterpartyServiceImpl{
		counterpartyRepo: counterpartyRepo,
	}
}

// RegisterCounterparty adds a new directory entry
func (s *CounterpartyServiceImpl) RegisterCounterparty(ctx context.Context, name string, sourceType shared.SourceType, village, contact string) (*counterparty.Counterparty, error) {
	cp, err := counterparty.NewCounterparty(name, sourceType, village, contact)
	if err != nil {
		return nil, err
	}

	if err := s.counterpartyRepo.Create(ctx, cp); err != nil {
		return nil, err
	}

	return cp, nil
}

// GetCounterparty retrieves a directory entry by ID
func (s *CounterpartyServiceImpl) GetCounterparty(ctx context.Context, id uuid.UUID) (*counterparty.Counterparty, error) {
	return s.counterpartyRepo.GetByID(ctx, id)
}

// ListCounterparties retrieves the eligible parties for a source type
func (s *CounterpartyServiceImpl) ListCounterparties(ctx context.Context, sourceType shared.SourceType) ([]*counterparty.Counterparty, error) {
	return s.counterpartyRepo.ListBySourceType(ctx, sourceType)
}

package service

import (
	"context"

	"github.com/agrifed-procurement-ledger/internal/domain/advisory"
	"github.com/agrifed-procurement-ledger/internal/domain/counterparty"
	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/outbox"
	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, record *ledger.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Record), args.Error(1)
}

func (m *MockLedgerRepository) ListByKind(ctx context.Context, kind shared.TransactionKind) ([]*ledger.Record, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Record), args.Error(1)
}

func (m *MockLedgerRepository) CountByKind(ctx context.Context, kind shared.TransactionKind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) Upsert(ctx context.Context, price *pricing.CommodityPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPricingRepository) GetByName(ctx context.Context, commodityName string) (*pricing.CommodityPrice, error) {
	args := m.Called(ctx, commodityName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.CommodityPrice), args.Error(1)
}

func (m *MockPricingRepository) List(ctx context.Context) ([]*pricing.CommodityPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CommodityPrice), args.Error(1)
}

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetByRecordID(ctx context.Context, recordID uuid.UUID) (*outbox.Message, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbox.Message), args.Error(1)
}

type MockAdvisoryRepository struct {
	mock.Mock
}

func (m *MockAdvisoryRepository) Create(ctx context.Context, adv *advisory.Advisory) error {
	args := m.Called(ctx, adv)
	return args.Error(0)
}

func (m *MockAdvisoryRepository) GetByRequestID(ctx context.Context, requestID uuid.UUID) (*advisory.Advisory, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*advisory.Advisory), args.Error(1)
}

func (m *MockAdvisoryRepository) GetByIdempotencyKey(ctx context.Context, idempotencyKey string) (*advisory.Advisory, error) {
	args := m.Called(ctx, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*advisory.Advisory), args.Error(1)
}

func (m *MockAdvisoryRepository) UpdateResult(ctx context.Context, requestID uuid.UUID, status shared.AdvisoryStatus, body, failureReason string) error {
	args := m.Called(ctx, requestID, status, body, failureReason)
	return args.Error(0)
}

func (m *MockAdvisoryRepository) List(ctx context.Context, limit, offset int) ([]*advisory.Advisory, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*advisory.Advisory), args.Error(1)
}

type MockCounterpartyRepository struct {
	mock.Mock
}

func (m *MockCounterpartyRepository) Create(ctx context.Context, cp *counterparty.Counterparty) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCounterpartyRepository) GetByID(ctx context.Context, id uuid.UUID) (*counterparty.Counterparty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*counterparty.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepository) ListBySourceType(ctx context.Context, sourceType shared.SourceType) ([]*counterparty.Counterparty, error) {
	args := m.Called(ctx, sourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*counterparty.Counterparty), args.Error(1)
}

type MockMessagingProducer struct {
	mock.Mock
}

func (m *MockMessagingProducer) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagingProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

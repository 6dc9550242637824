package outbox_poller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/outbox"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOutboxRepository mocks the outbox repository
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

// MockMessagePublisher mocks the committed events producer
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func committedRecord() *ledger.Record {
	return &ledger.Record{
		ID:               uuid.New(),
		Kind:             shared.KindProcurement,
		SourceType:       shared.SourceTypeFarmer,
		CounterpartyName: "Abebe Bekele",
		CommodityName:    "Tomato",
		Grade:            shared.GradeB,
		Quantity:         250,
		Unit:             shared.UnitKilogram,
		EffectiveDate:    time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC),
		UnitPrice:        21.20,
		TotalAmount:      5300,
		Status:           shared.TransactionStatusLocked,
		CorrelationID:    "corr-123",
		CreatedAt:        time.Now().UTC(),
	}
}

func pendingOutboxMessage(t *testing.T, record *ledger.Record) *outbox.Message {
	t.Helper()
	msg, err := outbox.NewMessage(record)
	require.NoError(t, err)
	msg.ID = 42
	return msg
}

func TestEventPublisher_PublishCommittedEvent(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("SuccessPublishesAndMarksProcessed", func(t *testing.T) {
		mockRepo := &MockOutboxRepository{}
		mockProducer := &MockMessagePublisher{}
		publisher := NewEventPublisher(logger, mockRepo, mockProducer)

		record := committedRecord()
		msg := pendingOutboxMessage(t, record)

		mockProducer.On("Publish", mock.Anything, record.ID.String(), mock.MatchedBy(func(v interface{}) bool {
			event, ok := v.(CommittedEvent)
			return ok &&
				event.EventType == "transaction_committed" &&
				event.Record.ID == record.ID &&
				event.Record.TotalAmount == 5300
		})).Return(nil).Once()
		mockRepo.On("UpdateStatus", mock.Anything, msg.ID, shared.OutboxStatusProcessed).Return(nil).Once()

		err := publisher.PublishCommittedEvent(ctx, msg)
		assert.NoError(t, err)
		mockProducer.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("CorruptPayloadIsTerminal", func(t *testing.T) {
		mockRepo := &MockOutboxRepository{}
		mockProducer := &MockMessagePublisher{}
		publisher := NewEventPublisher(logger, mockRepo, mockProducer)

		msg := &outbox.Message{
			ID:       7,
			RecordID: uuid.New(),
			Payload:  json.RawMessage(`{"id": truncated`),
			Status:   shared.OutboxStatusPending,
		}

		mockRepo.On("UpdateStatus", mock.Anything, msg.ID, shared.OutboxStatusFailedToPublish).Return(nil).Once()

		err := publisher.PublishCommittedEvent(ctx, msg)
		assert.Error(t, err)
		mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("PublishFailureLeavesMessagePending", func(t *testing.T) {
		mockRepo := &MockOutboxRepository{}
		mockProducer := &MockMessagePublisher{}
		publisher := NewEventPublisher(logger, mockRepo, mockProducer)

		record := committedRecord()
		msg := pendingOutboxMessage(t, record)

		mockProducer.On("Publish", mock.Anything, record.ID.String(), mock.Anything).
			Return(errors.New("broker unreachable")).Once()

		err := publisher.PublishCommittedEvent(ctx, msg)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StatusUpdateFailureAfterPublish", func(t *testing.T) {
		mockRepo := &MockOutboxRepository{}
		mockProducer := &MockMessagePublisher{}
		publisher := NewEventPublisher(logger, mockRepo, mockProducer)

		record := committedRecord()
		msg := pendingOutboxMessage(t, record)

		mockProducer.On("Publish", mock.Anything, record.ID.String(), mock.Anything).Return(nil).Once()
		mockRepo.On("UpdateStatus", mock.Anything, msg.ID, shared.OutboxStatusProcessed).
			Return(errors.New("connection error")).Once()

		err := publisher.PublishCommittedEvent(ctx, msg)
		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

var _ outbox.Repository = (*MockOutboxRepository)(nil)

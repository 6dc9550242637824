package outbox

import (
	"encoding/json"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Message stores a committed ledger record for reliable event publication.
// The poller drains pending messages onto the committed-events topic so
// reporting consumers never miss a commit even when the broker is down at
// commit time.
type Message struct {
	ID            int64               `json:"id"`
	RecordID      uuid.UUID           `json:"record_id"`
	Payload       json.RawMessage     `json:"payload"`
	Status        shared.OutboxStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	CreatedAt     time.Time           `json:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
}

// NewMessage wraps a committed record into a pending outbox message.
func NewMessage(record *ledger.Record) (*Message, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	return &Message{
		RecordID:  record.ID,
		Payload:   payload,
		Status:    shared.OutboxStatusPending,
		Attempts:  0,
		CreatedAt: time.Now(),
	}, nil
}

// GetRecord extracts the committed ledger record from the payload
func (m *Message) GetRecord() (*ledger.Record, error) {
	var record ledger.Record
	if err := json.Unmarshal(m.Payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

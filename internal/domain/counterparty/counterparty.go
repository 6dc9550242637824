package counterparty

import (
	"errors"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyName = errors.New("counterparty name cannot be empty")
)

// Counterparty is an eligible trading party in the federation's directory:
// a registered farmer, empanelled vendor, aggregator or member union. The
// directory backs the wizard's Capture-stage choice control.
type Counterparty struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	SourceType shared.SourceType `json:"source_type"`
	Village    string            `json:"village,omitempty"`
	Contact    string            `json:"contact,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewCounterparty registers a directory entry under a source type.
func NewCounterparty(name string, sourceType shared.SourceType, village, contact string) (*Counterparty, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := shared.ParseSourceType(string(sourceType)); err != nil {
		return nil, err
	}

	return &Counterparty{
		ID:         uuid.New(),
		Name:       name,
		SourceType: sourceType,
		Village:    village,
		Contact:    contact,
		CreatedAt:  time.Now(),
	}, nil
}

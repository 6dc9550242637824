package counterparty

import (
	"context"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository manages the counterparty directory
type Repository interface {
	Create(ctx context.Context, cp *Counterparty) error
	GetByID(ctx context.Context, id uuid.UUID) (*Counterparty, error)
	ListBySourceType(ctx context.Context, sourceType shared.SourceType) ([]*Counterparty, error)
}

// ErrCounterpartyNotFound indicates missing directory entry
type ErrCounterpartyNotFound struct {
	ID uuid.UUID
}

func (e ErrCounterpartyNotFound) Error() string {
	return "counterparty not found: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrCounterpartyNotFound
func (e ErrCounterpartyNotFound) Is(target error) bool {
	t, ok := target.(ErrCounterpartyNotFound)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}

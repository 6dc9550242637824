package ledger

import (
	"context"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository manages the append-only transaction ledger. There is no update
// path: records are written once at commit and only ever read afterwards.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	// ListByKind returns the full partition for a transaction kind, newest
	// first. Filtering and ordering rules are applied by the domain
	// projection over this snapshot.
	ListByKind(ctx context.Context, kind shared.TransactionKind) ([]*Record, error)
	CountByKind(ctx context.Context, kind shared.TransactionKind) (int64, error)
}

// ErrRecordNotFound indicates missing ledger record
type ErrRecordNotFound struct {
	ID uuid.UUID
}

func (e ErrRecordNotFound) Error() string {
	return "ledger record not found: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrRecordNotFound
func (e ErrRecordNotFound) Is(target error) bool {
	t, ok := target.(ErrRecordNotFound)
	if !ok {
		return false
	}
	// A nil target ID matches any ErrRecordNotFound
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}

// ErrDuplicateRecord indicates record id uniqueness violation
type ErrDuplicateRecord struct {
	ID uuid.UUID
}

func (e ErrDuplicateRecord) Error() string {
	return "duplicate ledger record: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrDuplicateRecord
func (e ErrDuplicateRecord) Is(target error) bool {
	t, ok := target.(ErrDuplicateRecord)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}

package advisory

import (
	"context"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository manages advisory broadcast persistence
type Repository interface {
	Create(ctx context.Context, adv *Advisory) error
	GetByRequestID(ctx context.Context, requestID uuid.UUID) (*Advisory, error)
	// GetByIdempotencyKey returns nil when no advisory exists for the key,
	// enabling request deduplication at the gateway.
	GetByIdempotencyKey(ctx context.Context, idempotencyKey string) (*Advisory, error)
	UpdateResult(ctx context.Context, requestID uuid.UUID, status shared.AdvisoryStatus, body, failureReason string) error
	List(ctx context.Context, limit, offset int) ([]*Advisory, error)
}

// ErrAdvisoryNotFound indicates missing advisory
type ErrAdvisoryNotFound struct {
	RequestID uuid.UUID
}

func (e ErrAdvisoryNotFound) Error() string {
	return "advisory not found: " + e.RequestID.String()
}

// Is implements the errors.Is interface for ErrAdvisoryNotFound
func (e ErrAdvisoryNotFound) Is(target error) bool {
	t, ok := target.(ErrAdvisoryNotFound)
	if !ok {
		return false
	}
	if t.RequestID == uuid.Nil {
		return true
	}
	return e.RequestID == t.RequestID
}

// ErrDuplicateAdvisory indicates request uniqueness violation
type ErrDuplicateAdvisory struct {
	RequestID uuid.UUID
}

func (e ErrDuplicateAdvisory) Error() string {
	return "duplicate advisory: " + e.RequestID.String()
}

// Is implements the errors.Is interface for ErrDuplicateAdvisory
func (e ErrDuplicateAdvisory) Is(target error) bool {
	t, ok := target.(ErrDuplicateAdvisory)
	if !ok {
		return false
	}
	if t.RequestID == uuid.Nil {
		return true
	}
	return e.RequestID == t.RequestID
}

package service

import (
	"context"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
)

// ProcessingService defines the interface for processing advisory broadcast requests.
type ProcessingService interface {
	ProcessAdvisory(ctx context.Context, request *shared.AdvisoryRequest) error
}

// AdvisoryGenerator renders the broadcast body for an advisory request. The
// production deployment may swap in an external generative service; the local
// implementation renders from the published price list.
type AdvisoryGenerator interface {
	Generate(ctx context.Context, request *shared.AdvisoryRequest) (string, error)
}

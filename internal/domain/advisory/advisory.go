package advisory

import (
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Advisory is one broadcast task. It carries the three observable states of
// the async pipeline explicitly: PENDING while queued, SUCCEEDED with the
// rendered body, or FAILED with a reason. Repeated requests collapse onto
// one advisory via the idempotency key.
type Advisory struct {
	RequestID      uuid.UUID             `json:"request_id"`
	CommodityName  string                `json:"commodity_name"`
	Region         string                `json:"region"`
	RequestedBy    string                `json:"requested_by"`
	IdempotencyKey string                `json:"idempotency_key,omitempty"`
	CorrelationID  string                `json:"correlation_id,omitempty"`
	Status         shared.AdvisoryStatus `json:"status"`
	Body           string                `json:"body,omitempty"`
	FailureReason  string                `json:"failure_reason,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	ProcessedAt    *time.Time            `json:"processed_at,omitempty"`
}

// NewAdvisory creates the pending advisory for a broadcast request.
func NewAdvisory(req *shared.AdvisoryRequest) *Advisory {
	return &Advisory{
		RequestID:      req.RequestID,
		CommodityName:  req.CommodityName,
		Region:         req.Region,
		RequestedBy:    req.RequestedBy,
		IdempotencyKey: req.IdempotencyKey,
		CorrelationID:  req.CorrelationID,
		Status:         shared.AdvisoryStatusPending,
		CreatedAt:      time.Now(),
	}
}

// MarkSucceeded records the rendered broadcast body.
func (a *Advisory) MarkSucceeded(body string) {
	a.Status = shared.AdvisoryStatusSucceeded
	a.Body = body
	a.FailureReason = ""
	now := time.Now()
	a.ProcessedAt = &now
}

// MarkFailed records a terminal failure with its reason.
func (a *Advisory) MarkFailed(reason string) {
	a.Status = shared.AdvisoryStatusFailed
	a.FailureReason = reason
	now := time.Now()
	a.ProcessedAt = &now
}

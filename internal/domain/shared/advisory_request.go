package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCommodityName = errors.New("commodity name cannot be empty")
	ErrEmptyRegion        = errors.New("region cannot be empty")
)

// AdvisoryRequest defines a Kafka message asking the advisory processor to
// render and broadcast a market advisory for a commodity in a region.
type AdvisoryRequest struct {
	RequestID      uuid.UUID `json:"request_id"`
	CommodityName  string    `json:"commodity_name"`
	Region         string    `json:"region"`
	RequestedBy    string    `json:"requested_by"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
	CorrelationID  string    `json:"correlation_id"`
	Timestamp      time.Time `json:"timestamp"`
}

// Validate checks the request fields the processor depends on.
func (r *AdvisoryRequest) Validate() error {
	if r.CommodityName == "" {
		return ErrEmptyCommodityName
	}
	if r.Region == "" {
		return ErrEmptyRegion
	}
	return nil
}

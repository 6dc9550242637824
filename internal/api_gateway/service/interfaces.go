package service

import (
	"context"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/counterparty"
	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/agrifed-procurement-ledger/internal/domain/wizard"
	"github.com/google/uuid"
)

// TransactionService defines the read side of the committed ledger
type TransactionService interface {
	// ListTransactions projects one kind partition of the ledger through
	// the filter criteria and sort spec
	ListTransactions(ctx context.Context, kind shared.TransactionKind, criteria ledger.FilterCriteria, spec ledger.SortSpec) ([]*ledger.Record, error)

	// GetTransactionByID retrieves a committed record by its ID
	// Returns nil if the record is not found
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*ledger.Record, error)

	// ProcurementSummary aggregates the procurement partition per commodity
	ProcurementSummary(ctx context.Context) (*ProcurementSummary, error)
}

// ProcurementSummary is the per-commodity rollup of the procurement partition
type ProcurementSummary struct {
	TotalRecords int64                  `json:"total_records"`
	TotalAmount  float64                `json:"total_amount"`
	Commodities  []CommoditySummaryLine `json:"commodities"`
}

// CommoditySummaryLine is one commodity's rollup in a procurement summary
type CommoditySummaryLine struct {
	CommodityName   string  `json:"commodity_name"`
	RecordCount     int64   `json:"record_count"`
	TotalQuantityKg float64 `json:"total_quantity_kg"`
	TotalAmount     float64 `json:"total_amount"`
}

// DraftUpdate carries a partial draft mutation. Nil fields are left alone,
// so Capture-stage edits can land one field at a time.
type DraftUpdate struct {
	SourceType       *string
	CounterpartyName *string
	CommodityName    *string
	Grade            *string
	Quantity         *float64
	Unit             *string
	EffectiveDate    *time.Time
	VehicleNumber    *string
	DriverName       *string
	DriverContact    *string
}

// WizardSession is one live entry pass with its computed price preview
type WizardSession struct {
	ID                uuid.UUID      `json:"id"`
	Wizard            *wizard.Wizard `json:"wizard"`
	UnitPrice         float64        `json:"unit_price"`
	TotalAmount       float64        `json:"total_amount"`
	CommittedRecordID *uuid.UUID     `json:"committed_record_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// WizardService drives the three-stage entry flow. Sessions are transient
// server state; only a successful commit leaves a durable trace.
type WizardService interface {
	// Start opens a new wizard session of the given transaction kind
	Start(ctx context.Context, kind shared.TransactionKind) (*WizardSession, error)

	// Get retrieves a session with a fresh price preview
	// Returns ErrSessionNotFound if the session doesn't exist or expired
	Get(ctx context.Context, id uuid.UUID) (*WizardSession, error)

	// UpdateDraft applies a partial draft mutation to a session
	UpdateDraft(ctx context.Context, id uuid.UUID, update DraftUpdate) (*WizardSession, error)

	// Advance moves the session one stage forward
	Advance(ctx context.Context, id uuid.UUID) (*WizardSession, error)

	// Back moves the session one stage backward
	Back(ctx context.Context, id uuid.UUID) (*WizardSession, error)

	// Commit turns the draft into an immutable ledger record. Committing an
	// already-committed session returns the original record.
	Commit(ctx context.Context, id uuid.UUID, correlationID string) (*ledger.Record, error)

	// Cancel discards a session and its draft
	Cancel(ctx context.Context, id uuid.UUID) error
}

// PricingService manages the live commodity price list
type PricingService interface {
	// PublishPrice creates or replaces the live price for a commodity
	PublishPrice(ctx context.Context, commodityName string, basePricePerKg float64, updatedBy string) (*pricing.CommodityPrice, error)

	// GetPrice retrieves the live price for a commodity
	// Returns ErrPriceNotFound if no price has been published
	GetPrice(ctx context.Context, commodityName string) (*pricing.CommodityPrice, error)

	// ListPrices retrieves all published prices
	ListPrices(ctx context.Context) ([]*pricing.CommodityPrice, error)

	// PreviewUnitPrice computes the effective unit price for a commodity,
	// grade and unit. An unpublished commodity previews at zero.
	PreviewUnitPrice(ctx context.Context, commodityName string, grade shared.Grade, unit shared.Unit) (float64, error)
}

// CounterpartyService manages the counterparty directory
type CounterpartyService interface {
	// RegisterCounterparty adds a new directory entry
	RegisterCounterparty(ctx context.Context, name string, sourceType shared.SourceType, village, contact string) (*counterparty.Counterparty, error)

	// GetCounterparty retrieves a directory entry by ID
	GetCounterparty(ctx context.Context, id uuid.UUID) (*counterparty.Counterparty, error)

	// ListCounterparties retrieves the eligible parties for a source type
	ListCounterparties(ctx context.Context, sourceType shared.SourceType) ([]*counterparty.Counterparty, error)
}

// AdvisoryService accepts advisory broadcast requests and exposes their state
type AdvisoryService interface {
	// RequestBroadcast queues an advisory generation task with idempotency
	// support. Returns the pending (or previously created) advisory.
	RequestBroadcast(ctx context.Context, req *shared.AdvisoryRequest) (requestID string, existing bool, err error)

	// GetAdvisory retrieves an advisory by request ID
	// Returns nil if the advisory is not found
	GetAdvisory(ctx context.Context, requestID uuid.UUID) (*AdvisoryView, error)

	// ListAdvisories retrieves advisories newest first
	ListAdvisories(ctx context.Context, page, perPage int) ([]*AdvisoryView, error)
}

// AdvisoryView is the API-facing shape of an advisory task
type AdvisoryView struct {
	RequestID     uuid.UUID             `json:"request_id"`
	CommodityName string                `json:"commodity_name"`
	Region        string                `json:"region"`
	RequestedBy   string                `json:"requested_by"`
	Status        shared.AdvisoryStatus `json:"status"`
	Body          string                `json:"body,omitempty"`
	FailureReason string                `json:"failure_reason,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	ProcessedAt   *time.Time            `json:"processed_at,omitempty"`
}

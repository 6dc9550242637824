// Package wizard models the three-stage transaction entry flow: Initiation
// (category and date), Capture (identity, commodity, quantity, logistics)
// and Review (confirm computed totals). The ledger list view is the steady
// state on either side of a wizard pass.
package wizard

import (
	"errors"
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
)

// Commit validation errors. The prototype this replaces only ever guarded
// the counterparty name; for real record-keeping every required field is a
// hard error at commit.
var (
	ErrCounterpartyRequired  = errors.New("counterparty name is required")
	ErrCommodityRequired     = errors.New("commodity name is required")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrEffectiveDateRequired = errors.New("effective date is required")
	ErrLogisticsRequired     = errors.New("vehicle and driver details are required for sales")
)

// Draft is the mutable, not-yet-committed transaction under construction.
// Drafts are transient: they live in the wizard session store and are
// discarded on cancel or expiry, never persisted.
type Draft struct {
	Kind             shared.TransactionKind `json:"kind"`
	SourceType       shared.SourceType      `json:"source_type"`
	CounterpartyName string                 `json:"counterparty_name"`
	CommodityName    string                 `json:"commodity_name"`
	Grade            shared.Grade           `json:"grade"`
	Quantity         float64                `json:"quantity"`
	Unit             shared.Unit            `json:"unit"`
	EffectiveDate    time.Time              `json:"effective_date"`

	// Outbound logistics, only meaningful when Kind is SALES
	VehicleNumber string `json:"vehicle_number,omitempty"`
	DriverName    string `json:"driver_name,omitempty"`
	DriverContact string `json:"driver_contact,omitempty"`
}

// NewDraft seeds a draft for one wizard pass. The kind is fixed for the
// lifetime of the pass; source type, grade and unit start at their defaults.
func NewDraft(kind shared.TransactionKind) *Draft {
	return &Draft{
		Kind:       kind,
		SourceType: kind.DefaultSourceType(),
		Grade:      shared.GradeA,
		Unit:       shared.UnitKilogram,
	}
}

// ValidateForCommit applies the hard commit gate. A draft that passes is
// complete enough to become an immutable ledger record.
func (d *Draft) ValidateForCommit() error {
	if d.CounterpartyName == "" {
		return ErrCounterpartyRequired
	}
	if d.CommodityName == "" {
		return ErrCommodityRequired
	}
	if d.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if _, err := shared.ParseGrade(string(d.Grade)); err != nil {
		return err
	}
	if _, err := shared.ParseUnit(string(d.Unit)); err != nil {
		return err
	}
	if _, err := shared.ParseSourceType(string(d.SourceType)); err != nil {
		return err
	}
	if d.EffectiveDate.IsZero() {
		return ErrEffectiveDateRequired
	}
	if d.Kind == shared.KindSales {
		if d.VehicleNumber == "" || d.DriverName == "" || d.DriverContact == "" {
			return ErrLogisticsRequired
		}
	}
	return nil
}

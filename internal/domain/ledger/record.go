package ledger

import (
	"time"

	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Record is a committed, immutable procurement or sales transaction. The
// ledger exclusively owns records; nothing mutates one after commit, which
// is why Status only ever holds LOCKED.
type Record struct {
	ID               uuid.UUID                `json:"id" bson:"id"`
	Kind             shared.TransactionKind   `json:"kind" bson:"kind"`
	SourceType       shared.SourceType        `json:"source_type" bson:"source_type"`
	CounterpartyName string                   `json:"counterparty_name" bson:"counterparty_name"`
	CommodityName    string                   `json:"commodity_name" bson:"commodity_name"`
	Grade            shared.Grade             `json:"grade" bson:"grade"`
	Quantity         float64                  `json:"quantity" bson:"quantity"`
	Unit             shared.Unit              `json:"unit" bson:"unit"`
	EffectiveDate    time.Time                `json:"effective_date" bson:"effective_date"`
	VehicleNumber    string                   `json:"vehicle_number,omitempty" bson:"vehicle_number,omitempty"`
	DriverName       string                   `json:"driver_name,omitempty" bson:"driver_name,omitempty"`
	DriverContact    string                   `json:"driver_contact,omitempty" bson:"driver_contact,omitempty"`
	UnitPrice        float64                  `json:"unit_price" bson:"unit_price"`
	TotalAmount      float64                  `json:"total_amount" bson:"total_amount"`
	Status           shared.TransactionStatus `json:"status" bson:"status"`
	CorrelationID    string                   `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	CreatedAt        time.Time                `json:"created_at" bson:"created_at"`
}

package handler

// StartWizardRequest opens a new entry wizard pass
type StartWizardRequest struct {
	Kind string `json:"kind" binding:"required,oneof=PROCUREMENT SALES"`
}

// UpdateDraftRequest carries a partial draft mutation. Pointer fields
// distinguish "not sent" from "set to zero value".
type UpdateDraftRequest struct {
	SourceType       *string  `json:"source_type,omitempty"`
	CounterpartyName *string  `json:"counterparty_name,omitempty"`
	CommodityName    *string  `json:"commodity_name,omitempty"`
	Grade            *string  `json:"grade,omitempty"`
	Quantity         *float64 `json:"quantity,omitempty"`
	Unit             *string  `json:"unit,omitempty"`
	EffectiveDate    *string  `json:"effective_date,omitempty"` // RFC 3339 date, e.g. 2026-08-30
	VehicleNumber    *string  `json:"vehicle_number,omitempty"`
	DriverName       *string  `json:"driver_name,omitempty"`
	DriverContact    *string  `json:"driver_contact,omitempty"`
}

// WizardSessionResponse represents a wizard session in API responses
type WizardSessionResponse struct {
	SessionID         string        `json:"session_id"`
	Stage             string        `json:"stage"`
	Draft             DraftResponse `json:"draft"`
	UnitPrice         float64       `json:"unit_price"`
	TotalAmount       float64       `json:"total_amount"`
	CommittedRecordID string        `json:"committed_record_id,omitempty"`
	CreatedAt         string        `json:"created_at"`
	UpdatedAt         string        `json:"updated_at"`
}

// DraftResponse represents the in-flight draft in API responses
type DraftResponse struct {
	Kind             string  `json:"kind"`
	SourceType       string  `json:"source_type"`
	CounterpartyName string  `json:"counterparty_name,omitempty"`
	CommodityName    string  `json:"commodity_name,omitempty"`
	Grade            string  `json:"grade"`
	Quantity         float64 `json:"quantity"`
	Unit             string  `json:"unit"`
	EffectiveDate    string  `json:"effective_date,omitempty"`
	VehicleNumber    string  `json:"vehicle_number,omitempty"`
	DriverName       string  `json:"driver_name,omitempty"`
	DriverContact    string  `json:"driver_contact,omitempty"`
}

// TransactionResponse represents a committed ledger record in API responses
type TransactionResponse struct {
	ID               string  `json:"id"`
	Kind             string  `json:"kind"`
	SourceType       string  `json:"source_type"`
	CounterpartyName string  `json:"counterparty_name"`
	CommodityName    string  `json:"commodity_name"`
	Grade            string  `json:"grade"`
	Quantity         float64 `json:"quantity"`
	Unit             string  `json:"unit"`
	EffectiveDate    string  `json:"effective_date"`
	VehicleNumber    string  `json:"vehicle_number,omitempty"`
	DriverName       string  `json:"driver_name,omitempty"`
	DriverContact    string  `json:"driver_contact,omitempty"`
	UnitPrice        float64 `json:"unit_price"`
	TotalAmount      float64 `json:"total_amount"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
}

// TransactionListQuery binds the ledger view's filter and sort parameters
type TransactionListQuery struct {
	Kind          string `form:"kind" binding:"required,oneof=PROCUREMENT SALES procurement sales"`
	DateStart     string `form:"date_start"`
	DateEnd       string `form:"date_end"`
	CommodityName string `form:"commodity"`
	Grade         string `form:"grade"`
	SourceType    string `form:"source_type"`
	SortField     string `form:"sort_field"`
	SortOrder     string `form:"sort_order"`
}

// PublishPriceRequest publishes a commodity reference price
type PublishPriceRequest struct {
	CommodityName  string  `json:"commodity_name" binding:"required"`
	BasePricePerKg float64 `json:"base_price_per_kg" binding:"min=0"`
	UpdatedBy      string  `json:"updated_by" binding:"required"`
}

// CommodityPriceResponse represents a published price in API responses
type CommodityPriceResponse struct {
	CommodityName  string  `json:"commodity_name"`
	BasePricePerKg float64 `json:"base_price_per_kg"`
	LastUpdatedAt  string  `json:"last_updated_at"`
	UpdatedBy      string  `json:"updated_by"`
}

// UnitPricePreviewQuery binds the grade and unit of a price preview
type UnitPricePreviewQuery struct {
	Grade string `form:"grade,default=A" binding:"oneof=A B C a b c"`
	Unit  string `form:"unit,default=KILOGRAM" binding:"oneof=KILOGRAM QUINTAL kilogram quintal"`
}

// RegisterCounterpartyRequest adds a directory entry
type RegisterCounterpartyRequest struct {
	Name       string `json:"name" binding:"required"`
	SourceType string `json:"source_type" binding:"required,oneof=FARMER VENDOR AGGREGATOR UNION"`
	Village    string `json:"village,omitempty"`
	Contact    string `json:"contact,omitempty"`
}

// CounterpartyResponse represents a directory entry in API responses
type CounterpartyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SourceType string `json:"source_type"`
	Village    string `json:"village,omitempty"`
	Contact    string `json:"contact,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// RequestAdvisoryRequest queues an advisory broadcast task
type RequestAdvisoryRequest struct {
	CommodityName  string `json:"commodity_name" binding:"required"`
	Region         string `json:"region" binding:"required"`
	RequestedBy    string `json:"requested_by" binding:"required"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

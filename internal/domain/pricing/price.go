package pricing

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrEmptyCommodityName = errors.New("commodity name cannot be empty")
	ErrNegativeBasePrice  = errors.New("base price cannot be negative")
	ErrEmptyUpdatedBy     = errors.New("updated by cannot be empty")
)

// CommodityPrice is the authoritative reference price published centrally
// by the federation. One live record exists per commodity name.
type CommodityPrice struct {
	CommodityName  string    `json:"commodity_name"`
	BasePricePerKg float64   `json:"base_price_per_kg"` // Rupees per kilogram
	LastUpdatedAt  time.Time `json:"last_updated_at"`
	UpdatedBy      string    `json:"updated_by"`
}

// NewCommodityPrice validates and builds a price record for publication.
func NewCommodityPrice(commodityName string, basePricePerKg float64, updatedBy string) (*CommodityPrice, error) {
	if commodityName == "" {
		return nil, ErrEmptyCommodityName
	}
	if basePricePerKg < 0 {
		return nil, ErrNegativeBasePrice
	}
	if updatedBy == "" {
		return nil, ErrEmptyUpdatedBy
	}

	return &CommodityPrice{
		CommodityName:  commodityName,
		BasePricePerKg: basePricePerKg,
		LastUpdatedAt:  time.Now(),
		UpdatedBy:      updatedBy,
	}, nil
}

package pricing

import (
	"context"
)

// Repository manages published commodity price persistence
type Repository interface {
	// Upsert publishes a price, replacing any live record for the commodity
	Upsert(ctx context.Context, price *CommodityPrice) error
	GetByName(ctx context.Context, commodityName string) (*CommodityPrice, error)
	List(ctx context.Context) ([]*CommodityPrice, error)
}

// ErrPriceNotFound indicates no published price for a commodity
type ErrPriceNotFound struct {
	CommodityName string
}

func (e ErrPriceNotFound) Error() string {
	return "commodity price not found: " + e.CommodityName
}

// Is implements the errors.Is interface for ErrPriceNotFound
func (e ErrPriceNotFound) Is(target error) bool {
	t, ok := target.(ErrPriceNotFound)
	if !ok {
		return false
	}
	// An empty target commodity name matches any ErrPriceNotFound
	if t.CommodityName == "" {
		return true
	}
	return e.CommodityName == t.CommodityName
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
)

// PricingServiceImpl implements the PricingService interface
type PricingServiceImpl struct {
	priceRepo pricing.Repository
	logger    *slog.Logger
}

// NewPricingService creates a new pricing service
func NewPricingService(logger *slog.Logger, priceRepo pricing.Repository) PricingService {
	return &PricingServiceImpl{
		priceRepo: priceRepo,
		logger:    logger,
	}
}

// PublishPrice creates or replaces the live price for a commodity
func (s *PricingServiceImpl) PublishPrice(ctx context.Context, commodityName string, basePricePerKg float64, updatedBy string) (*pricing.CommodityPrice, error) {
	price, err := pricing.NewCommodityPrice(commodityName, basePricePerKg, updatedBy)
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.Upsert(ctx, price); err != nil {
		return nil, err
	}

	s.logger.Info("Commodity price published",
		"commodity", price.CommodityName,
		"base_price_per_kg", price.BasePricePerKg,
		"updated_by", price.UpdatedBy,
	)

	return price, nil
}

// GetPrice retrieves the live price for a commodity
func (s *PricingServiceImpl) GetPrice(ctx context.Context, commodityName string) (*pricing.CommodityPrice, error) {
	return s.priceRepo.GetByName(ctx, commodityName)
}

// ListPrices retrieves all published prices
func (s *PricingServiceImpl) ListPrices(ctx context.Context) ([]*pricing.CommodityPrice, error) {
	return s.priceRepo.List(ctx)
}

// PreviewUnitPrice computes the effective unit price for a commodity, grade
// and unit. An unpublished commodity previews at zero rather than erroring;
// only the commit gate treats it as a hard failure.
func (s *PricingServiceImpl) PreviewUnitPrice(ctx context.Context, commodityName string, grade shared.Grade, unit shared.Unit) (float64, error) {
	price, err := s.priceRepo.GetByName(ctx, commodityName)
	if err != nil {
		if errors.Is(err, pricing.ErrPriceNotFound{}) {
			return 0, nil
		}
		return 0, err
	}

	return pricing.UnitPrice(price.BasePricePerKg, grade, unit), nil
}

package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/agrifed-procurement-ledger/internal/api_gateway/service"
	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// CommodityHandler handles HTTP requests for the commodity price list
type CommodityHandler struct {
	pricingService service.PricingService
	logger         *slog.Logger
}

// NewCommodityHandler creates a new commodity price handler
func NewCommodityHandler(logger *slog.Logger, pricingService service.PricingService) *CommodityHandler {
	return &CommodityHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// Publish creates or replaces the live price for a commodity
func (h *CommodityHandler) Publish(c *gin.Context) {
	var req PublishPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	price, err := h.pricingService.PublishPrice(c.Request.Context(), req.CommodityName, req.BasePricePerKg, req.UpdatedBy)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrEmptyCommodityName),
			errors.Is(err, pricing.ErrNegativeBasePrice),
			errors.Is(err, pricing.ErrEmptyUpdatedBy):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to publish price", "commodity", req.CommodityName, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapPriceToResponse(price))
}

// List retrieves all published prices
func (h *CommodityHandler) List(c *gin.Context) {
	prices, err := h.pricingService.ListPrices(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list prices", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]CommodityPriceResponse, 0, len(prices))
	for _, price := range prices {
		responses = append(responses, mapPriceToResponse(price))
	}

	RespondOK(c, gin.H{"prices": responses})
}

// GetByName retrieves the live price for a commodity
func (h *CommodityHandler) GetByName(c *gin.Context) {
	name := c.Param("name")

	price, err := h.pricingService.GetPrice(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, pricing.ErrPriceNotFound{}) {
			RespondNotFound(c, "Commodity price not found")
			return
		}
		h.logger.Error("Failed to get price", "commodity", name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapPriceToResponse(price))
}

// PreviewUnitPrice computes the effective unit price for a commodity at a
// given grade and unit. Unpublished commodities preview at zero.
func (h *CommodityHandler) PreviewUnitPrice(c *gin.Context) {
	name := c.Param("name")

	var query UnitPricePreviewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Error("Invalid preview query", "error", err)
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	grade, err := shared.ParseGrade(query.Grade)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	unit, err := shared.ParseUnit(query.Unit)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	unitPrice, err := h.pricingService.PreviewUnitPrice(c.Request.Context(), name, grade, unit)
	if err != nil {
		h.logger.Error("Failed to preview unit price", "commodity", name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{
		"commodity_name": name,
		"grade":          string(grade),
		"unit":           string(unit),
		"unit_price":     unitPrice,
	})
}

// mapPriceToResponse maps a commodity price to its response DTO
func mapPriceToResponse(price *pricing.CommodityPrice) CommodityPriceResponse {
	return CommodityPriceResponse{
		CommodityName:  price.CommodityName,
		BasePricePerKg: price.BasePricePerKg,
		LastUpdatedAt:  price.LastUpdatedAt.Format(time.RFC3339),
		UpdatedBy:      price.UpdatedBy,
	}
}

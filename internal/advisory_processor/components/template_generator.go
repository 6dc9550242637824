package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agrifed-procurement-ledger/internal/advisory_processor/service"
	"github.com/agrifed-procurement-ledger/internal/domain/pricing"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
)

// TemplateGenerator renders advisory broadcasts from the published price
// list. It stands in for the external generative service behind the
// AdvisoryGenerator interface.
type TemplateGenerator struct {
	priceRepo pricing.Repository
	logger    *slog.Logger
}

func NewTemplateGenerator(logger *slog.Logger, priceRepo pricing.Repository) *TemplateGenerator {
	return &TemplateGenerator{
		priceRepo: priceRepo,
		logger:    logger,
	}
}

// Generate renders the broadcast body for a commodity in a region. A
// commodity with no published price propagates ErrPriceNotFound so the
// processing service can record the failure reason.
func (g *TemplateGenerator) Generate(ctx context.Context, request *shared.AdvisoryRequest) (string, error) {
	price, err := g.priceRepo.GetByName(ctx, request.CommodityName)
	if err != nil {
		return "", fmt.Errorf("failed to load price for %q: %w", request.CommodityName, err)
	}

	gradeA := pricing.UnitPrice(price.BasePricePerKg, shared.GradeA, shared.UnitKilogram)
	gradeB := pricing.UnitPrice(price.BasePricePerKg, shared.GradeB, shared.UnitKilogram)
	gradeC := pricing.UnitPrice(price.BasePricePerKg, shared.GradeC, shared.UnitKilogram)

	body := fmt.Sprintf(
		"Market advisory for %s, %s region. Federation reference price: Rs %.2f/kg. "+
			"Payable rates per kg: Grade A Rs %.2f, Grade B Rs %.2f, Grade C Rs %.2f. "+
			"Grade D produce is not payable. Prices published %s by %s.",
		request.CommodityName,
		request.Region,
		price.BasePricePerKg,
		gradeA,
		gradeB,
		gradeC,
		price.LastUpdatedAt.Format("2006-01-02"),
		price.UpdatedBy,
	)

	g.logger.Debug("Rendered advisory body",
		"request_id", request.RequestID.String(),
		"commodity", request.CommodityName,
	)

	return body, nil
}

var _ service.AdvisoryGenerator = (*TemplateGenerator)(nil)

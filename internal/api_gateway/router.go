package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/agrifed-procurement-ledger/internal/api_gateway/handler"
	"github.com/agrifed-procurement-ledger/internal/api_gateway/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	transactionHandler *handler.TransactionHandler,
	wizardHandler *handler.WizardHandler,
	commodityHandler *handler.CommodityHandler,
	counterpartyHandler *handler.CounterpartyHandler,
	advisoryHandler *handler.AdvisoryHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Committed ledger view
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.GET("/:id", transactionHandler.GetByID)
		}

		// Entry wizard sessions
		wizards := v1.Group("/wizard-sessions")
		{
			wizards.POST("", wizardHandler.Start)
			wizards.GET("/:id", wizardHandler.Get)
			wizards.PATCH("/:id/draft", wizardHandler.UpdateDraft)
			wizards.POST("/:id/advance", wizardHandler.Advance)
			wizards.POST("/:id/back", wizardHandler.Back)
			wizards.POST("/:id/commit", wizardHandler.Commit)
			wizards.DELETE("/:id", wizardHandler.Cancel)
		}

		// Commodity price list
		prices := v1.Group("/commodity-prices")
		{
			prices.PUT("", commodityHandler.Publish)
			prices.GET("", commodityHandler.List)
			prices.GET("/:name", commodityHandler.GetByName)
			prices.GET("/:name/unit-price", commodityHandler.PreviewUnitPrice)
		}

		// Counterparty directory
		counterparties := v1.Group("/counterparties")
		{
			counterparties.POST("", counterpartyHandler.Register)
			counterparties.GET("", counterpartyHandler.List)
			counterparties.GET("/:id", counterpartyHandler.GetByID)
		}

		// Advisory broadcast tasks
		advisories := v1.Group("/advisories")
		{
			advisories.POST("", advisoryHandler.Request)
			advisories.GET("", advisoryHandler.List)
			advisories.GET("/:id", advisoryHandler.GetByID)
		}

		// Reports
		v1.GET("/reports/procurement-summary", transactionHandler.ProcurementSummary)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}

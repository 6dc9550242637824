package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/agrifed-procurement-ledger/internal/api_gateway/middleware"
	"github.com/agrifed-procurement-ledger/internal/api_gateway/service"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdvisoryHandler handles HTTP requests for advisory broadcast tasks
type AdvisoryHandler struct {
	advisoryService service.AdvisoryService
	logger          *slog.Logger
}

// NewAdvisoryHandler creates a new advisory handler
func NewAdvisoryHandler(logger *slog.Logger, advisoryService service.AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{
		advisoryService: advisoryService,
		logger:          logger,
	}
}

// Request queues an advisory generation task with idempotency support
func (h *AdvisoryHandler) Request(c *gin.Context) {
	var req RequestAdvisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.New().String()
	}

	advisoryRequest := &shared.AdvisoryRequest{
		RequestID:      uuid.New(),
		CommodityName:  req.CommodityName,
		Region:         req.Region,
		RequestedBy:    req.RequestedBy,
		IdempotencyKey: req.IdempotencyKey,
		CorrelationID:  middleware.GetCorrelationID(c),
		Timestamp:      time.Now(),
	}

	requestID, existing, err := h.advisoryService.RequestBroadcast(c.Request.Context(), advisoryRequest)
	if err != nil {
		if errors.Is(err, shared.ErrEmptyCommodityName) || errors.Is(err, shared.ErrEmptyRegion) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to request advisory broadcast", "error", err)
		RespondInternalError(c)
		return
	}

	if existing {
		RespondOK(c, gin.H{"request_id": requestID})
		return
	}

	RespondAccepted(c, gin.H{
		"request_id": requestID,
		"status":     string(shared.AdvisoryStatusPending),
	})
}

// GetByID retrieves an advisory task by request ID, returns 404 if not found
func (h *AdvisoryHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid advisory request ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid advisory request ID")
		return
	}

	view, err := h.advisoryService.GetAdvisory(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get advisory", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if view == nil {
		RespondNotFound(c, "Advisory not found")
		return
	}

	RespondOK(c, view)
}

// List retrieves advisory tasks newest first
func (h *AdvisoryHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	views, err := h.advisoryService.ListAdvisories(c.Request.Context(), pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to list advisories", "error", err)
		RespondInternalError(c)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"advisories": views})
}

package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/agrifed-procurement-ledger/internal/api_gateway/service"
	"github.com/agrifed-procurement-ledger/internal/domain/counterparty"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CounterpartyHandler handles HTTP requests for the counterparty directory
type CounterpartyHandler struct {
	counterpartyService service.CounterpartyService
	logger              *slog.Logger
}

// NewCounterpartyHandler creates a new counterparty directory handler
func NewCounterpartyHandler(logger *slog.Logger, counterpartyService service.CounterpartyService) *CounterpartyHandler {
	return &CounterpartyHandler{
		counterpartyService: counterpartyService,
		logger:              logger,
	}
}

// Register adds a new directory entry
func (h *CounterpartyHandler) Register(c *gin.Context) {
	var req RegisterCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sourceType, err := shared.ParseSourceType(req.SourceType)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	cp, err := h.counterpartyService.RegisterCounterparty(c.Request.Context(), req.Name, sourceType, req.Village, req.Contact)
	if err != nil {
		if errors.Is(err, counterparty.ErrEmptyName) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to register counterparty", "name", req.Name, "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapCounterpartyToResponse(cp))
}

// GetByID retrieves a directory entry by ID
func (h *CounterpartyHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid counterparty ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid counterparty ID")
		return
	}

	cp, err := h.counterpartyService.GetCounterparty(c.Request.Context(), id)
	if err != nil {
		var errNotFound counterparty.ErrCounterpartyNotFound
		if errors.As(err, &errNotFound) {
			RespondNotFound(c, "Counterparty not found")
			return
		}
		h.logger.Error("Failed to get counterparty", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapCounterpartyToResponse(cp))
}

// List retrieves the eligible parties for a source type
func (h *CounterpartyHandler) List(c *gin.Context) {
	sourceType, err := shared.ParseSourceType(c.Query("source_type"))
	if err != nil {
		RespondBadRequest(c, "Invalid or missing source type")
		return
	}

	parties, err := h.counterpartyService.ListCounterparties(c.Request.Context(), sourceType)
	if err != nil {
		h.logger.Error("Failed to list counterparties", "source_type", string(sourceType), "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]CounterpartyResponse, 0, len(parties))
	for _, cp := range parties {
		responses = append(responses, mapCounterpartyToResponse(cp))
	}

	RespondOK(c, gin.H{"counterparties": responses})
}

// mapCounterpartyToResponse maps a directory entry to its response DTO
func mapCounterpartyToResponse(cp *counterparty.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		ID:         cp.ID.String(),
		Name:       cp.Name,
		SourceType: string(cp.SourceType),
		Village:    cp.Village,
		Contact:    cp.Contact,
		CreatedAt:  cp.CreatedAt.Format(time.RFC3339),
	}
}

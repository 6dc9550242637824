package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/agrifed-procurement-ledger/internal/api_gateway/middleware"
	"github.com/agrifed-procurement-ledger/internal/api_gateway/service"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/agrifed-procurement-ledger/internal/domain/wizard"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WizardHandler handles HTTP requests for the three-stage entry wizard
type WizardHandler struct {
	wizardService service.WizardService
	logger        *slog.Logger
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(logger *slog.Logger, wizardService service.WizardService) *WizardHandler {
	return &WizardHandler{
		wizardService: wizardService,
		logger:        logger,
	}
}

// Start opens a new entry wizard session
func (h *WizardHandler) Start(c *gin.Context) {
	var req StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	kind, err := shared.ParseTransactionKind(req.Kind)
	if err != nil {
		RespondBadRequest(c, "Invalid transaction kind")
		return
	}

	session, err := h.wizardService.Start(c.Request.Context(), kind)
	if err != nil {
		h.logger.Error("Failed to start wizard session", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapSessionToResponse(session))
}

// Get retrieves a session with a fresh price preview
func (h *WizardHandler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.wizardService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondSessionError(c, id, err)
		return
	}

	RespondOK(c, mapSessionToResponse(session))
}

// UpdateDraft applies a partial draft mutation to a session
func (h *WizardHandler) UpdateDraft(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	update := service.DraftUpdate{
		SourceType:       req.SourceType,
		CounterpartyName: req.CounterpartyName,
		CommodityName:    req.CommodityName,
		Grade:            req.Grade,
		Quantity:         req.Quantity,
		Unit:             req.Unit,
		VehicleNumber:    req.VehicleNumber,
		DriverName:       req.DriverName,
		DriverContact:    req.DriverContact,
	}

	if req.EffectiveDate != nil {
		date, err := time.Parse(effectiveDateLayout, *req.EffectiveDate)
		if err != nil {
			RespondBadRequest(c, "Invalid effective date, expected YYYY-MM-DD")
			return
		}
		update.EffectiveDate = &date
	}

	session, err := h.wizardService.UpdateDraft(c.Request.Context(), id, update)
	if err != nil {
		h.respondSessionError(c, id, err)
		return
	}

	RespondOK(c, mapSessionToResponse(session))
}

// Advance moves the session one stage forward
func (h *WizardHandler) Advance(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.wizardService.Advance(c.Request.Context(), id)
	if err != nil {
		h.respondSessionError(c, id, err)
		return
	}

	RespondOK(c, mapSessionToResponse(session))
}

// Back moves the session one stage backward
func (h *WizardHandler) Back(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.wizardService.Back(c.Request.Context(), id)
	if err != nil {
		h.respondSessionError(c, id, err)
		return
	}

	RespondOK(c, mapSessionToResponse(session))
}

// Commit turns the session's draft into an immutable ledger record
func (h *WizardHandler) Commit(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	record, err := h.wizardService.Commit(c.Request.Context(), id, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondSessionError(c, id, err)
		return
	}

	RespondCreated(c, mapRecordToResponse(record))
}

// Cancel discards a session and its draft
func (h *WizardHandler) Cancel(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.wizardService.Cancel(c.Request.Context(), id); err != nil {
		h.respondSessionError(c, id, err)
		return
	}

	RespondNoContent(c)
}

func (h *WizardHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid session ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// respondSessionError maps wizard and commit errors to HTTP statuses. Stage
// misuse and incomplete drafts are 422s: the request was well formed, the
// session state just doesn't allow it.
func (h *WizardHandler) respondSessionError(c *gin.Context, id uuid.UUID, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		RespondNotFound(c, "Wizard session not found")
	case errors.Is(err, service.ErrUnknownCommodity):
		RespondUnprocessable(c, err.Error())
	case errors.Is(err, wizard.ErrAlreadyAtReview),
		errors.Is(err, wizard.ErrNotAtReview),
		errors.Is(err, wizard.ErrAtInitiation),
		errors.Is(err, wizard.ErrCaptureIncomplete),
		errors.Is(err, wizard.ErrCounterpartyRequired),
		errors.Is(err, wizard.ErrCommodityRequired),
		errors.Is(err, wizard.ErrInvalidQuantity),
		errors.Is(err, wizard.ErrEffectiveDateRequired),
		errors.Is(err, wizard.ErrLogisticsRequired):
		RespondUnprocessable(c, err.Error())
	case errors.Is(err, shared.ErrInvalidGrade),
		errors.Is(err, shared.ErrInvalidUnit),
		errors.Is(err, shared.ErrInvalidSourceType):
		RespondBadRequest(c, err.Error())
	default:
		h.logger.Error("Wizard operation failed", "session_id", id.String(), "error", err)
		RespondInternalError(c)
	}
}

// mapSessionToResponse maps a wizard session to its response DTO
func mapSessionToResponse(session *service.WizardSession) WizardSessionResponse {
	draft := session.Wizard.Draft

	response := WizardSessionResponse{
		SessionID: session.ID.String(),
		Stage:     string(session.Wizard.Stage),
		Draft: DraftResponse{
			Kind:             string(draft.Kind),
			SourceType:       string(draft.SourceType),
			CounterpartyName: draft.CounterpartyName,
			CommodityName:    draft.CommodityName,
			Grade:            string(draft.Grade),
			Quantity:         draft.Quantity,
			Unit:             string(draft.Unit),
			VehicleNumber:    draft.VehicleNumber,
			DriverName:       draft.DriverName,
			DriverContact:    draft.DriverContact,
		},
		UnitPrice:   session.UnitPrice,
		TotalAmount: session.TotalAmount,
		CreatedAt:   session.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   session.UpdatedAt.Format(time.RFC3339),
	}

	if !draft.EffectiveDate.IsZero() {
		response.Draft.EffectiveDate = draft.EffectiveDate.Format(effectiveDateLayout)
	}
	if session.CommittedRecordID != nil {
		response.CommittedRecordID = session.CommittedRecordID.String()
	}

	return response
}

package handler

import (
	"log/slog"
	"time"

	"github.com/agrifed-procurement-ledger/internal/api_gateway/service"
	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles HTTP requests for the committed ledger view
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// List projects one kind partition of the ledger through the requested
// filter criteria and sort spec
func (h *TransactionHandler) List(c *gin.Context) {
	var query TransactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Error("Invalid list query", "error", err)
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	kind, err := shared.ParseTransactionKind(query.Kind)
	if err != nil {
		RespondBadRequest(c, "Invalid transaction kind")
		return
	}

	criteria, err := buildFilterCriteria(query)
	if err != nil {
		h.logger.Error("Invalid filter criteria", "error", err)
		RespondBadRequest(c, err.Error())
		return
	}

	spec := ledger.DefaultSortSpec()
	if query.SortField != "" {
		field, err := ledger.ParseSortField(query.SortField)
		if err != nil {
			RespondBadRequest(c, "Invalid sort field")
			return
		}
		spec.Field = field
	}
	if query.SortOrder != "" {
		order, err := ledger.ParseSortOrder(query.SortOrder)
		if err != nil {
			RespondBadRequest(c, "Invalid sort order")
			return
		}
		spec.Order = order
	}

	records, err := h.transactionService.ListTransactions(c.Request.Context(), kind, criteria, spec)
	if err != nil {
		h.logger.Error("Failed to list transactions", "kind", query.Kind, "error", err)
		RespondInternalError(c)
		return
	}

	transactions := make([]TransactionResponse, 0, len(records))
	for _, record := range records {
		transactions = append(transactions, mapRecordToResponse(record))
	}

	RespondOK(c, gin.H{"transactions": transactions, "count": len(transactions)})
}

// GetByID retrieves a committed record by its ID, returns 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid record ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid record ID")
		return
	}

	record, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get transaction", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if record == nil {
		RespondNotFound(c, "Transaction not found")
		return
	}

	RespondOK(c, mapRecordToResponse(record))
}

// ProcurementSummary returns the per-commodity rollup of the procurement partition
func (h *TransactionHandler) ProcurementSummary(c *gin.Context) {
	summary, err := h.transactionService.ProcurementSummary(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build procurement summary", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, summary)
}

// effectiveDateLayout is the wire format of effective dates
const effectiveDateLayout = "2006-01-02"

func buildFilterCriteria(query TransactionListQuery) (ledger.FilterCriteria, error) {
	criteria := ledger.FilterCriteria{
		CommodityName: query.CommodityName,
		Grade:         query.Grade,
		SourceType:    query.SourceType,
	}

	if query.DateStart != "" {
		start, err := time.Parse(effectiveDateLayout, query.DateStart)
		if err != nil {
			return criteria, err
		}
		criteria.DateRangeStart = &start
	}
	if query.DateEnd != "" {
		end, err := time.Parse(effectiveDateLayout, query.DateEnd)
		if err != nil {
			return criteria, err
		}
		// Bound is inclusive of the whole end day
		end = end.Add(24*time.Hour - time.Nanosecond)
		criteria.DateRangeEnd = &end
	}

	return criteria, nil
}

// mapRecordToResponse maps a ledger record to a transaction response DTO
func mapRecordToResponse(record *ledger.Record) TransactionResponse {
	return TransactionResponse{
		ID:               record.ID.String(),
		Kind:             string(record.Kind),
		SourceType:       string(record.SourceType),
		CounterpartyName: record.CounterpartyName,
		CommodityName:    record.CommodityName,
		Grade:            string(record.Grade),
		Quantity:         record.Quantity,
		Unit:             string(record.Unit),
		EffectiveDate:    record.EffectiveDate.Format(effectiveDateLayout),
		VehicleNumber:    record.VehicleNumber,
		DriverName:       record.DriverName,
		DriverContact:    record.DriverContact,
		UnitPrice:        record.UnitPrice,
		TotalAmount:      record.TotalAmount,
		Status:           string(record.Status),
		CreatedAt:        record.CreatedAt.Format(time.RFC3339),
	}
}

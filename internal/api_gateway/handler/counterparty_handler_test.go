package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/agrifed-procurement-ledger/internal/api_gateway/service"
	"github.com/agrifed-procurement-ledger/internal/domain/counterparty"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCounterpartyService struct {
	mock.Mock
}

func (m *MockCounterpartyService) RegisterCounterparty(ctx context.Context, name string, sourceType shared.SourceType, village, contact string) (*counterparty.Counterparty, error) {
	args := m.Called(ctx, name, sourceType, village, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*counterparty.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) GetCounterparty(ctx context.Context, id uuid.UUID) (*counterparty.Counterparty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*counterparty.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) ListCounterparties(ctx context.Context, sourceType shared.SourceType) ([]*counterparty.Counterparty, error) {
	args := m.Called(ctx, sourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*counterparty.Counterparty), args.Error(1)
}

func TestCounterpartyHandler_Register(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCounterpartyService)
		handler := NewCounterpartyHandler(logger, mockService)

		cp := &counterparty.Counterparty{
			ID:         uuid.New(),
			Name:       "Abebe Bekele",
			SourceType: shared.SourceTypeFarmer,
			Village:    "Holeta",
			Contact:    "0911-000000",
			CreatedAt:  time.Now(),
		}
		mockService.On("RegisterCounterparty", mock.Anything, "Abebe Bekele", shared.SourceTypeFarmer, "Holeta", "0911-000000").
			Return(cp, nil)

		router := setupTestRouter()
		router.POST("/counterparties", handler.Register)

		jsonBody, _ := json.Marshal(RegisterCounterpartyRequest{
			Name:       "Abebe Bekele",
			SourceType: "FARMER",
			Village:    "Holeta",
			Contact:    "0911-000000",
		})
		req, _ := http.NewRequest(http.MethodPost, "/counterparties", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var response Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

		var body CounterpartyResponse
		dataBytes, _ := json.Marshal(response.Data)
		require.NoError(t, json.Unmarshal(dataBytes, &body))
		assert.Equal(t, cp.ID.String(), body.ID)
		assert.Equal(t, "FARMER", body.SourceType)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidSourceType", func(t *testing.T) {
		mockService := new(MockCounterpartyService)
		handler := NewCounterpartyHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/counterparties", handler.Register)

		req, _ := http.NewRequest(http.MethodPost, "/counterparties", bytes.NewBufferString(`{"name":"X","source_type":"BROKER"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCounterpartyHandler_GetByID(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockCounterpartyService)
		handler := NewCounterpartyHandler(logger, mockService)

		id := uuid.New()
		mockService.On("GetCounterparty", mock.Anything, id).
			Return(nil, counterparty.ErrCounterpartyNotFound{ID: id})

		router := setupTestRouter()
		router.GET("/counterparties/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/counterparties/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidUUID", func(t *testing.T) {
		mockService := new(MockCounterpartyService)
		handler := NewCounterpartyHandler(logger, mockService)

		router := setupTestRouter()
		router.GET("/counterparties/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/counterparties/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCounterpartyHandler_List(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCounterpartyService)
		handler := NewCounterpartyHandler(logger, mockService)

		parties := []*counterparty.Counterparty{
			{ID: uuid.New(), Name: "Abebe Bekele", SourceType: shared.SourceTypeFarmer, CreatedAt: time.Now()},
		}
		mockService.On("ListCounterparties", mock.Anything, shared.SourceTypeFarmer).Return(parties, nil)

		router := setupTestRouter()
		router.GET("/counterparties", handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/counterparties?source_type=FARMER", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		data := response.Data.(map[string]interface{})
		assert.Len(t, data["counterparties"], 1)
		mockService.AssertExpectations(t)
	})

	t.Run("MissingSourceType", func(t *testing.T) {
		mockService := new(MockCounterpartyService)
		handler := NewCounterpartyHandler(logger, mockService)

		router := setupTestRouter()
		router.GET("/counterparties", handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/counterparties", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})
}

var _ service.CounterpartyService = (*MockCounterpartyService)(nil)

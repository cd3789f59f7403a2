package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/whitewolfwitcher/hotzy-orders/internal/auth"
	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
	"github.com/whitewolfwitcher/hotzy-orders/internal/services"
	"github.com/whitewolfwitcher/hotzy-orders/internal/storage"
)

type mockOrderService struct {
	CreateFunc  func(ctx context.Context, req *models.CreateOrderRequest) (*services.CreateDraftResult, error)
	GetFunc     func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ArtworkFunc func(ctx context.Context, id uuid.UUID, uploadToken, artworkPath string) error
}

func (m *mockOrderService) CreateDraft(ctx context.Context, req *models.CreateOrderRequest) (*services.CreateDraftResult, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &services.CreateDraftResult{OrderID: uuid.New(), UploadToken: "tok"}, nil
}

func (m *mockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, storage.ErrOrderNotFound
}

func (m *mockOrderService) AttachArtwork(ctx context.Context, id uuid.UUID, uploadToken, artworkPath string) error {
	if m.ArtworkFunc != nil {
		return m.ArtworkFunc(ctx, id, uploadToken, artworkPath)
	}
	return nil
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    *mockOrderService
		expectedStatus int
	}{
		{
			name: "draft created",
			body: `{"cupType":"hotzy","currency":"CAD"}`,
			mockService: &mockOrderService{
				CreateFunc: func(ctx context.Context, req *models.CreateOrderRequest) (*services.CreateDraftResult, error) {
					return &services.CreateDraftResult{OrderID: orderID, UploadToken: "order.123.sig"}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid cup type",
			body: `{"cupType":"mug","currency":"CAD"}`,
			mockService: &mockOrderService{
				CreateFunc: func(ctx context.Context, req *models.CreateOrderRequest) (*services.CreateDraftResult, error) {
					return nil, services.ErrInvalidCupType
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid currency",
			body: `{"cupType":"hotzy","currency":"EUR"}`,
			mockService: &mockOrderService{
				CreateFunc: func(ctx context.Context, req *models.CreateOrderRequest) (*services.CreateDraftResult, error) {
					return nil, services.ErrInvalidCurrency
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "amount currency mismatch",
			body: `{"cupType":"hotzy","currency":"CAD","amount_usd":15.13}`,
			mockService: &mockOrderService{
				CreateFunc: func(ctx context.Context, req *models.CreateOrderRequest) (*services.CreateDraftResult, error) {
					return nil, services.ErrAmountCurrencyMismatch
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"cupType":`,
			mockService:    &mockOrderService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "persistence failure",
			body: `{"cupType":"hotzy","currency":"CAD"}`,
			mockService: &mockOrderService{
				CreateFunc: func(ctx context.Context, req *models.CreateOrderRequest) (*services.CreateDraftResult, error) {
					return nil, errors.New("db error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := NewOrderHandler(tt.mockService)
			err := handler.CreateOrder(c)

			if tt.expectedStatus < 400 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if rec.Code != tt.expectedStatus {
					t.Fatalf("status = %d, want %d", rec.Code, tt.expectedStatus)
				}

				var resp models.CreateOrderResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if !resp.OK || resp.OrderID != orderID.String() || resp.OrderUploadToken == "" {
					t.Errorf("response = %+v, want ok with id and token", resp)
				}
			} else {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if he, ok := err.(*echo.HTTPError); ok {
					if he.Code != tt.expectedStatus {
						t.Fatalf("status = %d, want %d", he.Code, tt.expectedStatus)
					}
				}
			}
		})
	}
}

func TestOrderHandler_GetOrder(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		paramID        string
		mockService    *mockOrderService
		expectedStatus int
	}{
		{
			name:    "found",
			paramID: orderID.String(),
			mockService: &mockOrderService{
				GetFunc: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
					return &models.Order{
						ID:       id,
						Status:   models.OrderStatusDraft,
						CupType:  models.CupTypeHotzy,
						Currency: models.CurrencyCAD,
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			paramID:        orderID.String(),
			mockService:    &mockOrderService{},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			paramID:        "not-a-uuid",
			mockService:    &mockOrderService{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/orders/"+tt.paramID, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.paramID)

			handler := NewOrderHandler(tt.mockService)
			err := handler.GetOrder(c)

			if tt.expectedStatus < 400 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if rec.Code != tt.expectedStatus {
					t.Fatalf("status = %d, want %d", rec.Code, tt.expectedStatus)
				}
			} else {
				he, ok := err.(*echo.HTTPError)
				if !ok {
					t.Fatalf("expected *echo.HTTPError, got %v", err)
				}
				if he.Code != tt.expectedStatus {
					t.Fatalf("status = %d, want %d", he.Code, tt.expectedStatus)
				}
			}
		})
	}
}

func TestOrderHandler_UploadArtwork(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		token          string
		body           string
		mockService    *mockOrderService
		expectedStatus int
	}{
		{
			name:  "authorized upload",
			token: "valid-token",
			body:  `{"artwork_path":"artwork/design.png"}`,
			mockService: &mockOrderService{
				ArtworkFunc: func(ctx context.Context, id uuid.UUID, uploadToken, artworkPath string) error {
					if uploadToken != "valid-token" {
						t.Errorf("token = %q, want valid-token", uploadToken)
					}
					return nil
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "rejected token",
			token: "bad-token",
			body:  `{"artwork_path":"artwork/design.png"}`,
			mockService: &mockOrderService{
				ArtworkFunc: func(ctx context.Context, id uuid.UUID, uploadToken, artworkPath string) error {
					return services.ErrInvalidUploadToken
				},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:  "empty artwork path",
			token: "valid-token",
			body:  `{}`,
			mockService: &mockOrderService{
				ArtworkFunc: func(ctx context.Context, id uuid.UUID, uploadToken, artworkPath string) error {
					return services.ErrEmptyArtworkPath
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/artwork", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			req.Header.Set(auth.UploadTokenHeader, tt.token)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(orderID.String())

			handler := NewOrderHandler(tt.mockService)
			err := handler.UploadArtwork(c)

			if tt.expectedStatus < 400 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if rec.Code != tt.expectedStatus {
					t.Fatalf("status = %d, want %d", rec.Code, tt.expectedStatus)
				}
			} else {
				he, ok := err.(*echo.HTTPError)
				if !ok {
					t.Fatalf("expected *echo.HTTPError, got %v", err)
				}
				if he.Code != tt.expectedStatus {
					t.Fatalf("status = %d, want %d", he.Code, tt.expectedStatus)
				}
			}
		})
	}
}

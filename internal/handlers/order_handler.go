package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/whitewolfwitcher/hotzy-orders/internal/auth"
	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
	"github.com/whitewolfwitcher/hotzy-orders/internal/services"
	"github.com/whitewolfwitcher/hotzy-orders/internal/storage"
)

// OrderHandler обрабатывает запросы, связанные с заказами.
type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder обрабатывает POST /api/orders.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.orderService.CreateDraft(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCupType):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid cup type")
		case errors.Is(err, services.ErrInvalidCurrency):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid currency")
		case errors.Is(err, services.ErrAmountCurrencyMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, "amount does not match currency")
		case errors.Is(err, services.ErrNegativeAmount):
			return echo.NewHTTPError(http.StatusBadRequest, "amount must be non-negative")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, models.CreateOrderResponse{
		OK:               true,
		OrderID:          result.OrderID.String(),
		OrderUploadToken: result.UploadToken,
	})
}

// GetOrder обрабатывает GET /api/orders/:id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, mapOrderToResponse(order))
}

// UploadArtwork обрабатывает POST /api/orders/:id/artwork.
// Доступ охраняется токеном загрузки; любая причина отказа токена
// выглядит снаружи одинаково.
func (h *OrderHandler) UploadArtwork(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req models.UploadArtworkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	uploadToken := auth.ExtractUploadToken(c)
	err = h.orderService.AttachArtwork(c.Request().Context(), id, uploadToken, req.ArtworkPath)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUploadToken):
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, services.ErrEmptyArtworkPath):
			return echo.NewHTTPError(http.StatusBadRequest, "empty artwork path")
		case errors.Is(err, storage.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// mapOrderToResponse преобразует domain модель заказа в DTO для HTTP-ответа.
func mapOrderToResponse(order *models.Order) *models.OrderResponse {
	var amountPtr *float64
	if order.Amount != nil {
		val, _ := order.Amount.Float64()
		amountPtr = &val
	}

	return &models.OrderResponse{
		ID:          order.ID.String(),
		Status:      string(order.Status),
		CupType:     string(order.CupType),
		Currency:    string(order.Currency),
		Amount:      amountPtr,
		ArtworkPath: order.ArtworkPath,
		PdfPath:     order.PdfPath,
		CreatedAt:   order.CreatedAt.Format(time.RFC3339),
	}
}

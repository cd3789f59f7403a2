package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/whitewolfwitcher/hotzy-orders/internal/auth"
	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
	"github.com/whitewolfwitcher/hotzy-orders/internal/services"
)

// WebhookHandler принимает внешнее подтверждение оплаты.
type WebhookHandler struct {
	lifecycle services.OrderLifecycle
	secret    string
}

func NewWebhookHandler(lifecycle services.OrderLifecycle, secret string) *WebhookHandler {
	return &WebhookHandler{lifecycle: lifecycle, secret: secret}
}

// PaymentConfirmed обрабатывает POST /api/webhooks/payment.
// Подпись проверяется над сырым телом до разбора JSON.
func (h *WebhookHandler) PaymentConfirmed(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read body")
	}

	signature := c.Request().Header.Get(auth.WebhookSignatureHeader)
	if !auth.VerifyWebhookSignature(body, signature, h.secret) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req models.PaymentWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	if _, err := h.lifecycle.ConfirmPayment(c.Request().Context(), id); err != nil {
		return mapFulfilmentError(err)
	}

	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

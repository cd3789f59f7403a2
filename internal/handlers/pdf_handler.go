package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
	"github.com/whitewolfwitcher/hotzy-orders/internal/renderer"
	"github.com/whitewolfwitcher/hotzy-orders/internal/services"
	"github.com/whitewolfwitcher/hotzy-orders/internal/storage"
)

// PDFHandler обрабатывает внутренний триггер генерации PDF.
// Авторизация по служебному токену выполняется middleware до хендлера.
type PDFHandler struct {
	lifecycle services.OrderLifecycle
}

func NewPDFHandler(lifecycle services.OrderLifecycle) *PDFHandler {
	return &PDFHandler{lifecycle: lifecycle}
}

// GeneratePDF обрабатывает POST /api/internal/orders/:id/pdf.
func (h *PDFHandler) GeneratePDF(c echo.Context) error {
	rawID := c.Param("id")
	if rawID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order id")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	pdfPath, err := h.lifecycle.Fulfil(c.Request().Context(), id)
	if err != nil {
		return mapFulfilmentError(err)
	}

	return c.JSON(http.StatusOK, models.GeneratePDFResponse{
		OK:      true,
		PdfPath: pdfPath,
	})
}

// mapFulfilmentError переводит ошибки конвейера исполнения в HTTP-ответ.
// Статус и сообщение сервиса генерации пробрасываются как есть.
func mapFulfilmentError(err error) error {
	var re *renderer.RenderError
	switch {
	case errors.Is(err, storage.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	case errors.As(err, &re):
		return echo.NewHTTPError(re.StatusCode, re.Message)
	case errors.Is(err, services.ErrMailerNotConfigured):
		return echo.NewHTTPError(http.StatusInternalServerError, "email is not configured")
	case errors.Is(err, services.ErrEmailSendFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, services.ErrEmailSendFailed.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

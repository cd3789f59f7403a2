package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/whitewolfwitcher/hotzy-orders/internal/mailer"
	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
)

var (
	// ErrMailerNotConfigured возвращается, когда ключ API или адреса
	// не заданы: попытка доставки в этом случае не выполняется.
	ErrMailerNotConfigured = errors.New("mailer is not configured")
	// ErrEmailSendFailed - единый ответ на любую ошибку доставки,
	// детали транспорта остаются в логах.
	ErrEmailSendFailed = errors.New("Failed to send email")
)

// NotifyService определяет интерфейс отправки подтверждений заказа.
type NotifyService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order, pdfPath string) error
}

// NotifyServiceImpl реализует NotifyService. Доставка выполняется
// ровно один раз за вызов, ретраи - ответственность вызывающего.
type NotifyServiceImpl struct {
	client mailer.Client
	apiKey string
	from   string
	to     string
	logger *zap.SugaredLogger
}

// NewNotifyService создаёт новый диспетчер уведомлений.
func NewNotifyService(client mailer.Client, apiKey, from, to string, logger *zap.SugaredLogger) *NotifyServiceImpl {
	return &NotifyServiceImpl{
		client: client,
		apiKey: apiKey,
		from:   from,
		to:     to,
		logger: logger,
	}
}

// SendOrderConfirmation составляет и отправляет письмо о подтверждённом
// заказе со ссылкой на производственный PDF.
func (s *NotifyServiceImpl) SendOrderConfirmation(ctx context.Context, order *models.Order, pdfPath string) error {
	if s.apiKey == "" || s.from == "" || s.to == "" {
		return ErrMailerNotConfigured
	}

	msg := mailer.Message{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("Hotzy order %s confirmed", order.ID),
		HTML:    composeBody(order, pdfPath),
	}

	if err := s.client.Send(ctx, msg); err != nil {
		// Текст ошибки транспорта наружу не уходит.
		s.logger.Errorw("email delivery failed", "order_id", order.ID, "error", err)
		return ErrEmailSendFailed
	}

	s.logger.Infow("confirmation email sent", "order_id", order.ID)
	return nil
}

// composeBody собирает тело письма фиксированной формы.
func composeBody(order *models.Order, pdfPath string) string {
	return fmt.Sprintf(
		"<h2>New Hotzy order</h2>"+
			"<p>Order: %s</p>"+
			"<p>Cup type: %s</p>"+
			"<p>Amount: %s</p>"+
			"<p>Download the print-ready PDF: <a href=%q>%s</a></p>",
		order.ID, order.CupType, formatAmount(order), pdfPath, pdfPath,
	)
}

// formatAmount форматирует строку суммы: "<amount> <currency>",
// либо "Unknown (<currency>)", если сумма не заполнена.
func formatAmount(order *models.Order) string {
	if order.Amount == nil {
		return fmt.Sprintf("Unknown (%s)", order.Currency)
	}
	return fmt.Sprintf("%s %s", order.Amount.StringFixed(2), order.Currency)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
	"github.com/whitewolfwitcher/hotzy-orders/internal/storage"
)

// OrderLifecycle определяет интерфейс координатора жизненного цикла.
type OrderLifecycle interface {
	Fulfil(ctx context.Context, orderID uuid.UUID) (string, error)
	ConfirmPayment(ctx context.Context, orderID uuid.UUID) (string, error)
}

// LifecycleCoordinator ведёт сегмент жизненного цикла заказа
// paid -> pdf_requested -> fulfilled|failed: генерация PDF, затем
// уведомление. Собственного состояния не держит, ошибки шагов
// отдаёт вызывающему как есть.
type LifecycleCoordinator struct {
	orderStorage storage.OrderStorage
	pdf          PDFService
	notify       NotifyService
	interval     time.Duration
	logger       *zap.SugaredLogger
}

// NewLifecycleCoordinator создаёт координатор жизненного цикла.
func NewLifecycleCoordinator(orderStorage storage.OrderStorage, pdf PDFService, notify NotifyService, interval time.Duration, logger *zap.SugaredLogger) *LifecycleCoordinator {
	if interval <= 0 {
		interval = time.Minute
	}
	return &LifecycleCoordinator{
		orderStorage: orderStorage,
		pdf:          pdf,
		notify:       notify,
		interval:     interval,
		logger:       logger,
	}
}

// Fulfil прогоняет заказ через генерацию PDF и уведомление.
// Откатов нет: повторная генерация идемпотентна, письмо - fire-and-forget.
func (c *LifecycleCoordinator) Fulfil(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := c.orderStorage.GetByID(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("get order: %w", err)
	}

	if err := c.orderStorage.UpdateStatus(ctx, orderID, models.OrderStatusPdfRequested, nil); err != nil {
		return "", fmt.Errorf("mark pdf requested: %w", err)
	}

	pdfPath, err := c.pdf.Generate(ctx, orderID)
	if err != nil {
		c.markFailed(ctx, orderID)
		return "", err
	}

	if err := c.notify.SendOrderConfirmation(ctx, order, pdfPath); err != nil {
		c.markFailed(ctx, orderID)
		return "", err
	}

	if err := c.orderStorage.UpdateStatus(ctx, orderID, models.OrderStatusFulfilled, &pdfPath); err != nil {
		return "", fmt.Errorf("mark fulfilled: %w", err)
	}

	c.logger.Infow("order fulfilled", "order_id", orderID, "pdf_path", pdfPath)
	return pdfPath, nil
}

// ConfirmPayment обрабатывает внешнее подтверждение оплаты:
// переводит черновик в paid и запускает конвейер исполнения.
// Повтор вебхука по уже исполненному заказу безвреден.
func (c *LifecycleCoordinator) ConfirmPayment(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := c.orderStorage.GetByID(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("get order: %w", err)
	}

	if order.Status == models.OrderStatusFulfilled {
		if order.PdfPath != nil {
			return *order.PdfPath, nil
		}
		return "", nil
	}

	if order.Status == models.OrderStatusDraft {
		if err := c.orderStorage.UpdateStatus(ctx, orderID, models.OrderStatusPaid, nil); err != nil {
			return "", fmt.Errorf("mark paid: %w", err)
		}
	}

	return c.Fulfil(ctx, orderID)
}

// Start запускает фоновую дометку: заказы, застрявшие в paid или
// pdf_requested, периодически прогоняются через конвейер заново.
// Останавливается по ctx.Done().
func (c *LifecycleCoordinator) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.processPending(ctx); err != nil {
					c.logger.Errorw("fulfilment sweep error", "error", err)
				}
			}
		}
	}()
}

func (c *LifecycleCoordinator) processPending(ctx context.Context) error {
	orders, err := c.orderStorage.GetPendingFulfilment(ctx)
	if err != nil {
		return fmt.Errorf("get pending orders: %w", err)
	}

	if len(orders) > 0 {
		c.logger.Infow("retrying stuck orders", "count", len(orders))
	}

	for _, o := range orders {
		if _, err := c.Fulfil(ctx, o.ID); err != nil {
			c.logger.Errorw("fulfilment retry failed", "order_id", o.ID, "error", err)
		}
	}
	return nil
}

func (c *LifecycleCoordinator) markFailed(ctx context.Context, orderID uuid.UUID) {
	if err := c.orderStorage.UpdateStatus(ctx, orderID, models.OrderStatusFailed, nil); err != nil {
		c.logger.Errorw("failed to mark order as failed", "order_id", orderID, "error", err)
	}
}

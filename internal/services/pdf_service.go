package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/whitewolfwitcher/hotzy-orders/internal/renderer"
	"github.com/whitewolfwitcher/hotzy-orders/internal/storage"
)

// PDFService определяет интерфейс оркестрации генерации PDF.
type PDFService interface {
	Generate(ctx context.Context, orderID uuid.UUID) (string, error)
}

// PDFServiceImpl реализует PDFService. Сам ничего не сохраняет и не
// уведомляет: рендеринг делегируется внешнему сервису, его ошибки
// пробрасываются без переинтерпретации.
type PDFServiceImpl struct {
	orderStorage storage.OrderStorage
	renderer     renderer.Client
	logger       *zap.SugaredLogger
}

// NewPDFService создаёт новый сервис генерации PDF.
func NewPDFService(orderStorage storage.OrderStorage, rendererClient renderer.Client, logger *zap.SugaredLogger) *PDFServiceImpl {
	return &PDFServiceImpl{
		orderStorage: orderStorage,
		renderer:     rendererClient,
		logger:       logger,
	}
}

// Generate запрашивает PDF по заказу и возвращает ссылку на артефакт.
func (s *PDFServiceImpl) Generate(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := s.orderStorage.GetByID(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("get order: %w", err)
	}

	pdfPath, err := s.renderer.RenderOrderPDF(ctx, order)
	if err != nil {
		s.logger.Errorw("pdf render failed", "order_id", orderID, "error", err)
		return "", err
	}

	s.logger.Infow("pdf rendered", "order_id", orderID, "pdf_path", pdfPath)
	return pdfPath, nil
}

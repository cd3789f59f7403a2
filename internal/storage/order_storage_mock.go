package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
)

// MockOrderStorage - мок для тестирования (экспортируемый для использования в других пакетах)
type MockOrderStorage struct {
	CreateFunc         func(ctx context.Context, order *models.Order) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatusFunc   func(ctx context.Context, id uuid.UUID, status models.OrderStatus, pdfPath *string) error
	SetArtworkPathFunc func(ctx context.Context, id uuid.UUID, path string) error
	GetPendingFunc     func(ctx context.Context) ([]*models.Order, error)
}

func (m *MockOrderStorage) Create(ctx context.Context, order *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrOrderNotFound
}

func (m *MockOrderStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, pdfPath *string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, pdfPath)
	}
	return nil
}

func (m *MockOrderStorage) SetArtworkPath(ctx context.Context, id uuid.UUID, path string) error {
	if m.SetArtworkPathFunc != nil {
		return m.SetArtworkPathFunc(ctx, id, path)
	}
	return nil
}

func (m *MockOrderStorage) GetPendingFulfilment(ctx context.Context) ([]*models.Order, error) {
	if m.GetPendingFunc != nil {
		return m.GetPendingFunc(ctx)
	}
	return []*models.Order{}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
	"github.com/whitewolfwitcher/hotzy-orders/internal/pricing"
	"github.com/whitewolfwitcher/hotzy-orders/internal/storage"
	"github.com/whitewolfwitcher/hotzy-orders/internal/token"
)

var (
	ErrInvalidCupType         = errors.New("invalid cup type")
	ErrInvalidCurrency        = errors.New("invalid currency")
	ErrAmountCurrencyMismatch = errors.New("amount does not match order currency")
	ErrNegativeAmount         = errors.New("amount must be non-negative")
	ErrInvalidUploadToken     = errors.New("invalid upload token")
	ErrEmptyArtworkPath       = errors.New("empty artwork path")
)

// CreateDraftResult - результат создания черновика: идентификатор
// и авторизующий токен всегда возвращаются парой.
type CreateDraftResult struct {
	OrderID     uuid.UUID
	UploadToken string
}

// OrderService определяет интерфейс работы с заказами.
type OrderService interface {
	CreateDraft(ctx context.Context, req *models.CreateOrderRequest) (*CreateDraftResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	AttachArtwork(ctx context.Context, id uuid.UUID, uploadToken, artworkPath string) error
}

// OrderServiceImpl реализует OrderService.
type OrderServiceImpl struct {
	orderStorage storage.OrderStorage
	tokenSecret  string
	tokenTTL     time.Duration
	logger       *zap.SugaredLogger
}

// NewOrderService создаёт новый сервис заказов.
func NewOrderService(orderStorage storage.OrderStorage, tokenSecret string, tokenTTL time.Duration, logger *zap.SugaredLogger) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderStorage: orderStorage,
		tokenSecret:  tokenSecret,
		tokenTTL:     tokenTTL,
		logger:       logger,
	}
}

// CreateDraft создаёт черновик заказа и выпускает токен загрузки.
// Перечисления проверяются строго: до хранилища невалидный запрос не доходит.
func (s *OrderServiceImpl) CreateDraft(ctx context.Context, req *models.CreateOrderRequest) (*CreateDraftResult, error) {
	cupType := models.CupType(req.CupType)
	if !cupType.Valid() {
		return nil, ErrInvalidCupType
	}

	currency := models.Currency(req.Currency)
	if !currency.Valid() {
		return nil, ErrInvalidCurrency
	}

	amount, err := resolveAmount(cupType, currency, req)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Status:   models.OrderStatusDraft,
		CupType:  cupType,
		Currency: currency,
		Amount:   &amount,
	}

	if err := s.orderStorage.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Токен выпускается ровно один раз на созданный заказ.
	uploadToken := token.Issue(order.ID.String(), s.tokenSecret, s.tokenTTL)

	s.logger.Infow("draft order created",
		"order_id", order.ID,
		"cup_type", cupType,
		"currency", currency,
	)

	return &CreateDraftResult{
		OrderID:     order.ID,
		UploadToken: uploadToken,
	}, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderStorage.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// AttachArtwork привязывает макет к заказу под защитой токена загрузки.
// Просроченный, подделанный и чужой токен дают одну и ту же ошибку.
func (s *OrderServiceImpl) AttachArtwork(ctx context.Context, id uuid.UUID, uploadToken, artworkPath string) error {
	if !token.Verify(uploadToken, id.String(), s.tokenSecret) {
		return ErrInvalidUploadToken
	}

	if artworkPath == "" {
		return ErrEmptyArtworkPath
	}

	if err := s.orderStorage.SetArtworkPath(ctx, id, artworkPath); err != nil {
		return fmt.Errorf("set artwork path: %w", err)
	}

	s.logger.Infow("artwork attached", "order_id", id)
	return nil
}

// resolveAmount вычисляет сумму заказа: по умолчанию из прайс-листа,
// либо из переопределения в поле, совпадающем с валютой заказа.
// Поле чужой валюты - нарушение взаимоисключения и ошибка валидации.
func resolveAmount(cupType models.CupType, currency models.Currency, req *models.CreateOrderRequest) (decimal.Decimal, error) {
	var override *float64
	switch currency {
	case models.CurrencyCAD:
		if req.AmountUSD != nil {
			return decimal.Zero, ErrAmountCurrencyMismatch
		}
		override = req.AmountCAD
	case models.CurrencyUSD:
		if req.AmountCAD != nil {
			return decimal.Zero, ErrAmountCurrencyMismatch
		}
		override = req.AmountUSD
	}

	if override == nil {
		return pricing.UnitAmount(cupType, currency), nil
	}

	amount := decimal.NewFromFloat(*override)
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return amount.Round(2), nil
}

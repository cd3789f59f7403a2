package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CupType описывает тип кружки из каталога.
type CupType string

const (
	CupTypeHotzy    CupType = "hotzy"
	CupTypeStandard CupType = "standard"
)

// Valid проверяет, что тип кружки входит в каталог.
func (c CupType) Valid() bool {
	switch c {
	case CupTypeHotzy, CupTypeStandard:
		return true
	}
	return false
}

// Currency описывает валюту заказа.
type Currency string

const (
	CurrencyCAD Currency = "CAD"
	CurrencyUSD Currency = "USD"
)

// Valid проверяет, что валюта поддерживается.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyCAD, CurrencyUSD:
		return true
	}
	return false
}

// OrderStatus описывает статус жизненного цикла заказа.
type OrderStatus string

const (
	OrderStatusDraft        OrderStatus = "draft"
	OrderStatusPaid         OrderStatus = "paid"
	OrderStatusPdfRequested OrderStatus = "pdf_requested"
	OrderStatusFulfilled    OrderStatus = "fulfilled"
	OrderStatusFailed       OrderStatus = "failed"
)

// Order представляет заказ на кружку. Сумма хранится одним полем
// и трактуется в валюте заказа.
type Order struct {
	ID          uuid.UUID        `db:"id"`
	Status      OrderStatus      `db:"status"`
	CupType     CupType          `db:"cup_type"`
	Currency    Currency         `db:"currency"`
	Amount      *decimal.Decimal `db:"amount"`
	ArtworkPath *string          `db:"artwork_path"`
	PdfPath     *string          `db:"pdf_path"`
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
}

// CreateOrderRequest - запрос на создание черновика заказа.
// Поля amount_cad/amount_usd опциональны и взаимоисключающие:
// учитывается только поле, совпадающее с валютой заказа.
type CreateOrderRequest struct {
	CupType   string   `json:"cupType"`
	Currency  string   `json:"currency"`
	AmountCAD *float64 `json:"amount_cad,omitempty"`
	AmountUSD *float64 `json:"amount_usd,omitempty"`
}

// CreateOrderResponse - ответ на создание черновика: заказ никогда
// не отдаётся без авторизующего токена загрузки.
type CreateOrderResponse struct {
	OK               bool   `json:"ok"`
	OrderID          string `json:"orderId"`
	OrderUploadToken string `json:"orderUploadToken"`
}

// OrderResponse - DTO заказа для HTTP-ответа.
type OrderResponse struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	CupType     string   `json:"cupType"`
	Currency    string   `json:"currency"`
	Amount      *float64 `json:"amount,omitempty"`
	ArtworkPath *string  `json:"artwork_path,omitempty"`
	PdfPath     *string  `json:"pdf_path,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// UploadArtworkRequest - запрос на привязку макета к заказу.
type UploadArtworkRequest struct {
	ArtworkPath string `json:"artwork_path"`
}

// PaymentWebhookRequest - тело вебхука подтверждения оплаты.
type PaymentWebhookRequest struct {
	OrderID string `json:"orderId"`
}

// GeneratePDFResponse - ответ внутреннего триггера генерации PDF.
type GeneratePDFResponse struct {
	OK      bool   `json:"ok"`
	PdfPath string `json:"pdf_path"`
}

// OKResponse - минимальный утвердительный ответ.
type OKResponse struct {
	OK bool `json:"ok"`
}

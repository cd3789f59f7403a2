package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/whitewolfwitcher/hotzy-orders/internal/models"
)

// Базовые цены каталога в CAD.
var basePriceCAD = map[models.CupType]decimal.Decimal{
	models.CupTypeHotzy:    decimal.RequireFromString("20.45"),
	models.CupTypeStandard: decimal.RequireFromString("24.95"),
}

// Фиксированный курс конвертации CAD -> USD.
var usdRate = decimal.RequireFromString("0.74")

// UnitAmount возвращает цену за единицу для пары (тип кружки, валюта).
// Чистая функция без ошибок: неизвестный тип кружки получает базовую
// цену hotzy, валидация перечислений выполняется выше по стеку.
// Для USD базовая цена умножается на курс и округляется до двух знаков.
func UnitAmount(cupType models.CupType, currency models.Currency) decimal.Decimal {
	base, ok := basePriceCAD[cupType]
	if !ok {
		base = basePriceCAD[models.CupTypeHotzy]
	}

	if currency == models.CurrencyUSD {
		return base.Mul(usdRate).Round(2)
	}
	return base
}

// Package money конвертирует цены между текстом, копейками (kuruş) и
// строкой для отображения. Все внутренние расчеты ведутся в int64 kuruş,
// чтобы граничные сравнения были точными.
package money

import (
	"errors"
	"strings"

	"github.com/robosite/storefront/pkg/e"
	"github.com/shopspring/decimal"
)

// ParseToKurus конвертирует строку вида "599.99" или "600" в int64 kuruş.
// Возвращает ошибку при:
// - неверном формате
// - более чем 2 знаках после запятой
// - отрицательном значении
// - превышении разумного лимита (10^9 лир)
func ParseToKurus(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("price is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	// d в лирах, лимит 10^9 лир
	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// FromFloat конвертирует число из JSON (лиры) в kuruş с округлением до kuruş.
func FromFloat(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ToFloat конвертирует kuruş в лиры для JSON-ответов.
func ToFloat(kurus int64) float64 {
	f, _ := decimal.NewFromInt(kurus).Div(decimal.NewFromInt(100)).Float64()
	return f
}

// FormatTRY форматирует kuruş как цену в турецком формате с символом валюты:
// 531900 -> "5.319,00₺". Соответствует формату отображения витрины.
func FormatTRY(kurus int64) string {
	neg := kurus < 0
	if neg {
		kurus = -kurus
	}

	lira := kurus / 100
	cents := kurus % 100

	digits := decimal.NewFromInt(lira).String()
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	// Разделители тысяч через точку
	first := len(digits) % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(digits[:first])
	for i := first; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}

	b.WriteByte(',')
	b.WriteByte(byte('0' + cents/10))
	b.WriteByte(byte('0' + cents%10))
	b.WriteRune('₺')

	return b.String()
}

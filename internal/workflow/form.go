package workflow

import (
	"strconv"
	"strings"

	"github.com/robosite/storefront/internal/infrastructure/storeapi"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/money"
)

// ProductForm — текстовое состояние формы товара до числового приведения.
// Цены и рейтинг хранятся строками, как их вводит оператор.
type ProductForm struct {
	Name          string
	Description   string
	Image         string
	OriginalPrice string
	CurrentPrice  string
	Rating        string
	Badge         string
	Category      string
	InStock       bool
}

// FormFromProduct заполняет форму из существующего товара для редактирования.
func FormFromProduct(p storeapi.Product) *ProductForm {
	form := &ProductForm{
		Name:          p.Name,
		Description:   p.Description,
		Image:         p.Image,
		OriginalPrice: strconv.FormatFloat(p.OriginalPrice, 'f', 2, 64),
		CurrentPrice:  strconv.FormatFloat(p.CurrentPrice, 'f', 2, 64),
		Rating:        strconv.Itoa(p.Rating),
		Category:      p.Category,
		InStock:       p.InStock,
	}
	if p.Badge != nil {
		form.Badge = *p.Badge
	}

	return form
}

// Coerce приводит текстовые поля к числам и собирает полезную нагрузку
// запроса. Пустой бейдж нормализуется в отсутствующий, а не в пустую строку.
func (f *ProductForm) Coerce() (*storeapi.ProductPayload, error) {
	if strings.TrimSpace(f.Name) == "" {
		return nil, e.ErrProductNameRequired
	}
	if strings.TrimSpace(f.Category) == "" {
		return nil, e.ErrMissingFields
	}

	originalPrice, err := money.ParseToKurus(f.OriginalPrice)
	if err != nil {
		return nil, err
	}

	currentPrice, err := money.ParseToKurus(f.CurrentPrice)
	if err != nil {
		return nil, err
	}

	rating, err := strconv.Atoi(strings.TrimSpace(f.Rating))
	if err != nil || rating < 1 || rating > 5 {
		return nil, e.ErrInvalidRating
	}

	payload := &storeapi.ProductPayload{
		Name:          strings.TrimSpace(f.Name),
		Description:   f.Description,
		Image:         f.Image,
		OriginalPrice: money.ToFloat(originalPrice),
		CurrentPrice:  money.ToFloat(currentPrice),
		Rating:        rating,
		Category:      f.Category,
		InStock:       f.InStock,
	}

	if badge := strings.TrimSpace(f.Badge); badge != "" {
		payload.Badge = &badge
	}

	return payload, nil
}

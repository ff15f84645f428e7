package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID            string // uuid
	Name          string
	Description   string
	Image         string // URL изображения
	OriginalPrice int64  // Цена хранится в kuruş
	CurrentPrice  int64  // Цена хранится в kuruş
	Rating        int    // 1..5
	Badge         *string
	Category      string // slug категории
	InStock       bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewProduct(id, name, description, image string, originalPrice, currentPrice int64,
	rating int, badge *string, category string, inStock bool) *Product {
	return &Product{
		ID:            id,
		Name:          name,
		Description:   description,
		Image:         image,
		OriginalPrice: originalPrice,
		CurrentPrice:  currentPrice,
		Rating:        rating,
		Badge:         badge,
		Category:      category,
		InStock:       inStock,
	}
}

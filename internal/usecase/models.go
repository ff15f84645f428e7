package usecase

import (
	"time"

	"github.com/robosite/storefront/internal/domain"
)

// CATALOG USECASE

// ListFilter — параметры выборки каталога.
type ListFilter struct {
	Offset   int
	Limit    int
	Category string
	Search   string
}

// ListProductsReq — запрос страницы каталога.
type ListProductsReq struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

// ListProductsRes — страница каталога с метаданными пагинации.
// Fallback выставляется, когда хранилище недоступно и отдан резервный список.
type ListProductsRes struct {
	Products    []ProductInfo
	TotalPages  int
	CurrentPage int
	TotalCount  int
	Fallback    bool
}

// ProductInfo — DTO товара для внешнего использования. Цены в kuruş.
type ProductInfo struct {
	ID            string
	Name          string
	Description   string
	Image         string
	OriginalPrice int64
	CurrentPrice  int64
	Rating        int
	Badge         *string
	Category      string
	InStock       bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// CategoryInfo — справочные данные категории для селектора формы.
type CategoryInfo struct {
	ID          string
	Name        string
	Slug        string
	Description *string
}

// CART USECASE

// AddItemReq — запрос на добавление товара в корзину.
// Quantity по умолчанию 1.
type AddItemReq struct {
	Owner     string
	ProductID string
	Quantity  int
}

// UpdateQuantityReq — запрос на установку количества позиции.
type UpdateQuantityReq struct {
	Owner     string
	ProductID string
	Quantity  int
}

// CartLineInfo — позиция корзины для внешнего использования.
type CartLineInfo struct {
	Product  ProductInfo
	Quantity int
}

// CartRes — снимок корзины с расчетами. Суммы в kuruş.
type CartRes struct {
	Lines    []CartLineInfo
	Subtotal int64
	Shipping int64
	Total    int64
}

// CartMutationRes — результат мутации корзины: новый снимок и
// пользовательское подтверждение (пустое для no-op).
type CartMutationRes struct {
	Cart    *CartRes
	Message string
}

// CheckoutRes — результат оформления заказа (mock, без записи заказа).
type CheckoutRes struct {
	Total   int64
	Message string
}

// AUTH USECASE

type RegisterReq struct {
	Name     string
	Email    string
	Password string
}

type LoginReq struct {
	Email    string
	Password string
}

// UserInfo — DTO пользователя для внешнего использования.
type UserInfo struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// TokenRes — ответ аутентификации: bearer-токен и пользователь.
type TokenRes struct {
	AccessToken string
	TokenType   string
	User        UserInfo
}

// SessionLoginReq — запрос mock-входа покупателя. Проверки пароля нет:
// достаточно непустых email и password.
type SessionLoginReq struct {
	SessionID string
	Email     string
	Password  string
	Name      string
}

// SessionRes — состояние покупательской сессии плюс подтверждение.
type SessionRes struct {
	Session domain.Session
	Message string
}

// ADMIN USECASE

// ProductPayload — провалидированные данные формы товара.
// Badge с пустой строкой нормализуется в nil до этого места.
type ProductPayload struct {
	Name          string
	Description   string
	Image         string
	OriginalPrice int64
	CurrentPrice  int64
	Rating        int
	Badge         *string
	Category      string
	InStock       bool
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

type AttachImageReq struct {
	ProductID string
	Image     ProductImage
}

// INFRASTRUCTURE

type UploadImageReq struct {
	ProductID string
	Image     ProductImage
}

type UploadImageRes struct {
	Key string
	URL string
}

type WriteRawMessageReq struct {
	ProductID string
	Payload   []byte
}

// MAPPERS

func NewListProductsReq(page, limit int, category, search string) *ListProductsReq {
	return &ListProductsReq{
		Page:     page,
		Limit:    limit,
		Category: category,
		Search:   search,
	}
}

func NewAddItemReq(owner, productID string, quantity int) *AddItemReq {
	return &AddItemReq{
		Owner:     owner,
		ProductID: productID,
		Quantity:  quantity,
	}
}

func NewUpdateQuantityReq(owner, productID string, quantity int) *UpdateQuantityReq {
	return &UpdateQuantityReq{
		Owner:     owner,
		ProductID: productID,
		Quantity:  quantity,
	}
}

func NewSessionLoginReq(sessionID, email, password, name string) *SessionLoginReq {
	return &SessionLoginReq{
		SessionID: sessionID,
		Email:     email,
		Password:  password,
		Name:      name,
	}
}

func NewUploadImageReq(productID string, image ProductImage) *UploadImageReq {
	return &UploadImageReq{
		ProductID: productID,
		Image:     image,
	}
}

func NewUploadImageRes(key, url string) *UploadImageRes {
	return &UploadImageRes{Key: key, URL: url}
}

func NewWriteRawMessageReq(productID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

// ProductInfoFromDomain собирает внешний DTO из доменной сущности.
func ProductInfoFromDomain(p *domain.Product) *ProductInfo {
	return &ProductInfo{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Image:         p.Image,
		OriginalPrice: p.OriginalPrice,
		CurrentPrice:  p.CurrentPrice,
		Rating:        p.Rating,
		Badge:         p.Badge,
		Category:      p.Category,
		InStock:       p.InStock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// DomainFromProductInfo восстанавливает доменный снимок из DTO
// (для снимков позиций корзины).
func DomainFromProductInfo(p *ProductInfo) *domain.Product {
	return &domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Image:         p.Image,
		OriginalPrice: p.OriginalPrice,
		CurrentPrice:  p.CurrentPrice,
		Rating:        p.Rating,
		Badge:         p.Badge,
		Category:      p.Category,
		InStock:       p.InStock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func UserInfoFromDomain(u *domain.User) *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

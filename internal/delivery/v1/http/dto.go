package http

import (
	"time"

	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/money"
)

// Цены в JSON ходят числами в лирах с двумя знаками, внутри — int64 kuruş.
// Конвертация происходит только здесь, на границе.

// ProductResponse — товар на проводе.
type ProductResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	OriginalPrice float64    `json:"original_price"`
	CurrentPrice  float64    `json:"current_price"`
	Rating        int        `json:"rating"`
	Badge         *string    `json:"badge"`
	Category      string     `json:"category"`
	InStock       bool       `json:"in_stock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ProductListResponse — страница каталога.
type ProductListResponse struct {
	Products    []ProductResponse `json:"products"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
	TotalCount  int               `json:"total_count"`
}

// CategoryResponse — категория для селектора формы.
type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

// ProductRequest — тело создания/обновления товара.
type ProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	OriginalPrice float64 `json:"original_price"`
	CurrentPrice  float64 `json:"current_price"`
	Rating        int     `json:"rating"`
	Badge         *string `json:"badge"`
	Category      string  `json:"category"`
	InStock       bool    `json:"in_stock"`
}

// RegisterRequest — тело регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest — тело входа по паролю.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse — пользователь на проводе.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse — ответ аутентификации.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// SessionLoginRequest — тело mock-входа покупателя.
type SessionLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// SessionResponse — состояние покупательской сессии.
type SessionResponse struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Message    string `json:"message,omitempty"`
}

// CartItemRequest — тело добавления/обновления позиции корзины.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartItemResponse — позиция корзины на проводе.
type CartItemResponse struct {
	ProductID string          `json:"product_id"`
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
}

// CartResponse — снимок корзины с расчетами.
type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal float64            `json:"subtotal"`
	Shipping float64            `json:"shipping"`
	Total    float64            `json:"total"`
}

// CartMutationResponse — снимок корзины плюс пользовательское подтверждение.
type CartMutationResponse struct {
	Message string       `json:"message,omitempty"`
	Cart    CartResponse `json:"cart"`
}

// CheckoutResponse — результат оформления заказа.
type CheckoutResponse struct {
	Message string  `json:"message"`
	Total   float64 `json:"total"`
}

func toProductResponse(p *usecase.ProductInfo) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Image:         p.Image,
		OriginalPrice: money.ToFloat(p.OriginalPrice),
		CurrentPrice:  money.ToFloat(p.CurrentPrice),
		Rating:        p.Rating,
		Badge:         p.Badge,
		Category:      p.Category,
		InStock:       p.InStock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductListResponse(res *usecase.ListProductsRes) ProductListResponse {
	products := make([]ProductResponse, 0, len(res.Products))
	for i := range res.Products {
		products = append(products, toProductResponse(&res.Products[i]))
	}

	return ProductListResponse{
		Products:    products,
		TotalPages:  res.TotalPages,
		CurrentPage: res.CurrentPage,
		TotalCount:  res.TotalCount,
	}
}

func toUserResponse(u *usecase.UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toSessionResponse(res *usecase.SessionRes) SessionResponse {
	return SessionResponse{
		IsLoggedIn: res.Session.IsLoggedIn,
		Email:      res.Session.Email,
		Name:       res.Session.Name,
		Message:    res.Message,
	}
}

func toCartResponse(cart *usecase.CartRes) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Lines))
	for i := range cart.Lines {
		items = append(items, CartItemResponse{
			ProductID: cart.Lines[i].Product.ID,
			Product:   toProductResponse(&cart.Lines[i].Product),
			Quantity:  cart.Lines[i].Quantity,
		})
	}

	return CartResponse{
		Items:    items,
		Subtotal: money.ToFloat(cart.Subtotal),
		Shipping: money.ToFloat(cart.Shipping),
		Total:    money.ToFloat(cart.Total),
	}
}

// toProductPayload валидирует тело и приводит цены к kuruş.
// Пустой badge нормализуется в nil.
func toProductPayload(req *ProductRequest) *usecase.ProductPayload {
	badge := req.Badge
	if badge != nil && *badge == "" {
		badge = nil
	}

	return &usecase.ProductPayload{
		Name:          req.Name,
		Description:   req.Description,
		Image:         req.Image,
		OriginalPrice: money.FromFloat(req.OriginalPrice),
		CurrentPrice:  money.FromFloat(req.CurrentPrice),
		Rating:        req.Rating,
		Badge:         badge,
		Category:      req.Category,
		InStock:       req.InStock,
	}
}

func toCategoryResponses(categories []usecase.CategoryInfo) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, CategoryResponse{
			ID:          categories[i].ID,
			Name:        categories[i].Name,
			Slug:        categories[i].Slug,
			Description: categories[i].Description,
		})
	}

	return result
}

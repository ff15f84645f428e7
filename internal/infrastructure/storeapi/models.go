package storeapi

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

type Product struct {
	ID            string  `json:"id"`
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

type ProductListResponse struct {
	Products    []Product `json:"products"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
	TotalCount  int       `json:"total_count"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type ProductPayload struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	OriginalPrice float64 `json:"original_price"`
	CurrentPrice  float64 `json:"current_price"`
	Rating        int     `json:"rating"`
	Badge         *string `json:"badge,omitempty"`
	Category      string  `json:"category"`
	InStock       bool    `json:"in_stock"`
}

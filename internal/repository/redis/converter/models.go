package converter

import "time"

// ProductInfoRedisModel — снимок товара в кэше каталога.
type ProductInfoRedisModel struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	OriginalPrice int64      `json:"original_price"`
	CurrentPrice  int64      `json:"current_price"`
	Rating        int        `json:"rating"`
	Badge         *string    `json:"badge,omitempty"`
	Category      string     `json:"category"`
	InStock       bool       `json:"in_stock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// CartLineRedisModel — позиция корзины, как она лежит в Redis.
// Товар хранится снимком на момент добавления.
type CartLineRedisModel struct {
	Product  ProductInfoRedisModel `json:"product"`
	Quantity int                   `json:"quantity"`
}

// SessionRedisModel — покупательская сессия, как она лежит в Redis.
type SessionRedisModel struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// UserRedisModel — пользователь, привязанный к bearer-токену.
type UserRedisModel struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	HashedPassword string     `json:"hashed_password"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

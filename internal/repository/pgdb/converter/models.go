package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            string     `db:"id"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	Image         string     `db:"image"`
	OriginalPrice int64      `db:"original_price"`
	CurrentPrice  int64      `db:"current_price"`
	Rating        int        `db:"rating"`
	Badge         *string    `db:"badge"`
	Category      string     `db:"category"`
	InStock       bool       `db:"in_stock"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Slug        string  `db:"slug"`
	Description *string `db:"description"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID             string     `db:"id"`
	Name           string     `db:"name"`
	Email          string     `db:"email"`
	Role           string     `db:"role"`
	HashedPassword string     `db:"hashed_password"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   string     `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}

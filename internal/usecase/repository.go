package usecase

import (
	"context"

	"github.com/robosite/storefront/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context, filter *ListFilter) ([]ProductInfo, int, error)
	GetByID(ctx context.Context, id string) (*ProductInfo, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	SetImage(ctx context.Context, id, imageURL string) (*ProductInfo, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CartStorage — durable-хранилище корзины. Каждая мутация
// перезаписывает весь набор позиций целиком.
type CartStorage interface {
	Load(ctx context.Context, owner string) ([]domain.CartLine, error)
	Save(ctx context.Context, owner string, lines []domain.CartLine) error
	Clear(ctx context.Context, owner string) error
}

// SessionStorage — durable-хранилище покупательской сессии.
type SessionStorage interface {
	Load(ctx context.Context, sessionID string) (domain.Session, error)
	Save(ctx context.Context, sessionID string, session domain.Session) error
	Delete(ctx context.Context, sessionID string) error
}

// TokenStorage — выданные bearer-токены и связанные с ними пользователи.
type TokenStorage interface {
	Save(ctx context.Context, token string, user *domain.User) error
	Get(ctx context.Context, token string) (*domain.User, error)
	Delete(ctx context.Context, token string) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []string) (map[string]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

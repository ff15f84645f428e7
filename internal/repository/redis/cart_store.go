package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/repository/redis/converter"
	"github.com/robosite/storefront/pkg/clients"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

// CartStore хранит корзины покупателей в Redis.
// Каждая мутация перезаписывает весь набор позиций одним значением.
type CartStore struct {
	client *clients.RedisClient
	conv   converter.CartLineConverter
	logger logger.Logger
}

func NewCartStore(client *clients.RedisClient, conv converter.CartLineConverter, logger logger.Logger) *CartStore {
	return &CartStore{
		client: client,
		conv:   conv,
		logger: logger,
	}
}

// Load возвращает позиции корзины владельца. Отсутствующая или
// нечитаемая запись трактуется как пустая корзина.
func (s *CartStore) Load(ctx context.Context, owner string) ([]domain.CartLine, error) {
	data, err := s.client.Client.Get(ctx, s.cartKey(owner)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return []domain.CartLine{}, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.CartLineRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		s.logger.Warnf("Malformed cart payload, resetting. owner: %s, error: %v",
			owner, e.Wrap(whereami.WhereAmI(), e.ErrMalformedStoredData))
		return []domain.CartLine{}, nil
	}

	return s.conv.ToArrEntity(models), nil
}

// Save перезаписывает корзину владельца целиком.
func (s *CartStore) Save(ctx context.Context, owner string, lines []domain.CartLine) error {
	data, err := json.Marshal(s.conv.ToArrRedisModel(lines))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.cartKey(owner), data, 0).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Clear удаляет корзину владельца.
func (s *CartStore) Clear(ctx context.Context, owner string) error {
	if err := s.client.Client.Del(ctx, s.cartKey(owner)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *CartStore) cartKey(owner string) string {
	return fmt.Sprintf("roboturkiye_cart:%s", owner)
}

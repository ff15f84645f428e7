package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/robosite/storefront/internal/cfg"
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/repository/redis/converter"
	"github.com/robosite/storefront/pkg/clients"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

// TokenStore хранит выданные bearer-токены в Redis.
// Токен живет ограниченное время и протухает сам.
type TokenStore struct {
	client *clients.RedisClient
	conv   converter.UserConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewTokenStore(client *clients.RedisClient, conv converter.UserConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *TokenStore {
	return &TokenStore{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// Save привязывает пользователя к токену с настроенным TTL.
func (s *TokenStore) Save(ctx context.Context, token string, user *domain.User) error {
	data, err := json.Marshal(s.conv.ToRedisModel(user))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.tokenKey(token), data, s.cfg.TokenTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get возвращает пользователя токена, nil если токен неизвестен или протух.
func (s *TokenStore) Get(ctx context.Context, token string) (*domain.User, error) {
	data, err := s.client.Client.Get(ctx, s.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.UserRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		s.logger.Warnf("Malformed token payload, dropping. error: %v",
			e.Wrap(whereami.WhereAmI(), e.ErrMalformedStoredData))

		if err := s.client.Client.Del(context.Background(), s.tokenKey(token)).Err(); err != nil {
			s.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}

		return nil, nil
	}

	return s.conv.ToEntity(&model), nil
}

// Delete отзывает токен.
func (s *TokenStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Client.Del(ctx, s.tokenKey(token)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *TokenStore) tokenKey(token string) string {
	return fmt.Sprintf("roboturkiye_admin:%s", token)
}

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

// SessionStore хранит покупательские сессии в Redis.
type SessionStore struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewSessionStore(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *SessionStore {
	return &SessionStore{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Load возвращает сессию. Отсутствующая или нечитаемая запись
// трактуется как разлогиненная сессия.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (domain.Session, error) {
	data, err := s.client.Client.Get(ctx, s.sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return domain.LoggedOutSession(), nil
		}

		return domain.Session{}, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.SessionRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		s.logger.Warnf("Malformed session payload, resetting. session_id: %s, error: %v",
			sessionID, e.Wrap(whereami.WhereAmI(), e.ErrMalformedStoredData))
		return domain.LoggedOutSession(), nil
	}

	return domain.Session{
		IsLoggedIn: model.IsLoggedIn,
		Email:      model.Email,
		Name:       model.Name,
	}, nil
}

// Save перезаписывает сессию с настроенным TTL.
func (s *SessionStore) Save(ctx context.Context, sessionID string, session domain.Session) error {
	data, err := json.Marshal(converter.SessionRedisModel{
		IsLoggedIn: session.IsLoggedIn,
		Email:      session.Email,
		Name:       session.Name,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.sessionKey(sessionID), data, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет сессию.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Client.Del(ctx, s.sessionKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("roboturkiye_user:%s", sessionID)
}

package redis

import (
	"context"
	"encoding/json"

	"github.com/jimlawless/whereami"
	"github.com/robosite/storefront/internal/cfg"
	"github.com/robosite/storefront/internal/repository/redis/converter"
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/clients"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

const productKeyPrefix = "product:"

// CacheRepo — read-through кэш снимков товара. Кэш не источник истины:
// промахи и ошибки записи логируются и не поднимаются наверх, деградация
// кэша не должна ронять каталог.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductInfoConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductInfoConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProducts возвращает найденные в кэше товары по ID. Отсутствующие
// ключи просто не попадают в результат.
func (r *CacheRepo) GetProducts(ctx context.Context, ids []string) (map[string]usecase.ProductInfo, error) {
	keys := productKeys(ids)

	values, err := r.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Warnf("cache: MGET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	found := make(map[string]usecase.ProductInfo, len(values))
	for i, raw := range values {
		model, ok := r.decodeProduct(raw, keys[i])
		if !ok {
			continue
		}

		// ключ и содержимое должны указывать на один товар,
		// расхождение означает битую запись
		if model.ID != ids[i] {
			r.logger.Warnf("cache: stale entry at %s holds product %s, evicting", keys[i], model.ID)
			if err := r.client.Client.Del(context.Background(), keys[i]).Err(); err != nil {
				r.logger.Warnf("cache: evict failed: %v", e.Wrap(whereami.WhereAmI(), err))
			}
			continue
		}

		found[ids[i]] = *r.conv.ToUseCase(model)
	}

	return found, nil
}

// SetProducts пишет снимки товаров одним pipeline с TTL из конфига.
func (r *CacheRepo) SetProducts(ctx context.Context, products []usecase.ProductInfo) error {
	pipe := r.client.Client.Pipeline()

	for _, model := range r.conv.ToArrRedisModel(products) {
		data, err := json.Marshal(model)
		if err != nil {
			r.logger.Warnf("cache: marshal product %s failed: %v", model.ID, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		pipe.Set(ctx, productKeyPrefix+model.ID, data, r.cfg.ProductTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warnf("cache: pipeline exec failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteProducts инвалидирует записи после мутации товара.
func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []string) error {
	if err := r.client.Client.Del(ctx, productKeys(ids)...).Err(); err != nil {
		r.logger.Warnf("cache: DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// decodeProduct разбирает сырое значение MGET. false означает промах
// либо нечитаемую запись, обе трактуются как отсутствие в кэше.
func (r *CacheRepo) decodeProduct(raw interface{}, key string) (*converter.ProductInfoRedisModel, bool) {
	var data []byte

	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		r.logger.Warnf("cache: unexpected value type %T at key %s", raw, key)
		return nil, false
	}

	var model converter.ProductInfoRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		r.logger.Warnf("cache: unmarshal failed at key %s: %v", key, err)
		return nil, false
	}

	return &model, true
}

func productKeys(ids []string) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKeyPrefix + id
	}

	return keys
}

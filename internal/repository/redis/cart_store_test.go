package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	r "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/repository/redis/converter"
	"github.com/robosite/storefront/pkg/clients"
	"github.com/robosite/storefront/pkg/logger"
)

func newTestCartStore(t *testing.T) (*CartStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &clients.RedisClient{Client: r.NewClient(&r.Options{Addr: mr.Addr()})}

	return NewCartStore(client, converter.CartLineConverterImpl{}, logger.NewSlogLogger()), mr
}

func cartTestLines() []domain.CartLine {
	badge := "YENİ"

	return []domain.CartLine{
		{
			Product: domain.Product{
				ID:            "11111111-1111-1111-1111-111111111111",
				Name:          "robo Süpürge Pro",
				Description:   "Akıllı robot süpürge",
				Image:         "http://localhost:9000/products/1.jpg",
				OriginalPrice: 7759_00,
				CurrentPrice:  5319_00,
				Rating:        5,
				Badge:         &badge,
				Category:      "elektrikli-ev-aletleri",
				InStock:       true,
			},
			Quantity: 2,
		},
		{
			Product: domain.Product{
				ID:           "22222222-2222-2222-2222-222222222222",
				Name:         "robo Oyuncak Köpek",
				CurrentPrice: 299_90,
				Rating:       4,
				Category:     "oyuncak",
				InStock:      true,
			},
			Quantity: 1,
		},
	}
}

func TestCartStoreRoundTrip(t *testing.T) {
	store, _ := newTestCartStore(t)
	ctx := context.Background()
	lines := cartTestLines()

	require.NoError(t, store.Save(ctx, "musteri-1", lines))

	loaded, err := store.Load(ctx, "musteri-1")
	require.NoError(t, err)
	assert.Equal(t, lines, loaded)
}

func TestCartStoreMissingOwnerIsEmpty(t *testing.T) {
	store, _ := newTestCartStore(t)

	lines, err := store.Load(context.Background(), "hic-gelmemis")
	require.NoError(t, err)
	require.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestCartStoreMalformedPayloadResets(t *testing.T) {
	store, mr := newTestCartStore(t)
	require.NoError(t, mr.Set("roboturkiye_cart:musteri-1", "{definitely not json"))

	lines, err := store.Load(context.Background(), "musteri-1")
	require.NoError(t, err)
	require.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestCartStoreClear(t *testing.T) {
	store, _ := newTestCartStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "musteri-1", cartTestLines()))
	require.NoError(t, store.Clear(ctx, "musteri-1"))

	lines, err := store.Load(ctx, "musteri-1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	// повторная очистка пустой корзины не ошибка
	require.NoError(t, store.Clear(ctx, "musteri-1"))
}

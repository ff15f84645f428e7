package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type cartStorageMock struct {
	lines   map[string][]domain.CartLine
	loadErr error
}

func newCartStorageMock() *cartStorageMock {
	return &cartStorageMock{lines: make(map[string][]domain.CartLine)}
}

func (m *cartStorageMock) Load(_ context.Context, owner string) ([]domain.CartLine, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.CartLine(nil), m.lines[owner]...), nil
}

func (m *cartStorageMock) Save(_ context.Context, owner string, lines []domain.CartLine) error {
	m.lines[owner] = append([]domain.CartLine(nil), lines...)
	return nil
}

func (m *cartStorageMock) Clear(_ context.Context, owner string) error {
	delete(m.lines, owner)
	return nil
}

type catalogMock struct {
	products map[string]*ProductInfo
}

func (m *catalogMock) ListProducts(_ context.Context, _ *ListProductsReq) (*ListProductsRes, error) {
	return &ListProductsRes{}, nil
}

func (m *catalogMock) GetProduct(_ context.Context, id string) (*ProductInfo, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, e.ErrProductNotFound
}

func (m *catalogMock) ListCategories(_ context.Context) ([]CategoryInfo, error) {
	return nil, nil
}

type sessionStorageMock struct {
	sessions map[string]domain.Session
}

func newSessionStorageMock() *sessionStorageMock {
	return &sessionStorageMock{sessions: make(map[string]domain.Session)}
}

func (m *sessionStorageMock) Load(_ context.Context, id string) (domain.Session, error) {
	return m.sessions[id], nil
}

func (m *sessionStorageMock) Save(_ context.Context, id string, s domain.Session) error {
	m.sessions[id] = s
	return nil
}

func (m *sessionStorageMock) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func testProduct(id string, priceKurus int64) *ProductInfo {
	return &ProductInfo{
		ID:           id,
		Name:         "robo Test Ürünü",
		CurrentPrice: priceKurus,
		Rating:       5,
		Category:     "elektrikli-ev-aletleri",
		InStock:      true,
	}
}

func newCartUCForTest(storage *cartStorageMock, catalog *catalogMock, sessions *sessionStorageMock) *CartUseCase {
	return NewCartUC(storage, catalog, sessions, logger.NewSlogLogger())
}

func TestCartAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("RepeatedAddAccumulatesQuantity", func(t *testing.T) {
		storage := newCartStorageMock()
		catalog := &catalogMock{products: map[string]*ProductInfo{
			"p1": testProduct("p1", 100_00),
		}}
		uc := newCartUCForTest(storage, catalog, newSessionStorageMock())

		var res *CartMutationRes
		var err error
		for i := 0; i < 3; i++ {
			res, err = uc.AddItem(ctx, NewAddItemReq("owner", "p1", 0))
			require.NoError(t, err)
		}

		require.Len(t, res.Cart.Lines, 1)
		assert.Equal(t, 3, res.Cart.Lines[0].Quantity)
		assert.Equal(t, "robo Test Ürünü sepete eklendi! (3 adet)", res.Message)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		storage := newCartStorageMock()
		catalog := &catalogMock{products: map[string]*ProductInfo{}}
		uc := newCartUCForTest(storage, catalog, newSessionStorageMock())

		_, err := uc.AddItem(ctx, NewAddItemReq("owner", "missing", 1))
		require.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("OutOfStock", func(t *testing.T) {
		product := testProduct("p1", 100_00)
		product.InStock = false
		catalog := &catalogMock{products: map[string]*ProductInfo{"p1": product}}
		uc := newCartUCForTest(newCartStorageMock(), catalog, newSessionStorageMock())

		_, err := uc.AddItem(ctx, NewAddItemReq("owner", "p1", 1))
		require.ErrorIs(t, err, e.ErrOutOfStock)
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		catalog := &catalogMock{products: map[string]*ProductInfo{
			"p1": testProduct("p1", 100_00),
		}}
		uc := newCartUCForTest(newCartStorageMock(), catalog, newSessionStorageMock())

		_, err := uc.AddItem(ctx, NewAddItemReq("owner", "p1", -2))
		require.ErrorIs(t, err, e.ErrInvalidQuantity)
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*CartUseCase, *cartStorageMock) {
		t.Helper()
		storage := newCartStorageMock()
		catalog := &catalogMock{products: map[string]*ProductInfo{
			"p1": testProduct("p1", 100_00),
		}}
		uc := newCartUCForTest(storage, catalog, newSessionStorageMock())

		_, err := uc.AddItem(ctx, NewAddItemReq("owner", "p1", 2))
		require.NoError(t, err)

		return uc, storage
	}

	t.Run("SetsQuantity", func(t *testing.T) {
		uc, _ := setup(t)

		res, err := uc.UpdateQuantity(ctx, NewUpdateQuantityReq("owner", "p1", 5))
		require.NoError(t, err)
		require.Len(t, res.Cart.Lines, 1)
		assert.Equal(t, 5, res.Cart.Lines[0].Quantity)
	})

	t.Run("ZeroEqualsRemove", func(t *testing.T) {
		uc, storage := setup(t)

		res, err := uc.UpdateQuantity(ctx, NewUpdateQuantityReq("owner", "p1", 0))
		require.NoError(t, err)
		assert.Empty(t, res.Cart.Lines)
		assert.Empty(t, storage.lines["owner"])
	})

	t.Run("ZeroOnAbsentIsNoop", func(t *testing.T) {
		uc, _ := setup(t)

		res, err := uc.UpdateQuantity(ctx, NewUpdateQuantityReq("owner", "ghost", 0))
		require.NoError(t, err)
		require.Len(t, res.Cart.Lines, 1)
		assert.Empty(t, res.Message)
	})

	t.Run("AbsentIsNoop", func(t *testing.T) {
		uc, _ := setup(t)

		res, err := uc.UpdateQuantity(ctx, NewUpdateQuantityReq("owner", "ghost", 7))
		require.NoError(t, err)
		require.Len(t, res.Cart.Lines, 1)
		assert.Equal(t, 2, res.Cart.Lines[0].Quantity)
	})

	t.Run("NegativeRejected", func(t *testing.T) {
		uc, _ := setup(t)

		_, err := uc.UpdateQuantity(ctx, NewUpdateQuantityReq("owner", "p1", -1))
		require.ErrorIs(t, err, e.ErrInvalidQuantity)
	})
}

func TestComputeShipping(t *testing.T) {
	t.Run("ExactThresholdPays", func(t *testing.T) {
		assert.Equal(t, int64(29_90), ComputeShipping(500_00))
	})

	t.Run("AboveThresholdFree", func(t *testing.T) {
		assert.Equal(t, int64(0), ComputeShipping(500_01))
	})

	t.Run("BelowThresholdPays", func(t *testing.T) {
		assert.Equal(t, int64(29_90), ComputeShipping(1_00))
	})
}

func TestCartTotals(t *testing.T) {
	ctx := context.Background()

	storage := newCartStorageMock()
	catalog := &catalogMock{products: map[string]*ProductInfo{
		"p1": testProduct("p1", 100_00),
	}}
	uc := newCartUCForTest(storage, catalog, newSessionStorageMock())

	_, err := uc.AddItem(ctx, NewAddItemReq("owner", "p1", 1))
	require.NoError(t, err)
	res, err := uc.AddItem(ctx, NewAddItemReq("owner", "p1", 1))
	require.NoError(t, err)

	assert.Equal(t, int64(200_00), res.Cart.Subtotal)
	assert.Equal(t, int64(29_90), res.Cart.Shipping)
	assert.Equal(t, int64(229_90), res.Cart.Total)
}

func TestCartEmptyHasNoShipping(t *testing.T) {
	ctx := context.Background()

	uc := newCartUCForTest(newCartStorageMock(), &catalogMock{}, newSessionStorageMock())

	res, err := uc.GetCart(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, res.Lines)
	assert.Equal(t, int64(0), res.Shipping)
	assert.Equal(t, int64(0), res.Total)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, loggedIn bool) (*CartUseCase, *cartStorageMock) {
		t.Helper()
		storage := newCartStorageMock()
		catalog := &catalogMock{products: map[string]*ProductInfo{
			"p1": testProduct("p1", 5_319_00),
		}}
		sessions := newSessionStorageMock()
		if loggedIn {
			sessions.sessions["sid"] = domain.Session{IsLoggedIn: true, Email: "a@b.c", Name: "a"}
		}
		uc := newCartUCForTest(storage, catalog, sessions)

		_, err := uc.AddItem(ctx, NewAddItemReq("sid", "p1", 1))
		require.NoError(t, err)

		return uc, storage
	}

	t.Run("LoggedOutKeepsCart", func(t *testing.T) {
		uc, storage := setup(t, false)

		_, err := uc.Checkout(ctx, "sid", "sid")
		require.ErrorIs(t, err, e.ErrLoginRequired)
		assert.Len(t, storage.lines["sid"], 1)
	})

	t.Run("LoggedInClearsCartAndFormatsTotal", func(t *testing.T) {
		uc, storage := setup(t, true)

		res, err := uc.Checkout(ctx, "sid", "sid")
		require.NoError(t, err)
		assert.Equal(t, int64(5_319_00), res.Total)
		assert.Equal(t, "Sipariş başarıyla oluşturuldu! Toplam: 5.319,00₺", res.Message)
		assert.Empty(t, storage.lines["sid"])
	})
}

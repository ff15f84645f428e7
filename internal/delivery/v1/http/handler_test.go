package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type catalogUCMock struct {
	listFn func(ctx context.Context, req *usecase.ListProductsReq) (*usecase.ListProductsRes, error)
	getFn  func(ctx context.Context, id string) (*usecase.ProductInfo, error)
}

func (m *catalogUCMock) ListProducts(ctx context.Context, req *usecase.ListProductsReq) (*usecase.ListProductsRes, error) {
	return m.listFn(ctx, req)
}

func (m *catalogUCMock) GetProduct(ctx context.Context, id string) (*usecase.ProductInfo, error) {
	return m.getFn(ctx, id)
}

func (m *catalogUCMock) ListCategories(_ context.Context) ([]usecase.CategoryInfo, error) {
	return []usecase.CategoryInfo{{ID: "c1", Name: "Oyuncak", Slug: "oyuncak"}}, nil
}

type cartUCMock struct {
	checkoutFn func(ctx context.Context, owner, sessionID string) (*usecase.CheckoutRes, error)
	addFn      func(ctx context.Context, req *usecase.AddItemReq) (*usecase.CartMutationRes, error)
}

func (m *cartUCMock) GetCart(_ context.Context, _ string) (*usecase.CartRes, error) {
	return &usecase.CartRes{}, nil
}

func (m *cartUCMock) AddItem(ctx context.Context, req *usecase.AddItemReq) (*usecase.CartMutationRes, error) {
	return m.addFn(ctx, req)
}

func (m *cartUCMock) UpdateQuantity(_ context.Context, _ *usecase.UpdateQuantityReq) (*usecase.CartMutationRes, error) {
	return &usecase.CartMutationRes{Cart: &usecase.CartRes{}}, nil
}

func (m *cartUCMock) RemoveItem(_ context.Context, _, _ string) (*usecase.CartMutationRes, error) {
	return &usecase.CartMutationRes{Cart: &usecase.CartRes{}}, nil
}

func (m *cartUCMock) Clear(_ context.Context, _ string) error { return nil }

func (m *cartUCMock) Checkout(ctx context.Context, owner, sessionID string) (*usecase.CheckoutRes, error) {
	return m.checkoutFn(ctx, owner, sessionID)
}

type authUCMock struct {
	userByTokenFn  func(ctx context.Context, token string) (*usecase.UserInfo, error)
	sessionLoginFn func(ctx context.Context, req *usecase.SessionLoginReq) (*usecase.SessionRes, error)
}

func (m *authUCMock) Register(_ context.Context, _ *usecase.RegisterReq) (*usecase.TokenRes, error) {
	return nil, e.ErrInternalServerError
}

func (m *authUCMock) Login(_ context.Context, _ *usecase.LoginReq) (*usecase.TokenRes, error) {
	return nil, e.ErrInvalidCredentials
}

func (m *authUCMock) Profile(ctx context.Context, token string) (*usecase.UserInfo, error) {
	return m.UserByToken(ctx, token)
}

func (m *authUCMock) UserByToken(ctx context.Context, token string) (*usecase.UserInfo, error) {
	if m.userByTokenFn != nil {
		return m.userByTokenFn(ctx, token)
	}
	return nil, e.ErrTokenExpired
}

func (m *authUCMock) SessionLogin(ctx context.Context, req *usecase.SessionLoginReq) (*usecase.SessionRes, error) {
	return m.sessionLoginFn(ctx, req)
}

func (m *authUCMock) SessionLogout(_ context.Context, _ string) (*usecase.SessionRes, error) {
	return &usecase.SessionRes{}, nil
}

func (m *authUCMock) CurrentSession(_ context.Context, _ string) (*usecase.SessionRes, error) {
	return &usecase.SessionRes{}, nil
}

type adminUCMock struct {
	deleteFn func(ctx context.Context, id string) error
}

func (m *adminUCMock) CreateProduct(_ context.Context, req *usecase.ProductPayload) (*usecase.ProductInfo, error) {
	return &usecase.ProductInfo{ID: "new", Name: req.Name}, nil
}

func (m *adminUCMock) UpdateProduct(_ context.Context, id string, req *usecase.ProductPayload) (*usecase.ProductInfo, error) {
	return &usecase.ProductInfo{ID: id, Name: req.Name}, nil
}

func (m *adminUCMock) DeleteProduct(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *adminUCMock) AttachImage(_ context.Context, req *usecase.AttachImageReq) (*usecase.ProductInfo, error) {
	return &usecase.ProductInfo{ID: req.ProductID}, nil
}

func newTestServer(catalog *catalogUCMock, cart *cartUCMock, auth *authUCMock, admin *adminUCMock) *httptest.Server {
	mux := chi.NewRouter()
	router := NewRouter(mux, logger.NewSlogLogger())
	router.Init(catalog, cart, auth, admin)
	return httptest.NewServer(mux)
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestListProductsEndpoint(t *testing.T) {
	badge := "YENİ"
	catalog := &catalogUCMock{
		listFn: func(_ context.Context, req *usecase.ListProductsReq) (*usecase.ListProductsRes, error) {
			assert.Equal(t, 2, req.Page)
			assert.Equal(t, "oyuncak", req.Category)
			return &usecase.ListProductsRes{
				Products: []usecase.ProductInfo{{
					ID: "p1", Name: "robo Ürün", CurrentPrice: 5_319_00,
					OriginalPrice: 7_759_00, Rating: 5, Badge: &badge,
					Category: "oyuncak", InStock: true,
				}},
				TotalPages:  3,
				CurrentPage: 2,
				TotalCount:  41,
			}, nil
		},
	}
	srv := newTestServer(catalog, &cartUCMock{}, &authUCMock{}, &adminUCMock{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/?page=2&category=oyuncak")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body ProductListResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Products, 1)
	assert.Equal(t, 5319.00, body.Products[0].CurrentPrice)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, 2, body.CurrentPage)
	assert.Equal(t, 41, body.TotalCount)
	require.NotNil(t, body.Products[0].Badge)
	assert.Equal(t, "YENİ", *body.Products[0].Badge)
}

func TestGetProductNotFound(t *testing.T) {
	catalog := &catalogUCMock{
		getFn: func(_ context.Context, _ string) (*usecase.ProductInfo, error) {
			return nil, e.ErrProductNotFound
		},
	}
	srv := newTestServer(catalog, &cartUCMock{}, &authUCMock{}, &adminUCMock{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/ghost")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Product not found", body.Detail)
}

func TestAddToCartIssuesSessionCookie(t *testing.T) {
	cart := &cartUCMock{
		addFn: func(_ context.Context, req *usecase.AddItemReq) (*usecase.CartMutationRes, error) {
			assert.NotEmpty(t, req.Owner)
			return &usecase.CartMutationRes{
				Cart:    &usecase.CartRes{Subtotal: 100_00, Shipping: 29_90, Total: 129_90},
				Message: "robo Ürün sepete eklendi!",
			}, nil
		},
	}
	srv := newTestServer(&catalogUCMock{}, cart, &authUCMock{}, &adminUCMock{})
	defer srv.Close()

	payload, _ := json.Marshal(CartItemRequest{ProductID: "p1", Quantity: 1})
	resp, err := http.Post(srv.URL+"/api/cart/add", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var hasSid bool
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			hasSid = true
		}
	}
	assert.True(t, hasSid, "first request must set a session cookie")

	var body CartMutationResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "robo Ürün sepete eklendi!", body.Message)
	assert.Equal(t, 129.90, body.Cart.Total)
}

func TestCheckoutRequiresLogin(t *testing.T) {
	cart := &cartUCMock{
		checkoutFn: func(_ context.Context, _, _ string) (*usecase.CheckoutRes, error) {
			return nil, e.ErrLoginRequired
		},
	}
	srv := newTestServer(&catalogUCMock{}, cart, &authUCMock{}, &adminUCMock{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/cart/checkout", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Siparişi tamamlamak için giriş yapın", body.Detail)
}

func TestAdminRouteGuard(t *testing.T) {
	admin := &adminUCMock{
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}

	t.Run("NoToken", func(t *testing.T) {
		srv := newTestServer(&catalogUCMock{}, &cartUCMock{}, &authUCMock{}, admin)
		defer srv.Close()

		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/admin/products/p1", nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("CustomerRole", func(t *testing.T) {
		auth := &authUCMock{
			userByTokenFn: func(_ context.Context, _ string) (*usecase.UserInfo, error) {
				return &usecase.UserInfo{ID: "u1", Email: "ayse@example.com", Role: "user"}, nil
			},
		}
		srv := newTestServer(&catalogUCMock{}, &cartUCMock{}, auth, admin)
		defer srv.Close()

		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/admin/products/p1", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var body ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Admin access required", body.Detail)
	})

	t.Run("AdminRole", func(t *testing.T) {
		auth := &authUCMock{
			userByTokenFn: func(_ context.Context, _ string) (*usecase.UserInfo, error) {
				return &usecase.UserInfo{ID: "u1", Email: "admin@roboturkiye.com", Role: "admin"}, nil
			},
		}
		srv := newTestServer(&catalogUCMock{}, &cartUCMock{}, auth, admin)
		defer srv.Close()

		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/admin/products/p1", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestSessionLoginEndpoint(t *testing.T) {
	auth := &authUCMock{
		sessionLoginFn: func(_ context.Context, req *usecase.SessionLoginReq) (*usecase.SessionRes, error) {
			assert.NotEmpty(t, req.SessionID)
			return &usecase.SessionRes{Message: "Hoş geldiniz ayse!"}, nil
		},
	}
	srv := newTestServer(&catalogUCMock{}, &cartUCMock{}, auth, &adminUCMock{})
	defer srv.Close()

	payload, _ := json.Marshal(SessionLoginRequest{Email: "ayse@example.com", Password: "x"})
	resp, err := http.Post(srv.URL+"/api/session/login", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body SessionResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Hoş geldiniz ayse!", body.Message)
}

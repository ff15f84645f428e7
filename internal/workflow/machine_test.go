package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/infrastructure/storeapi"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type storeClientMock struct {
	loginFn         func(ctx context.Context, email, password string) (*storeapi.TokenResponse, error)
	listProductsFn  func(ctx context.Context) ([]storeapi.Product, error)
	createProductFn func(ctx context.Context, token string, payload *storeapi.ProductPayload) (*storeapi.Product, error)
	updateProductFn func(ctx context.Context, token, id string, payload *storeapi.ProductPayload) (*storeapi.Product, error)
	deleteProductFn func(ctx context.Context, token, id string) error
}

func (m *storeClientMock) Login(ctx context.Context, email, password string) (*storeapi.TokenResponse, error) {
	return m.loginFn(ctx, email, password)
}

func (m *storeClientMock) ListProducts(ctx context.Context) ([]storeapi.Product, error) {
	if m.listProductsFn != nil {
		return m.listProductsFn(ctx)
	}
	return nil, nil
}

func (m *storeClientMock) ListCategories(_ context.Context) ([]storeapi.Category, error) {
	return []storeapi.Category{{Slug: "elektrikli-ev-aletleri", Name: "Elektrikli Ev Aletleri"}}, nil
}

func (m *storeClientMock) CreateProduct(ctx context.Context, token string, payload *storeapi.ProductPayload) (*storeapi.Product, error) {
	return m.createProductFn(ctx, token, payload)
}

func (m *storeClientMock) UpdateProduct(ctx context.Context, token, id string, payload *storeapi.ProductPayload) (*storeapi.Product, error) {
	return m.updateProductFn(ctx, token, id, payload)
}

func (m *storeClientMock) DeleteProduct(ctx context.Context, token, id string) error {
	return m.deleteProductFn(ctx, token, id)
}

type credStoreMock struct {
	cred *domain.AdminCredential
}

func (m *credStoreMock) Load() (*domain.AdminCredential, error) { return m.cred, nil }

func (m *credStoreMock) Save(cred *domain.AdminCredential) error {
	m.cred = cred
	return nil
}

func (m *credStoreMock) Clear() error {
	m.cred = nil
	return nil
}

type confirmerMock struct {
	answer bool
	asked  int
}

func (m *confirmerMock) Confirm(_ string) bool {
	m.asked++
	return m.answer
}

func adminLogin(role string) func(context.Context, string, string) (*storeapi.TokenResponse, error) {
	return func(_ context.Context, _, _ string) (*storeapi.TokenResponse, error) {
		return &storeapi.TokenResponse{
			AccessToken: "token-1",
			TokenType:   "bearer",
			User:        storeapi.UserInfo{Name: "Admin", Role: role},
		}, nil
	}
}

func sampleProducts() []storeapi.Product {
	return []storeapi.Product{
		{ID: "p1", Name: "robo Ürün", CurrentPrice: 100, OriginalPrice: 100, Rating: 5, Category: "elektrikli-ev-aletleri", InStock: true},
	}
}

func TestSubmitCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminRoleEntersDashboard", func(t *testing.T) {
		client := &storeClientMock{
			loginFn: adminLogin(domain.RoleAdmin),
			listProductsFn: func(_ context.Context) ([]storeapi.Product, error) {
				return sampleProducts(), nil
			},
		}
		creds := &credStoreMock{}
		m := NewMachine(client, creds, &confirmerMock{}, logger.NewSlogLogger())

		require.NoError(t, m.SubmitCredentials(ctx, "admin@roboturkiye.com", "admin123"))
		assert.Equal(t, StateDashboard, m.State())
		assert.Len(t, m.Products(), 1)
		require.NotNil(t, creds.cred)
		assert.Equal(t, "token-1", creds.cred.Token)
	})

	t.Run("CustomerRoleStaysLoggedOut", func(t *testing.T) {
		client := &storeClientMock{loginFn: adminLogin("customer")}
		creds := &credStoreMock{}
		m := NewMachine(client, creds, &confirmerMock{}, logger.NewSlogLogger())

		err := m.SubmitCredentials(ctx, "ayse@example.com", "secret")
		require.ErrorIs(t, err, e.ErrNotAdmin)
		assert.Equal(t, StateLoggedOut, m.State())
		assert.Nil(t, creds.cred)
		assert.Equal(t, "Bu hesap admin yetkisine sahip değil!", UserMessage(err))
	})

	t.Run("ServerErrorSurfacesDetail", func(t *testing.T) {
		client := &storeClientMock{
			loginFn: func(_ context.Context, _, _ string) (*storeapi.TokenResponse, error) {
				return nil, &storeapi.APIError{StatusCode: 401, Detail: "Incorrect email or password"}
			},
		}
		m := NewMachine(client, &credStoreMock{}, &confirmerMock{}, logger.NewSlogLogger())

		err := m.SubmitCredentials(ctx, "admin@roboturkiye.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, StateLoggedOut, m.State())
		assert.Equal(t, "Incorrect email or password", UserMessage(err))
	})

	t.Run("InvalidFromDashboard", func(t *testing.T) {
		client := &storeClientMock{loginFn: adminLogin(domain.RoleAdmin)}
		m := NewMachine(client, &credStoreMock{}, &confirmerMock{}, logger.NewSlogLogger())

		require.NoError(t, m.SubmitCredentials(ctx, "admin@roboturkiye.com", "admin123"))
		err := m.SubmitCredentials(ctx, "admin@roboturkiye.com", "admin123")
		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestRehydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("StoredCredentialSkipsLogin", func(t *testing.T) {
		client := &storeClientMock{
			listProductsFn: func(_ context.Context) ([]storeapi.Product, error) {
				return sampleProducts(), nil
			},
		}
		creds := &credStoreMock{cred: domain.NewAdminCredential("token-1", domain.AdminUser{Name: "Admin", Role: domain.RoleAdmin})}
		m := NewMachine(client, creds, &confirmerMock{}, logger.NewSlogLogger())

		require.NoError(t, m.Rehydrate(ctx))
		assert.Equal(t, StateDashboard, m.State())
		assert.Len(t, m.Products(), 1)
	})

	t.Run("NoCredentialStartsLoggedOut", func(t *testing.T) {
		m := NewMachine(&storeClientMock{}, &credStoreMock{}, &confirmerMock{}, logger.NewSlogLogger())

		require.NoError(t, m.Rehydrate(ctx))
		assert.Equal(t, StateLoggedOut, m.State())
	})

	t.Run("RefreshFailureKeepsDashboard", func(t *testing.T) {
		client := &storeClientMock{
			listProductsFn: func(_ context.Context) ([]storeapi.Product, error) {
				return nil, errors.New("connection refused")
			},
		}
		creds := &credStoreMock{cred: domain.NewAdminCredential("token-1", domain.AdminUser{Role: domain.RoleAdmin})}
		m := NewMachine(client, creds, &confirmerMock{}, logger.NewSlogLogger())

		require.Error(t, m.Rehydrate(ctx))
		assert.Equal(t, StateDashboard, m.State())
	})
}

func dashboardMachine(t *testing.T, client *storeClientMock, confirm *confirmerMock) *Machine {
	t.Helper()

	if client.loginFn == nil {
		client.loginFn = adminLogin(domain.RoleAdmin)
	}
	if client.listProductsFn == nil {
		client.listProductsFn = func(_ context.Context) ([]storeapi.Product, error) {
			return sampleProducts(), nil
		}
	}

	m := NewMachine(client, &credStoreMock{}, confirm, logger.NewSlogLogger())
	require.NoError(t, m.SubmitCredentials(context.Background(), "admin@roboturkiye.com", "admin123"))

	return m
}

func TestEditingTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateFlow", func(t *testing.T) {
		client := &storeClientMock{
			createProductFn: func(_ context.Context, token string, payload *storeapi.ProductPayload) (*storeapi.Product, error) {
				assert.Equal(t, "token-1", token)
				return &storeapi.Product{ID: "p2", Name: payload.Name, Category: payload.Category,
					CurrentPrice: payload.CurrentPrice, OriginalPrice: payload.OriginalPrice,
					Rating: payload.Rating, InStock: payload.InStock}, nil
			},
		}
		m := dashboardMachine(t, client, &confirmerMock{})

		require.NoError(t, m.StartCreate())
		assert.Equal(t, StateEditing, m.State())

		form := m.Form()
		form.Name = "robo Yeni Ürün"
		form.Category = "elektrikli-ev-aletleri"
		form.OriginalPrice = "150"
		form.CurrentPrice = "99.90"
		form.Rating = "4"

		require.NoError(t, m.Submit(ctx))
		assert.Equal(t, StateDashboard, m.State())
		assert.Nil(t, m.Form())
		assert.Len(t, m.Products(), 2)
	})

	t.Run("EditFlowReplacesInPlace", func(t *testing.T) {
		client := &storeClientMock{
			updateProductFn: func(_ context.Context, _, id string, payload *storeapi.ProductPayload) (*storeapi.Product, error) {
				return &storeapi.Product{ID: id, Name: payload.Name, Category: payload.Category,
					CurrentPrice: payload.CurrentPrice, OriginalPrice: payload.OriginalPrice,
					Rating: payload.Rating, InStock: payload.InStock}, nil
			},
		}
		m := dashboardMachine(t, client, &confirmerMock{})

		require.NoError(t, m.StartEdit("p1"))
		m.Form().Name = "robo Ürün v2"

		require.NoError(t, m.Submit(ctx))
		require.Len(t, m.Products(), 1)
		assert.Equal(t, "robo Ürün v2", m.Products()[0].Name)
	})

	t.Run("EditUnknownProduct", func(t *testing.T) {
		m := dashboardMachine(t, &storeClientMock{}, &confirmerMock{})

		err := m.StartEdit("ghost")
		require.ErrorIs(t, err, e.ErrProductNotFound)
		assert.Equal(t, StateDashboard, m.State())
	})

	t.Run("SubmitFailureStaysEditing", func(t *testing.T) {
		client := &storeClientMock{
			createProductFn: func(_ context.Context, _ string, _ *storeapi.ProductPayload) (*storeapi.Product, error) {
				return nil, &storeapi.APIError{StatusCode: 500, Detail: "Internal server error"}
			},
		}
		m := dashboardMachine(t, client, &confirmerMock{})

		require.NoError(t, m.StartCreate())
		form := m.Form()
		form.Name = "robo Yeni Ürün"
		form.Category = "elektrikli-ev-aletleri"
		form.OriginalPrice = "150"
		form.CurrentPrice = "99.90"
		form.Rating = "4"

		require.Error(t, m.Submit(ctx))
		assert.Equal(t, StateEditing, m.State())
		assert.NotNil(t, m.Form())
	})

	t.Run("CancelDiscardsForm", func(t *testing.T) {
		m := dashboardMachine(t, &storeClientMock{}, &confirmerMock{})

		require.NoError(t, m.StartCreate())
		m.Form().Name = "draft"

		require.NoError(t, m.Cancel())
		assert.Equal(t, StateDashboard, m.State())
		assert.Nil(t, m.Form())
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("DeclinedConfirmationSkipsCall", func(t *testing.T) {
		client := &storeClientMock{
			deleteProductFn: func(_ context.Context, _, _ string) error {
				t.Fatal("delete must not be called without confirmation")
				return nil
			},
		}
		confirm := &confirmerMock{answer: false}
		m := dashboardMachine(t, client, confirm)

		require.NoError(t, m.DeleteProduct(ctx, "p1"))
		assert.Equal(t, 1, confirm.asked)
		assert.Len(t, m.Products(), 1)
	})

	t.Run("ConfirmedRemovesFromList", func(t *testing.T) {
		client := &storeClientMock{
			deleteProductFn: func(_ context.Context, _, id string) error {
				assert.Equal(t, "p1", id)
				return nil
			},
		}
		m := dashboardMachine(t, client, &confirmerMock{answer: true})

		require.NoError(t, m.DeleteProduct(ctx, "p1"))
		assert.Empty(t, m.Products())
	})

	t.Run("FailureLeavesListUnchanged", func(t *testing.T) {
		client := &storeClientMock{
			deleteProductFn: func(_ context.Context, _, _ string) error {
				return &storeapi.APIError{StatusCode: 404, Detail: "Product not found"}
			},
		}
		m := dashboardMachine(t, client, &confirmerMock{answer: true})

		require.Error(t, m.DeleteProduct(ctx, "p1"))
		assert.Len(t, m.Products(), 1)
	})
}

func TestLogout(t *testing.T) {
	m := dashboardMachine(t, &storeClientMock{}, &confirmerMock{})
	creds := m.creds.(*credStoreMock)
	require.NotNil(t, creds.cred)

	require.NoError(t, m.Logout())
	assert.Equal(t, StateLoggedOut, m.State())
	assert.Nil(t, m.Credential())
	assert.Nil(t, creds.cred)
	assert.Empty(t, m.Products())
}

// Package workflow — явный конечный автомат админ-панели каталога.
// Состояния и переходы заменяют строковые флаги представления;
// каждый переход проверяет текущее состояние и никогда не выполняет
// сетевой вызов из недопустимого состояния.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/infrastructure/storeapi"
	"github.com/robosite/storefront/pkg/e"
)

// State — состояние админ-трека.
type State string

const (
	StateLoggedOut State = "logged_out"
	StateDashboard State = "dashboard"
	StateEditing   State = "editing"
)

var ErrInvalidTransition = fmt.Errorf("invalid workflow transition")

// StoreClient — REST-клиент витрины, которым автомат выполняет переходы.
type StoreClient interface {
	Login(ctx context.Context, email, password string) (*storeapi.TokenResponse, error)
	ListProducts(ctx context.Context) ([]storeapi.Product, error)
	ListCategories(ctx context.Context) ([]storeapi.Category, error)
	CreateProduct(ctx context.Context, token string, payload *storeapi.ProductPayload) (*storeapi.Product, error)
	UpdateProduct(ctx context.Context, token, id string, payload *storeapi.ProductPayload) (*storeapi.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

// CredentialStore — долговременное хранилище учетных данных администратора.
type CredentialStore interface {
	Load() (*domain.AdminCredential, error)
	Save(cred *domain.AdminCredential) error
	Clear() error
}

// Confirmer запрашивает подтверждение деструктивного действия у оператора.
type Confirmer interface {
	Confirm(prompt string) bool
}

// UserMessage переводит ошибку перехода в сообщение для оператора.
// Серверный detail показывается как есть, сетевые сбои сворачиваются
// в общий текст без повтора запроса.
func UserMessage(err error) string {
	var apiErr *storeapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}

	if errors.Is(err, e.ErrNotAdmin) {
		return "Bu hesap admin yetkisine sahip değil!"
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return "Bağlantı hatası! Lütfen tekrar deneyin."
	}

	return err.Error()
}

package workflow

import (
	"context"
	"fmt"

	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/infrastructure/storeapi"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

// Machine — автомат админ-трека. Все мутации состояния проходят через
// его методы; ни один метод не оставляет автомат в промежуточном
// состоянии при ошибке перехода.
type Machine struct {
	state      State
	cred       *domain.AdminCredential
	products   []storeapi.Product
	categories []storeapi.Category
	form       *ProductForm
	editingID  string

	client  StoreClient
	creds   CredentialStore
	confirm Confirmer
	logger  logger.Logger
}

func NewMachine(client StoreClient, creds CredentialStore, confirm Confirmer, logger logger.Logger) *Machine {
	return &Machine{
		state:   StateLoggedOut,
		client:  client,
		creds:   creds,
		confirm: confirm,
		logger:  logger,
	}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) Credential() *domain.AdminCredential { return m.cred }

func (m *Machine) Products() []storeapi.Product { return m.products }

func (m *Machine) Categories() []storeapi.Category { return m.categories }

func (m *Machine) Form() *ProductForm { return m.form }

func (m *Machine) EditingID() string { return m.editingID }

// Rehydrate восстанавливает автомат из сохраненных учетных данных.
// Нечитаемое содержимое хранилище отбрасывает само, автомат в этом
// случае стартует разлогиненным. Неудача загрузки каталога не
// разлогинивает: токен сохранен, оператор может повторить вручную.
func (m *Machine) Rehydrate(ctx context.Context) error {
	const op = "Machine.Rehydrate"

	cred, err := m.creds.Load()
	if err != nil {
		return e.Wrap(op, err)
	}
	if cred == nil {
		m.state = StateLoggedOut
		return nil
	}

	m.cred = cred
	m.state = StateDashboard

	if err := m.refresh(ctx); err != nil {
		m.logger.Warnf("%s: catalog refresh failed: %v", op, err)
		return e.Wrap(op, err)
	}

	return nil
}

// SubmitCredentials выполняет вход администратора. Роль проверяется
// после успешной аутентификации: покупательский аккаунт с верным
// паролем остается разлогиненным.
func (m *Machine) SubmitCredentials(ctx context.Context, email, password string) error {
	const op = "Machine.SubmitCredentials"

	if m.state != StateLoggedOut {
		return e.Wrap(op, ErrInvalidTransition)
	}

	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return e.Wrap(op, err)
	}

	if res.User.Role != domain.RoleAdmin {
		m.logger.Warnf("%s: login rejected for %s: role %q", op, email, res.User.Role)
		return e.Wrap(op, e.ErrNotAdmin)
	}

	cred := domain.NewAdminCredential(res.AccessToken, domain.AdminUser{
		Name: res.User.Name,
		Role: res.User.Role,
	})
	if err := m.creds.Save(cred); err != nil {
		m.logger.Warnf("%s: failed to persist credential: %v", op, err)
	}

	m.cred = cred
	m.state = StateDashboard

	if err := m.refresh(ctx); err != nil {
		m.logger.Warnf("%s: catalog refresh failed: %v", op, err)
	}

	return nil
}

// StartCreate открывает пустую форму нового товара.
func (m *Machine) StartCreate() error {
	const op = "Machine.StartCreate"

	if m.state != StateDashboard {
		return e.Wrap(op, ErrInvalidTransition)
	}

	m.form = &ProductForm{Rating: "5", InStock: true}
	m.editingID = ""
	m.state = StateEditing

	return nil
}

// StartEdit открывает форму, заполненную существующим товаром.
func (m *Machine) StartEdit(id string) error {
	const op = "Machine.StartEdit"

	if m.state != StateDashboard {
		return e.Wrap(op, ErrInvalidTransition)
	}

	for _, p := range m.products {
		if p.ID == id {
			m.form = FormFromProduct(p)
			m.editingID = id
			m.state = StateEditing
			return nil
		}
	}

	return e.Wrap(op, e.ErrProductNotFound)
}

// Submit приводит форму к числам и отправляет создание либо обновление.
// При ошибке форма и состояние сохраняются, оператор правит и повторяет.
func (m *Machine) Submit(ctx context.Context) error {
	const op = "Machine.Submit"

	if m.state != StateEditing || m.form == nil {
		return e.Wrap(op, ErrInvalidTransition)
	}

	payload, err := m.form.Coerce()
	if err != nil {
		return e.Wrap(op, err)
	}

	var product *storeapi.Product
	if m.editingID == "" {
		product, err = m.client.CreateProduct(ctx, m.cred.Token, payload)
	} else {
		product, err = m.client.UpdateProduct(ctx, m.cred.Token, m.editingID, payload)
	}
	if err != nil {
		return e.Wrap(op, err)
	}

	m.applyProduct(*product)
	m.form = nil
	m.editingID = ""
	m.state = StateDashboard

	return nil
}

// Cancel отбрасывает форму без обращения к серверу.
func (m *Machine) Cancel() error {
	const op = "Machine.Cancel"

	if m.state != StateEditing {
		return e.Wrap(op, ErrInvalidTransition)
	}

	m.form = nil
	m.editingID = ""
	m.state = StateDashboard

	return nil
}

// DeleteProduct удаляет товар после интерактивного подтверждения.
// Отказ от подтверждения — не ошибка: вызов к серверу не выполняется,
// список не меняется.
func (m *Machine) DeleteProduct(ctx context.Context, id string) error {
	const op = "Machine.DeleteProduct"

	if m.state != StateDashboard {
		return e.Wrap(op, ErrInvalidTransition)
	}

	if !m.confirm.Confirm(fmt.Sprintf("Delete product %s?", id)) {
		return nil
	}

	if err := m.client.DeleteProduct(ctx, m.cred.Token, id); err != nil {
		return e.Wrap(op, err)
	}

	kept := m.products[:0]
	for _, p := range m.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.products = kept

	return nil
}

// Logout очищает сохраненные учетные данные и локальное состояние.
func (m *Machine) Logout() error {
	const op = "Machine.Logout"

	if m.state == StateLoggedOut {
		return e.Wrap(op, ErrInvalidTransition)
	}

	if err := m.creds.Clear(); err != nil {
		m.logger.Warnf("%s: failed to clear credential: %v", op, err)
	}

	m.cred = nil
	m.products = nil
	m.categories = nil
	m.form = nil
	m.editingID = ""
	m.state = StateLoggedOut

	return nil
}

// Refresh перечитывает каталог с сервера по запросу оператора.
func (m *Machine) Refresh(ctx context.Context) error {
	const op = "Machine.Refresh"

	if m.state != StateDashboard {
		return e.Wrap(op, ErrInvalidTransition)
	}

	if err := m.refresh(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (m *Machine) refresh(ctx context.Context) error {
	products, err := m.client.ListProducts(ctx)
	if err != nil {
		return err
	}

	categories, err := m.client.ListCategories(ctx)
	if err != nil {
		return err
	}

	m.products = products
	m.categories = categories

	return nil
}

// applyProduct заменяет товар в локальном списке или добавляет его в конец.
func (m *Machine) applyProduct(product storeapi.Product) {
	for i, p := range m.products {
		if p.ID == product.ID {
			m.products[i] = product
			return
		}
	}

	m.products = append(m.products, product)
}

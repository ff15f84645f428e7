// Package storeapi — HTTP-клиент REST API витрины для внешних
// инструментов (админ-консоль).
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

// APIError — ошибка уровня API с телом {detail}.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Login обменивает учетные данные на bearer-токен.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	const op = "storeapi.Login"

	var res TokenResponse
	err := c.call(ctx, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
	}, &res)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &res, nil
}

// ListProducts возвращает страницу каталога.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	const op = "storeapi.ListProducts"

	var res ProductListResponse
	if err := c.call(ctx, http.MethodGet, "/api/products/?limit=50", "", nil, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return res.Products, nil
}

// ListCategories возвращает справочник категорий для формы товара.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	const op = "storeapi.ListCategories"

	var res []Category
	if err := c.call(ctx, http.MethodGet, "/api/categories/", "", nil, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// CreateProduct создает товар от имени администратора.
func (c *Client) CreateProduct(ctx context.Context, token string, payload *ProductPayload) (*Product, error) {
	const op = "storeapi.CreateProduct"

	var res Product
	if err := c.call(ctx, http.MethodPost, "/api/admin/products", token, payload, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &res, nil
}

// UpdateProduct полностью обновляет товар.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, payload *ProductPayload) (*Product, error) {
	const op = "storeapi.UpdateProduct"

	var res Product
	if err := c.call(ctx, http.MethodPut, "/api/admin/products/"+id, token, payload, &res); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &res, nil
}

// DeleteProduct удаляет товар.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	const op = "storeapi.DeleteProduct"

	if err := c.call(ctx, http.MethodDelete, "/api/admin/products/"+id, token, nil, nil); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// call выполняет запрос и декодирует ответ. Не-2xx превращается в
// *APIError с серверным detail, чтобы вызывающий мог показать его как есть.
func (c *Client) call(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debugf("storeapi: %s %s -> %d", method, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: "request failed"}

		var errBody struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Detail != "" {
			apiErr.Detail = errBody.Detail
		}

		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

package http

import (
	"net/http"

	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
	"github.com/robosite/storefront/pkg/money"
)

// Корзина ключуется sid-cookie: покупатель собирает ее анонимно,
// вход требуется только на оформлении заказа.
type CartHandler struct {
	cartUC usecase.CartUC
	logger logger.Logger
}

func NewCartHandler(cartUC usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUC: cartUC, logger: logger}
}

// getCart
//
//	@Summary	Снимок корзины с расчетами
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart/ [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := c.cartUC.GetCart(r.Context(), sessionIDFromCtx(r.Context()))
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// addToCart
//
//	@Summary		Добавление товара в корзину
//	@Description	Количество по умолчанию 1, повторное добавление увеличивает количество
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CartItemRequest	true	"Товар и количество"
//	@Success		200		{object}	CartMutationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/cart/add [post]
func (c *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := c.cartUC.AddItem(r.Context(), usecase.NewAddItemReq(
		sessionIDFromCtx(r.Context()), req.ProductID, req.Quantity,
	))
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CartMutationResponse{
		Message: res.Message,
		Cart:    toCartResponse(res.Cart),
	})
}

// updateCartItem
//
//	@Summary		Установка количества позиции
//	@Description	Нулевое количество удаляет позицию, отсутствующая позиция — no-op
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CartItemRequest	true	"Товар и новое количество"
//	@Success		200		{object}	CartMutationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/cart/update [put]
func (c *CartHandler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := c.cartUC.UpdateQuantity(r.Context(), usecase.NewUpdateQuantityReq(
		sessionIDFromCtx(r.Context()), req.ProductID, req.Quantity,
	))
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CartMutationResponse{
		Message: res.Message,
		Cart:    toCartResponse(res.Cart),
	})
}

// removeFromCart
//
//	@Summary	Удаление позиции из корзины
//	@Tags		cart
//	@Produce	json
//	@Param		product_id	query		string	true	"ID товара"
//	@Success	200			{object}	CartMutationResponse
//	@Router		/cart/remove [delete]
func (c *CartHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	res, err := c.cartUC.RemoveItem(r.Context(), sessionIDFromCtx(r.Context()), productID)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CartMutationResponse{
		Message: res.Message,
		Cart:    toCartResponse(res.Cart),
	})
}

// checkout
//
//	@Summary		Оформление заказа
//	@Description	Требует вошедшей покупательской сессии, очищает корзину
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CheckoutResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/cart/checkout [post]
func (c *CartHandler) checkout(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromCtx(r.Context())

	res, err := c.cartUC.Checkout(r.Context(), sid, sid)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CheckoutResponse{
		Message: res.Message,
		Total:   money.ToFloat(res.Total),
	})
}

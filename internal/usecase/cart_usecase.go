package usecase

import (
	"context"
	"fmt"

	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
	"github.com/robosite/storefront/pkg/money"
)

// Порог бесплатной доставки и фиксированная ставка, в kuruş.
// Константы витрины, не настраиваются в рантайме.
const (
	freeShippingThreshold = 500_00
	shippingFee           = 29_90
)

// CartUseCase реализует корзину: слияние количеств, пересчет сумм
// и полную перезапись снимка в durable-хранилище на каждую мутацию.
type CartUseCase struct {
	storage CartStorage
	catalog CatalogUC
	session SessionStorage
	logger  logger.Logger
}

func NewCartUC(storage CartStorage, catalog CatalogUC, session SessionStorage, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		storage: storage,
		catalog: catalog,
		session: session,
		logger:  logger,
	}
}

// GetCart возвращает текущий снимок корзины с расчетами.
func (c *CartUseCase) GetCart(ctx context.Context, owner string) (*CartRes, error) {
	const op = "CartUseCase.GetCart"

	lines, err := c.storage.Load(ctx, owner)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return buildCartRes(lines), nil
}

// AddItem добавляет товар в корзину. Существующая позиция увеличивается
// на Quantity (по умолчанию 1), новая создается со снимком товара.
func (c *CartUseCase) AddItem(ctx context.Context, req *AddItemReq) (*CartMutationRes, error) {
	const op = "CartUseCase.AddItem"

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, e.ErrInvalidQuantity
	}

	product, err := c.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !product.InStock {
		return nil, e.ErrOutOfStock
	}

	lines, err := c.storage.Load(ctx, req.Owner)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var message string
	merged := false
	for i := range lines {
		if lines[i].Product.ID == req.ProductID {
			lines[i].Quantity += qty
			message = fmt.Sprintf("%s sepete eklendi! (%d adet)", product.Name, lines[i].Quantity)
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, *domain.NewCartLine(*DomainFromProductInfo(product), qty))
		message = fmt.Sprintf("%s sepete eklendi!", product.Name)
	}

	if err := c.storage.Save(ctx, req.Owner, lines); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &CartMutationRes{Cart: buildCartRes(lines), Message: message}, nil
}

// UpdateQuantity устанавливает количество позиции. Ноль делегируется
// удалению; отсутствующая позиция — no-op без уведомления.
func (c *CartUseCase) UpdateQuantity(ctx context.Context, req *UpdateQuantityReq) (*CartMutationRes, error) {
	const op = "CartUseCase.UpdateQuantity"

	if req.Quantity < 0 {
		return nil, e.ErrInvalidQuantity
	}
	if req.Quantity == 0 {
		return c.RemoveItem(ctx, req.Owner, req.ProductID)
	}

	lines, err := c.storage.Load(ctx, req.Owner)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	changed := false
	for i := range lines {
		if lines[i].Product.ID == req.ProductID {
			lines[i].Quantity = req.Quantity
			changed = true
			break
		}
	}
	if !changed {
		return &CartMutationRes{Cart: buildCartRes(lines)}, nil
	}

	if err := c.storage.Save(ctx, req.Owner, lines); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &CartMutationRes{Cart: buildCartRes(lines)}, nil
}

// RemoveItem удаляет позицию, если она есть. Отсутствующая позиция —
// no-op без уведомления.
func (c *CartUseCase) RemoveItem(ctx context.Context, owner, productID string) (*CartMutationRes, error) {
	const op = "CartUseCase.RemoveItem"

	lines, err := c.storage.Load(ctx, owner)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var message string
	kept := lines[:0]
	for _, line := range lines {
		if line.Product.ID == productID {
			message = fmt.Sprintf("%s sepetten çıkarıldı", line.Product.Name)
			continue
		}
		kept = append(kept, line)
	}

	if message == "" {
		return &CartMutationRes{Cart: buildCartRes(kept)}, nil
	}

	if err := c.storage.Save(ctx, owner, kept); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &CartMutationRes{Cart: buildCartRes(kept), Message: message}, nil
}

// Clear опустошает корзину (после оформления заказа).
func (c *CartUseCase) Clear(ctx context.Context, owner string) error {
	const op = "CartUseCase.Clear"

	if err := c.storage.Clear(ctx, owner); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Checkout оформляет mock-заказ: требует входа, считает итог и чистит
// корзину. Запись заказа нигде не создается.
func (c *CartUseCase) Checkout(ctx context.Context, owner, sessionID string) (*CheckoutRes, error) {
	const op = "CartUseCase.Checkout"

	session, err := c.session.Load(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !session.IsLoggedIn {
		return nil, e.ErrLoginRequired
	}

	lines, err := c.storage.Load(ctx, owner)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	cart := buildCartRes(lines)

	if err := c.storage.Clear(ctx, owner); err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("mock order completed, owner: %s, total: %d kurus", owner, cart.Total)

	return &CheckoutRes{
		Total:   cart.Total,
		Message: fmt.Sprintf("Sipariş başarıyla oluşturuldu! Toplam: %s", money.FormatTRY(cart.Total)),
	}, nil
}

// ComputeShipping возвращает стоимость доставки в kuruş: бесплатно
// строго выше порога, иначе фиксированная ставка. Ровно на пороге
// доставка платная.
func ComputeShipping(subtotal int64) int64 {
	if subtotal > freeShippingThreshold {
		return 0
	}
	return shippingFee
}

// buildCartRes пересчитывает суммы снимка корзины.
func buildCartRes(lines []domain.CartLine) *CartRes {
	infos := make([]CartLineInfo, 0, len(lines))
	var subtotal int64
	for _, line := range lines {
		infos = append(infos, CartLineInfo{
			Product:  *ProductInfoFromDomain(&line.Product),
			Quantity: line.Quantity,
		})
		subtotal += line.Subtotal()
	}

	var shipping int64
	if len(lines) > 0 {
		shipping = ComputeShipping(subtotal)
	}

	return &CartRes{
		Lines:    infos,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

package usecase

import (
	"context"
	"encoding/json"
	"strings"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
	"github.com/robosite/storefront/pkg/tr"
)

// AdminCatalogUseCase реализует бизнес-логику управления каталогом.
// Каждая мутация пишет запись в outbox в одной транзакции с изменением
// товара, воркер затем публикует событие в Kafka.
type AdminCatalogUseCase struct {
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	imagesInfra ImagesInfra
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewAdminCatalogUC(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *AdminCatalogUseCase {
	return &AdminCatalogUseCase{
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		imagesInfra: imagesInfra,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// CreateProduct обрабатывает создание нового товара с записью события в outbox.
func (a *AdminCatalogUseCase) CreateProduct(ctx context.Context, req *ProductPayload) (*ProductInfo, error) {
	const op = "AdminCatalogUseCase.CreateProduct"

	var err error
	err = validatePayload(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	product, err := a.productRepo.Create(ctx, payloadToDomain(uuid.NewString(), req))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = a.recordEvent(ctx, ProductCreated, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return ProductInfoFromDomain(product), nil
}

// UpdateProduct обрабатывает полное обновление товара по id.
func (a *AdminCatalogUseCase) UpdateProduct(ctx context.Context, id string, req *ProductPayload) (*ProductInfo, error) {
	const op = "AdminCatalogUseCase.UpdateProduct"

	var err error
	err = validatePayload(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	product, err := a.productRepo.Update(ctx, payloadToDomain(id, req))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		err = e.ErrProductNotFound
		return nil, err
	}

	err = a.recordEvent(ctx, ProductUpdated, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := a.cacheRepo.DeleteProducts(ctx, []string{product.ID}); err != nil {
		a.logger.Warnf("Failed to delete products from cache: %v", e.Wrap(op, err))
	}

	return ProductInfoFromDomain(product), nil
}

// DeleteProduct обрабатывает удаление товара по id.
func (a *AdminCatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "AdminCatalogUseCase.DeleteProduct"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	deleted, err := a.productRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !deleted {
		err = e.ErrProductNotFound
		return err
	}

	err = a.recordDeleteEvent(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := a.cacheRepo.DeleteProducts(ctx, []string{id}); err != nil {
		a.logger.Warnf("Failed to delete products from cache: %v", e.Wrap(op, err))
	}

	return nil
}

// AttachImage загружает изображение товара в объектное хранилище и
// привязывает публичный URL к товару.
func (a *AdminCatalogUseCase) AttachImage(ctx context.Context, req *AttachImageReq) (*ProductInfo, error) {
	const op = "AdminCatalogUseCase.AttachImage"

	var (
		uploadRes *UploadImageRes
		uploaded  bool
	)

	var err error
	uploadRes, err = a.imagesInfra.UploadImage(ctx, NewUploadImageReq(req.ProductID, req.Image))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	uploaded = true

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженного изображения
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded && uploadRes != nil {
				a.logger.Warnf(
					"Cleaning up orphaned image after transaction failure. product_id: %s, error: %v",
					req.ProductID,
					e.Wrap(op, err),
				)

				a.imagesInfra.CleanupImages([]string{uploadRes.Key})
			}
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction())

	product, err := a.productRepo.SetImage(ctx, req.ProductID, uploadRes.URL)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		err = e.ErrProductNotFound
		return nil, err
	}

	err = a.recordEvent(ctx, ProductUpdated, DomainFromProductInfo(product))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := a.cacheRepo.DeleteProducts(ctx, []string{req.ProductID}); err != nil {
		a.logger.Warnf("Failed to delete products from cache: %v", e.Wrap(op, err))
	}

	return product, nil
}

// recordEvent сериализует снимок товара и пишет событие в outbox.
func (a *AdminCatalogUseCase) recordEvent(ctx context.Context, eventType OutboxEventType, product *domain.Product) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(&ProductChangeEvent{
		EventID:        eventID,
		EventTimestamp: nowUnix(),
		Operation:      operationOf(eventType),
		ProductID:      product.ID,
		Product: &EventProduct{
			ID:            product.ID,
			Name:          product.Name,
			Category:      product.Category,
			OriginalPrice: product.OriginalPrice,
			CurrentPrice:  product.CurrentPrice,
			InStock:       product.InStock,
		},
	})
	if err != nil {
		return err
	}

	_, err = a.outboxRepo.Create(ctx, NewOutboxEvent(eventID, eventType, product.ID, payload))

	return err
}

// recordDeleteEvent пишет событие удаления, снимка товара в нем нет.
func (a *AdminCatalogUseCase) recordDeleteEvent(ctx context.Context, productID string) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(&ProductChangeEvent{
		EventID:        eventID,
		EventTimestamp: nowUnix(),
		Operation:      operationOf(ProductDeleted),
		ProductID:      productID,
	})
	if err != nil {
		return err
	}

	_, err = a.outboxRepo.Create(ctx, NewOutboxEvent(eventID, ProductDeleted, productID, payload))

	return err
}

// validatePayload проверяет обязательные поля и диапазоны формы товара.
func validatePayload(req *ProductPayload) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}
	if req.Category == "" {
		return e.ErrMissingFields
	}
	if req.OriginalPrice < 0 || req.CurrentPrice < 0 {
		return e.ErrInvalidPrice
	}
	if req.Rating < 1 || req.Rating > 5 {
		return e.ErrInvalidRating
	}

	return nil
}

func payloadToDomain(id string, req *ProductPayload) *domain.Product {
	return domain.NewProduct(
		id,
		req.Name,
		req.Description,
		req.Image,
		req.OriginalPrice,
		req.CurrentPrice,
		req.Rating,
		req.Badge,
		req.Category,
		req.InStock,
	)
}

func operationOf(eventType OutboxEventType) string {
	switch eventType {
	case ProductCreated:
		return "created"
	case ProductUpdated:
		return "updated"
	default:
		return "deleted"
	}
}

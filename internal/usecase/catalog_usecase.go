package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

// CatalogUseCase реализует чтение каталога: пагинация, фильтры,
// сквозной кэш и резервный список при недоступном хранилище.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	cacheRepo    CacheRepository
	fallback     []ProductInfo
	logger       logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		fallback:     FallbackProducts(),
		logger:       logger,
	}
}

// ListProducts возвращает страницу каталога. При ошибке хранилища отдает
// резервный список (с учетом фильтров), помечая ответ как Fallback.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 50 {
		limit = 20
	}

	filter := &ListFilter{
		Offset:   (page - 1) * limit,
		Limit:    limit,
		Category: req.Category,
		Search:   req.Search,
	}

	products, totalCount, err := c.productRepo.List(ctx, filter)
	if err != nil {
		c.logger.Warnf("catalog storage unavailable, serving fallback list: %v", e.Wrap(op, err))
		return c.fallbackPage(filter, page), nil
	}

	// Фоновое добавление продуктов в кэш
	if len(products) > 0 {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := c.cacheRepo.SetProducts(bgCtx, products); err != nil {
				c.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
			}
		}()
	}

	return &ListProductsRes{
		Products:    products,
		TotalPages:  totalPages(totalCount, limit),
		CurrentPage: page,
		TotalCount:  totalCount,
	}, nil
}

// GetProduct возвращает товар по идентификатору, сперва проверяя кэш.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id string) (*ProductInfo, error) {
	const op = "CatalogUseCase.GetProduct"

	cached, err := c.cacheRepo.GetProducts(ctx, []string{id})
	if err == nil {
		if product, ok := cached[id]; ok {
			return &product, nil
		}
	}

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, e.ErrProductNotFound
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetProducts(bgCtx, []ProductInfo{*product}); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// ListCategories возвращает справочник категорий для селектора формы.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]CategoryInfo, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]CategoryInfo, 0, len(categories))
	for _, cat := range categories {
		result = append(result, CategoryInfo{
			ID:          cat.ID,
			Name:        cat.Name,
			Slug:        cat.Slug,
			Description: cat.Description,
		})
	}

	return result, nil
}

// fallbackPage применяет фильтры и пагинацию к резервному списку.
func (c *CatalogUseCase) fallbackPage(filter *ListFilter, page int) *ListProductsRes {
	matched := make([]ProductInfo, 0, len(c.fallback))
	for _, p := range c.fallback {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	from := filter.Offset
	if from > total {
		from = total
	}
	to := from + filter.Limit
	if to > total {
		to = total
	}

	return &ListProductsRes{
		Products:    matched[from:to],
		TotalPages:  totalPages(total, filter.Limit),
		CurrentPage: page,
		TotalCount:  total,
		Fallback:    true,
	}
}

func totalPages(totalCount, limit int) int {
	if totalCount == 0 {
		return 0
	}
	return (totalCount + limit - 1) / limit
}

package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/internal/repository/pgdb/converter"
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/tr"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает страницу каталога и общее число товаров под фильтром.
// Поиск регистронезависимый по названию и описанию.
func (p *ProductRepo) List(ctx context.Context, filter *usecase.ListFilter) ([]usecase.ProductInfo, int, error) {
	query := `
		SELECT
			id, name, description, image, original_price, current_price,
			rating, badge, category, in_stock, created_at, updated_at,
			COUNT(*) OVER() AS total_count
		FROM products
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id
		OFFSET $3 LIMIT $4
	`

	rows, err := p.pool.Query(ctx, query, filter.Category, filter.Search, filter.Offset, filter.Limit)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var total int
	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Image,
			&model.OriginalPrice, &model.CurrentPrice, &model.Rating, &model.Badge,
			&model.Category, &model.InStock, &model.CreatedAt, &model.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *usecase.ProductInfoFromDomain(p.conv.ToEntity(&model)))
	}

	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	// total_count пустой выборки добирается отдельным запросом
	if len(result) == 0 {
		countQuery := `
			SELECT COUNT(*)
			FROM products
			WHERE ($1 = '' OR category = $1)
			  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		`
		if err := p.pool.QueryRow(ctx, countQuery, filter.Category, filter.Search).Scan(&total); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return result, total, nil
}

// GetByID возвращает товар по идентификатору, nil если товара нет.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*usecase.ProductInfo, error) {
	query := `
		SELECT
			id, name, description, image, original_price, current_price,
			rating, badge, category, in_stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Description, &model.Image,
		&model.OriginalPrice, &model.CurrentPrice, &model.Rating, &model.Badge,
		&model.Category, &model.InStock, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.ProductInfoFromDomain(p.conv.ToEntity(&model)), nil
}

// Create вставляет новый товар в рамках транзакции из контекста.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (
			id, name, description, image, original_price, current_price,
			rating, badge, category, in_stock
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.ID, model.Name, model.Description, model.Image,
		model.OriginalPrice, model.CurrentPrice, model.Rating, model.Badge,
		model.Category, model.InStock,
	).Scan(&model.CreatedAt, &model.UpdatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: product with id %s already exists", whereami.WhereAmI(), product.ID)
		}

		return nil, fmt.Errorf("%s: failed to insert product: %w", whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Update полностью перезаписывает товар, nil если товара нет.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		UPDATE products
		SET
			name = $2,
			description = $3,
			image = $4,
			original_price = $5,
			current_price = $6,
			rating = $7,
			badge = $8,
			category = $9,
			in_stock = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.ID, model.Name, model.Description, model.Image,
		model.OriginalPrice, model.CurrentPrice, model.Rating, model.Badge,
		model.Category, model.InStock,
	).Scan(&model.CreatedAt, &model.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Delete удаляет товар, сообщая, существовала ли запись.
func (p *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return result.RowsAffected() > 0, nil
}

// SetImage привязывает URL изображения к товару и возвращает обновлённый
// снимок, nil если товара нет. Снимок читается через RETURNING той же
// транзакцией: отдельный запрос из пула увидел бы ещё не закоммиченную
// строку в старом состоянии.
func (p *ProductRepo) SetImage(ctx context.Context, id, imageURL string) (*usecase.ProductInfo, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET image = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING
			id, name, description, image, original_price, current_price,
			rating, badge, category, in_stock, created_at, updated_at
	`

	var model converter.ProductModel
	if err := tx.QueryRow(ctx, query, id, imageURL).Scan(
		&model.ID, &model.Name, &model.Description, &model.Image,
		&model.OriginalPrice, &model.CurrentPrice, &model.Rating, &model.Badge,
		&model.Category, &model.InStock, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.ProductInfoFromDomain(p.conv.ToEntity(&model)), nil
}

// postgresDuplicate распознает нарушение unique-ограничения (23505).
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

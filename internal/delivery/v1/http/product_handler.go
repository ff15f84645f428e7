package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/logger"
)

type ProductHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewProductHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, logger: logger}
}

// listProducts
//
//	@Summary		Страница каталога
//	@Description	Возвращает товары с пагинацией, фильтром по категории и поиском
//	@Tags			products
//	@Produce		json
//	@Param			page		query		int		false	"Номер страницы"
//	@Param			limit		query		int		false	"Товаров на странице (1-50)"
//	@Param			category	query		string	false	"Slug категории"
//	@Param			search		query		string	false	"Поиск по названию и описанию"
//	@Success		200			{object}	ProductListResponse
//	@Router			/products/ [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	req := usecase.NewListProductsReq(
		queryInt(r, "page", 1),
		queryInt(r, "limit", 20),
		r.URL.Query().Get("category"),
		r.URL.Query().Get("search"),
	)

	res, err := p.catalogUC.ListProducts(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductListResponse(res))
}

// getProduct
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := p.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

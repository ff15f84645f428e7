package http

import (
	"net/http"

	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/logger"
)

type CategoryHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCategoryHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{catalogUC: catalogUC, logger: logger}
}

// listCategories
//
//	@Summary	Справочник категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	CategoryResponse
//	@Router		/categories/ [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalogUC.ListCategories(r.Context())
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponses(categories))
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type AdminHandler struct {
	adminUC usecase.AdminCatalogUC
	logger  logger.Logger
}

func NewAdminHandler(adminUC usecase.AdminCatalogUC, logger logger.Logger) *AdminHandler {
	return &AdminHandler{adminUC: adminUC, logger: logger}
}

// createProduct
//
//	@Summary	Создание товара
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		ProductRequest	true	"Данные товара"
//	@Success	201		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Router		/admin/products [post]
func (a *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	product, err := a.adminUC.CreateProduct(r.Context(), toProductPayload(&req))
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary	Полное обновление товара
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID товара"
//	@Param		body	body		ProductRequest	true	"Данные товара"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/admin/products/{id} [put]
func (a *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	product, err := a.adminUC.UpdateProduct(r.Context(), id, toProductPayload(&req))
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	map[string]string
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/products/{id} [delete]
func (a *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.adminUC.DeleteProduct(r.Context(), id); err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

// attachImage
//
//	@Summary		Загрузка изображения товара
//	@Description	Принимает multipart-файл image, возвращает товар с публичным URL
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string	true	"ID товара"
//	@Param			image	formData	file	true	"Изображение"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/admin/products/{id}/image [post]
func (a *AdminHandler) attachImage(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 20 << 20
		maxMemory           = 16 << 20
	)

	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		WriteError(w, e.ErrMissingFields)
		return
	}

	image, err := parseImage(files[0])
	if err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := a.adminUC.AttachImage(r.Context(), &usecase.AttachImageReq{
		ProductID: id,
		Image:     *image,
	})
	if err != nil {
		a.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

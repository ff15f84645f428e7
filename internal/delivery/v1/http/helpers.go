package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/e"
)

// ErrorResponse — тело ошибки на проводе.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewErrorResponse(detail string) *ErrorResponse {
	return &ErrorResponse{Detail: detail}
}

// ToHTTPResponse сопоставляет доменные ошибки статусам и текстам ответа.
// Неизвестные ошибки не протекают наружу.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrProductNameRequired):
		return http.StatusBadRequest, e.ErrProductNameRequired.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidRating):
		return http.StatusBadRequest, e.ErrInvalidRating.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrOutOfStock):
		return http.StatusBadRequest, e.ErrOutOfStock.Error()
	case errors.Is(err, e.ErrEmailTaken):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, e.ErrEmptyCredentials):
		return http.StatusBadRequest, e.ErrEmptyCredentials.Error()
	case errors.Is(err, e.ErrUnsupportedMedia):
		return http.StatusBadRequest, e.ErrUnsupportedMedia.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect email or password"
	case errors.Is(err, e.ErrTokenExpired):
		return http.StatusUnauthorized, e.ErrTokenExpired.Error()
	case errors.Is(err, e.ErrLoginRequired):
		return http.StatusUnauthorized, "Siparişi tamamlamak için giriş yapın"
	case errors.Is(err, e.ErrNotAdmin):
		return http.StatusForbidden, "Admin access required"
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, e.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса в v, пустое или битое тело — 400.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}

	return nil
}

// queryInt читает целочисленный query-параметр, отсутствие — значение по умолчанию.
func queryInt(r *http.Request, key string, defaultValue int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}

	return n
}

// bearerToken извлекает bearer-токен из заголовка Authorization.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

// parseImage читает одно изображение из multipart-формы.
func parseImage(fh *multipart.FileHeader) (*usecase.ProductImage, error) {
	const maxFileSize = 15 << 20

	data, mimeType, err := readFile(fh, maxFileSize)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}

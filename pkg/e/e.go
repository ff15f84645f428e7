package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки хранилищ
	ErrMalformedStoredData  = fmt.Errorf("malformed stored data")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidRating       = fmt.Errorf("rating must be between 1 and 5")
	ErrInvalidQuantity     = fmt.Errorf("quantity must not be negative")
	ErrOutOfStock          = fmt.Errorf("product is out of stock")
	ErrEmailTaken          = fmt.Errorf("email already registered")
	ErrEmptyCredentials    = fmt.Errorf("email and password are required")
	ErrExpectedMultipart   = fmt.Errorf("expected multipart/form-data")
	ErrUnsupportedMedia    = fmt.Errorf("unsupported media type")
	ErrFileTooLarge        = fmt.Errorf("file too large")

	// 401 / 403
	ErrInvalidCredentials = fmt.Errorf("incorrect email or password")
	ErrTokenExpired       = fmt.Errorf("token is invalid or expired")
	ErrNotAdmin           = fmt.Errorf("account lacks admin privileges")
	ErrLoginRequired      = fmt.Errorf("login required")

	// 404
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrUserNotFound    = fmt.Errorf("user not found")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

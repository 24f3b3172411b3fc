// Package errors provides custom error types for the price monitor.
// All failure classes the pipeline can produce use AppError so that
// callers can branch on the code with errors.As instead of matching
// message strings, and so the HTTP layer can map them to responses.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Is reports whether target is an AppError with the same code, so
// sentinel values work with errors.Is through Wrap/WithMessage copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Fetch errors.
var (
	ErrFetchFailed  = &AppError{Code: "FETCH_FAILED", Message: "Failed to fetch product page", StatusCode: http.StatusBadGateway}
	ErrEmptyContent = &AppError{Code: "EMPTY_CONTENT", Message: "Empty page content", StatusCode: http.StatusBadGateway}
)

// Extraction errors.
var (
	ErrPageStructure     = &AppError{Code: "PAGE_STRUCTURE", Message: "Page structure did not match expected layout", StatusCode: http.StatusUnprocessableEntity}
	ErrPriceNodesMissing = &AppError{Code: "PRICE_NODES_MISSING", Message: "Fewer price nodes than expected on page", StatusCode: http.StatusUnprocessableEntity}
	ErrPriceParse        = &AppError{Code: "PRICE_PARSE", Message: "Price text is not a valid positive integer", StatusCode: http.StatusUnprocessableEntity}
)

// Notification errors.
var (
	ErrNotifyFailed = &AppError{Code: "NOTIFY_FAILED", Message: "Failed to deliver notification", StatusCode: http.StatusBadGateway}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Product errors.
var (
	ErrProductNotFound = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "No observations recorded for this product", StatusCode: http.StatusNotFound}
)

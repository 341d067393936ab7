// Package errors provides custom error types for the stockfolio API.
// All service-layer errors should use AppError so that responses carry a
// stable code and a human-readable message, and never leak internal details.
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

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred", StatusCode: http.StatusInternalServerError}
)

// Position errors.
var (
	ErrDuplicateSymbol = &AppError{Code: "DUPLICATE_SYMBOL", Message: "Symbol already exists", StatusCode: http.StatusBadRequest}
	ErrSymbolNotFound  = &AppError{Code: "SYMBOL_NOT_FOUND", Message: "Symbol not found", StatusCode: http.StatusBadRequest}
)

package apperror

import (
	"errors"
	"net/http"
)

// Stable machine-readable error codes returned to API clients.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodePriceMismatch      = "PRICE_MISMATCH"
	CodePixAmountMismatch  = "PIX_AMOUNT_MISMATCH"
	CodeInsufficientCredit = "INSUFFICIENT_CREDIT"
	CodeInsufficientStock  = "INSUFFICIENT_STOCK"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError represents an application error with an HTTP status code and a
// stable machine-readable code. Details carries figure pairs for business
// rejections (expected vs resolved price, required vs available credit).
type AppError struct {
	Status  int                    `json:"-"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Errors  []FieldError           `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Unauthorized"}
	ErrForbidden      = &AppError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "Forbidden"}
	ErrBadRequest     = &AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: "Bad request"}
	ErrInternalServer = &AppError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error"}
)

// New creates a new application error
func New(status int, code, message string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a business rejection carrying extra figures for
// client re-sync.
func NewWithDetails(status int, code, message string, details map[string]interface{}) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible. Unexpected
// internal faults are surfaced as an opaque failure without detail.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "Internal server error",
	}
}

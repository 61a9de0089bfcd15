package errors

import (
	"errors"
	"net/http"
	"strings"
)

// Error codes carried in the "error" field of a JSON error body.
const (
	CodeValidation   = "validation_error"
	CodeInvalidID    = "invalid_id"
	CodeInvalidBody  = "invalid_body"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeInternal     = "internal_error"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given status, code and message.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors
var (
	ErrBadRequest   = func(code, msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, code, msg) }
	ErrNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, CodeNotFound, msg) }
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, msg) }
	ErrInternal     = func() *HTTPError {
		return NewHTTPError(http.StatusInternalServerError, CodeInternal, "internal server error")
	}
)

// ValidationError reports rejected input. Fields names the offending JSON fields.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

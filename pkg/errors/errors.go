// Package errors defines the structured application error type used across the
// Resguardo service, mapping error codes to HTTP status codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code classifies an application error.
type Code string

const (
	CodeInvalidRequest     Code = "invalid_request"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodePartialFailure     Code = "partial_failure"
	CodeExternalService    Code = "external_service"
	CodeServiceUnavailable Code = "service_unavailable"
	CodeInternal           Code = "internal_error"
)

// AppError is a structured application error carrying a stable code, the HTTP
// status it maps to, a user-facing message, optional details, and the wrapped
// cause.
type AppError struct {
	Code       Code
	HTTPStatus int
	Message    string
	Details    map[string]interface{}
	Err        error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError returns a copy of the error with cause attached.
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// WithMessage returns a copy of the error with the message replaced.
func (e *AppError) WithMessage(msg string) *AppError {
	clone := *e
	clone.Message = msg
	return &clone
}

// WithMessagef returns a copy of the error with a formatted message.
func (e *AppError) WithMessagef(format string, args ...interface{}) *AppError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// WithDetail returns a copy of the error with one detail attached.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	clone := *e
	clone.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// New creates a new AppError.
func New(code Code, httpStatus int, message string) *AppError {
	return &AppError{Code: code, HTTPStatus: httpStatus, Message: message}
}

// Predefined errors. Use WithMessage/WithError to specialize.
var (
	ErrInvalidRequest    = New(CodeInvalidRequest, http.StatusBadRequest, "invalid request")
	ErrUnauthorized      = New(CodeUnauthorized, http.StatusUnauthorized, "unauthorized")
	ErrForbidden         = New(CodeForbidden, http.StatusForbidden, "forbidden")
	ErrNotFound          = New(CodeNotFound, http.StatusNotFound, "resource not found")
	ErrConflict          = New(CodeConflict, http.StatusConflict, "resource conflict")
	ErrPartialFailure    = New(CodePartialFailure, http.StatusMultiStatus, "operation partially failed")
	ErrExternalService   = New(CodeExternalService, http.StatusBadGateway, "external service error")
	ErrCache             = New(CodeServiceUnavailable, http.StatusServiceUnavailable, "cache operation failed")
	ErrDatabaseOperation = New(CodeInternal, http.StatusInternalServerError, "database operation failed")
	ErrInternal          = New(CodeInternal, http.StatusInternalServerError, "internal server error")
)

// AsAppError attempts to cast an error to *AppError, walking the wrap chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err carries the not_found code.
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsForbidden reports whether err carries the forbidden code.
func IsForbidden(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeForbidden
	}
	return false
}

// HTTPStatus returns the HTTP status for any error, defaulting to 500.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Wrap wraps a generic error into an AppError with the given code and message.
func Wrap(err error, code Code, message string) *AppError {
	status := http.StatusInternalServerError
	switch code {
	case CodeInvalidRequest:
		status = http.StatusBadRequest
	case CodeUnauthorized:
		status = http.StatusUnauthorized
	case CodeForbidden:
		status = http.StatusForbidden
	case CodeNotFound:
		status = http.StatusNotFound
	case CodeConflict:
		status = http.StatusConflict
	case CodePartialFailure:
		status = http.StatusMultiStatus
	case CodeExternalService:
		status = http.StatusBadGateway
	case CodeServiceUnavailable:
		status = http.StatusServiceUnavailable
	}
	return &AppError{Code: code, HTTPStatus: status, Message: message, Err: err}
}

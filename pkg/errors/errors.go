package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels that callers match with errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrRejected     = errors.New("request rejected")
	ErrInternal     = errors.New("internal error")
)

// Code is the stable machine-readable error code sent to API clients.
type Code string

const (
	CodeNotFound             Code = "NOT_FOUND"
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeInvalidParameter     Code = "INVALID_PARAMETER"
	CodeValidation           Code = "VALIDATION_ERROR"
	CodeForbidden            Code = "FORBIDDEN"
	CodeUnsupportedMediaType Code = "UNSUPPORTED_MEDIA_TYPE"
	CodePayloadTooLarge      Code = "PAYLOAD_TOO_LARGE"
	CodeRateLimited          Code = "RATE_LIMITED"
	CodeInternal             Code = "INTERNAL_ERROR"
)

var statusByCode = map[Code]int{
	CodeNotFound:             http.StatusNotFound,
	CodeInvalidInput:         http.StatusBadRequest,
	CodeInvalidParameter:     http.StatusBadRequest,
	CodeValidation:           http.StatusBadRequest,
	CodeForbidden:            http.StatusForbidden,
	CodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	CodePayloadTooLarge:      http.StatusRequestEntityTooLarge,
	CodeRateLimited:          http.StatusTooManyRequests,
	CodeInternal:             http.StatusInternalServerError,
}

// Status returns the HTTP status for c, or 500 for unknown codes.
func (c Code) Status() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError is an error with a client-facing code and message. Err holds the
// cause, which is never exposed to clients.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func newError(code Code, sentinel error, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Err: sentinel}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status the error maps to.
func (e *AppError) Status() int {
	return e.Code.Status()
}

// NotFound reports a missing session, record or page.
func NotFound(resource string, id any) *AppError {
	return newError(CodeNotFound, ErrNotFound, "%s %v not found", resource, id)
}

// InvalidInput reports a request the service refuses to act on.
func InvalidInput(format string, args ...any) *AppError {
	return newError(CodeInvalidInput, ErrInvalidInput, format, args...)
}

// InvalidParameter reports a malformed path or query parameter.
func InvalidParameter(name, value string) *AppError {
	return newError(CodeInvalidParameter, ErrInvalidInput, "invalid %s: %q", name, value)
}

// Forbidden reports a request denied by an access rule.
func Forbidden(reason string) *AppError {
	return newError(CodeForbidden, ErrRejected, "%s", reason)
}

// UnsupportedMediaType reports a body that is not JSON.
func UnsupportedMediaType() *AppError {
	return newError(CodeUnsupportedMediaType, ErrRejected, "Content-Type must be application/json")
}

// PayloadTooLarge reports a request body over limit bytes.
func PayloadTooLarge(limit int64) *AppError {
	return newError(CodePayloadTooLarge, ErrRejected, "request body exceeds %d bytes", limit)
}

// RateLimited reports a client that exceeded its request budget.
func RateLimited() *AppError {
	return newError(CodeRateLimited, ErrRejected, "too many requests")
}

// Internal hides err behind a generic message.
func Internal(err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{Code: CodeInternal, Message: "an internal error occurred", Err: err}
}

// From converts any error into an AppError. Bare sentinels are translated and
// everything else is treated as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return &AppError{Code: CodeNotFound, Message: "resource not found", Err: err}
	case errors.Is(err, ErrInvalidInput):
		return &AppError{Code: CodeInvalidInput, Message: err.Error(), Err: err}
	default:
		return Internal(err)
	}
}

// HTTPStatus returns the HTTP status code for err.
func HTTPStatus(err error) int {
	return From(err).Status()
}

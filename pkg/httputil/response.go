package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/vinylvault/storefront/pkg/errors"
	"github.com/vinylvault/storefront/pkg/logger"
	"github.com/vinylvault/storefront/pkg/validator"
)

// Response is the JSON envelope returned by every storefront endpoint.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse is the error half of the envelope.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps data in the envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Response{Data: data})
}

// WriteError maps err onto the error envelope and logs anything that ends up
// as a 5xx. The request-scoped logger is preferred over fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	appErr := apperrors.From(err)
	status := appErr.Status()

	if status >= http.StatusInternalServerError {
		l := logger.FromContext(r.Context())
		if l == slog.Default() && fallback != nil {
			l = fallback
		}
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Response{Error: errorBody(r, appErr)})
}

func errorBody(r *http.Request, appErr *apperrors.AppError) *ErrorResponse {
	return &ErrorResponse{
		Code:      string(appErr.Code),
		Message:   appErr.Message,
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	}
}

// WriteValidationError writes a 400 response. Field-level messages are
// included when err is a *validator.ValidationError; an *apperrors.AppError
// keeps its own code and status.
func WriteValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteError(w, r, appErr, nil)
		return
	}

	var valErr *validator.ValidationError
	if !errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{
			Error: errorBody(r, &apperrors.AppError{Code: apperrors.CodeInvalidInput, Message: err.Error()}),
		})
		return
	}

	body := errorBody(r, &apperrors.AppError{
		Code:    apperrors.CodeValidation,
		Message: "request validation failed",
	})
	body.Fields = valErr.Fields()
	WriteJSON(w, http.StatusBadRequest, Response{Error: body})
}

// ParseInt parses a path or query value named name. On failure it writes a
// 400 INVALID_PARAMETER response and returns false.
func ParseInt(w http.ResponseWriter, r *http.Request, name, raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, r, apperrors.InvalidParameter(name, raw), nil)
		return 0, false
	}
	return n, true
}

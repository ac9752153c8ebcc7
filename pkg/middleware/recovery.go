package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	apperrors "github.com/vinylvault/storefront/pkg/errors"
	"github.com/vinylvault/storefront/pkg/httputil"
)

// Recovery turns a panic in a downstream handler into a 500 response. A
// panic with http.ErrAbortHandler is re-raised so net/http can abort the
// connection, and nothing is written if the handler already sent headers.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := wrapWriter(w, r)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				l.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if ww.Status() != 0 {
					return
				}
				internal := apperrors.Internal(nil)
				httputil.WriteJSON(ww, internal.Status(), httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    string(internal.Code),
						Message: internal.Message,
					},
				})
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

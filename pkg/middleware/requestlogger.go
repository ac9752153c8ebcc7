package middleware

import (
	"log/slog"
	"net/http"

	"github.com/vinylvault/storefront/pkg/logger"
)

// SessionIDHeader identifies the storefront session a request acts on.
const SessionIDHeader = "X-Session-ID"

// RequestLogger puts the session ID from SessionIDHeader into the context
// and stores base, tagged with the request line, as the request-scoped
// logger. Correlation and trace IDs are added by the logger's handler when
// the *Context methods are used.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if sid := r.Header.Get(SessionIDHeader); sid != "" && logger.SessionIDFromContext(ctx) == "" {
				ctx = logger.WithSessionID(ctx, sid)
			}

			scoped := base.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			ctx = logger.NewContext(ctx, scoped)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

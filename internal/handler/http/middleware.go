package http

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/vinylvault/storefront/pkg/errors"
	"github.com/vinylvault/storefront/pkg/httputil"
	"github.com/vinylvault/storefront/pkg/middleware"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionIDFromHeader reads the X-Session-ID header into the request context.
// Requests without it are rejected with 400.
func SessionIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(middleware.SessionIDHeader))
		if sid == "" {
			httputil.WriteError(w, r, apperrors.InvalidInput("%s header is required", middleware.SessionIDHeader), nil)
			return
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionIDFromContext returns the session ID stored by SessionIDFromHeader.
func sessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}

// ContentTypeJSON rejects request bodies that are not declared as JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteError(w, r, apperrors.UnsupportedMediaType(), nil)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

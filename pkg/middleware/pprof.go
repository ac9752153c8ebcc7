package middleware

import (
	"log/slog"
	"net/http"
	"net/netip"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/vinylvault/storefront/pkg/errors"
	"github.com/vinylvault/storefront/pkg/httputil"
)

// RegisterPprof mounts chi's profiler under /debug behind an IP allowlist.
func RegisterPprof(r chi.Router, allowed []string, logger *slog.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(IPAllowlist(allowed, logger))
		r.Mount("/debug", chimw.Profiler())
	})
}

// ParseAllowlist turns CIDRs or bare addresses into prefixes. Blank entries are
// ignored; entries that do not parse are returned separately so the caller can
// report them.
func ParseAllowlist(entries []string) (prefixes []netip.Prefix, invalid []string) {
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		invalid = append(invalid, e)
	}
	return prefixes, invalid
}

// IPAllowlist rejects requests whose remote address falls outside allowed.
// Invalid entries are logged and skipped; an empty list denies everything.
func IPAllowlist(allowed []string, logger *slog.Logger) func(http.Handler) http.Handler {
	prefixes, invalid := ParseAllowlist(allowed)
	for _, e := range invalid {
		logger.Warn("invalid allowlist entry, skipping", slog.String("entry", e))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr, ok := remoteAddr(r)
			if !ok || !allowedAddr(prefixes, addr) {
				logger.WarnContext(r.Context(), "access denied by IP allowlist",
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path),
				)
				httputil.WriteError(w, r, apperrors.Forbidden("access restricted by IP allowlist"), logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// remoteAddr parses the connection address. Forwarding headers are ignored
// here since they are client-controlled.
func remoteAddr(r *http.Request) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return ap.Addr().Unmap(), true
	}
	if a, err := netip.ParseAddr(r.RemoteAddr); err == nil {
		return a.Unmap(), true
	}
	return netip.Addr{}, false
}

func allowedAddr(prefixes []netip.Prefix, addr netip.Addr) bool {
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

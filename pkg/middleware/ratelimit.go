package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/vinylvault/storefront/pkg/errors"
	"github.com/vinylvault/storefront/pkg/httputil"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorStore holds one token bucket per client IP.
type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

func newVisitorStore(rps float64, burst int, idle time.Duration) *visitorStore {
	return &visitorStore{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		idle:     idle,
		now:      time.Now,
	}
}

func (s *visitorStore) limiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = s.now()
	return v.limiter
}

// evictIdle drops buckets not used within the idle window.
func (s *visitorStore) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.idle {
			delete(s.visitors, ip)
			n++
		}
	}
	return n
}

func (s *visitorStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// RateLimitConfig configures a RateLimiter.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	// Idle is how long an unused bucket is kept.
	Idle time.Duration
	// TrustedProxies are the peers whose forwarding headers name the client.
	TrustedProxies []netip.Prefix
}

// RateLimiter enforces a per-IP token bucket.
type RateLimiter struct {
	store    *visitorStore
	resolver ClientIPResolver
	logger   *slog.Logger
}

// NewRateLimiter allows cfg.RPS requests per second per client IP with burst
// cfg.Burst. Buckets idle for longer than cfg.Idle are evicted by Run.
func NewRateLimiter(cfg RateLimitConfig, l *slog.Logger) *RateLimiter {
	return &RateLimiter{
		store:    newVisitorStore(cfg.RPS, cfg.Burst, cfg.Idle),
		resolver: NewClientIPResolver(cfg.TrustedProxies),
		logger:   l,
	}
}

// Run evicts idle buckets once per idle window until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.store.idle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.store.evictIdle()
		}
	}
}

// Middleware answers 429 once a client exhausts its bucket.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.resolver.ClientIP(r)
		if !rl.store.limiter(ip).Allow() {
			rl.logger.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", "1")
			httputil.WriteError(w, r, apperrors.RateLimited(), rl.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

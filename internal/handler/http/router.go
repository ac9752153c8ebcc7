package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vinylvault/storefront/internal/service"
	"github.com/vinylvault/storefront/pkg/health"
	"github.com/vinylvault/storefront/pkg/middleware"
)

const serviceName = "storefront"

// RouterConfig carries the cross-cutting HTTP settings.
type RouterConfig struct {
	CORS       middleware.CORSConfig
	PprofCIDRs []string

	// SessionLimiter throttles session creation per client IP; nil disables it.
	SessionLimiter *middleware.RateLimiter
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	svc *service.StorefrontService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	catalogHandler := NewCatalogHandler(svc, logger)
	sessionHandler := NewSessionHandler(svc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(300))

			r.Get("/catalog", catalogHandler.ListRecords)
			r.Get("/catalog/facets", catalogHandler.Facets)
			r.Get("/catalog/{ref}", catalogHandler.GetRecord)
			r.Get("/sections/{section}", catalogHandler.GetSection)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			if cfg.SessionLimiter != nil {
				r.Use(cfg.SessionLimiter.Middleware)
			}
			r.Post("/sessions", sessionHandler.CreateSession)
		})

		r.Route("/session", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(SessionIDFromHeader)

			r.Get("/", sessionHandler.GetSession)
			r.Delete("/", sessionHandler.EndSession)
			r.Get("/browse", sessionHandler.Browse)
			r.Put("/filter", sessionHandler.SetFilter)
			r.Put("/section", sessionHandler.Navigate)

			r.Get("/cart", sessionHandler.GetCart)
			r.Post("/cart/items", sessionHandler.AddItem)
			r.Delete("/cart/items/{position}", sessionHandler.RemoveItem)
		})
	})

	return r
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/vinylvault/storefront/internal/catalog"
	"github.com/vinylvault/storefront/internal/config"
	"github.com/vinylvault/storefront/internal/event"
	handler "github.com/vinylvault/storefront/internal/handler/http"
	"github.com/vinylvault/storefront/internal/repository/memory"
	"github.com/vinylvault/storefront/internal/service"
	"github.com/vinylvault/storefront/pkg/health"
	pkgkafka "github.com/vinylvault/storefront/pkg/kafka"
	"github.com/vinylvault/storefront/pkg/middleware"
	"github.com/vinylvault/storefront/pkg/tracing"
)

const serviceName = "storefront-service"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	sessions       *memory.SessionRepository
	service        *service.StorefrontService
	producer       *pkgkafka.Producer
	limiter        *middleware.RateLimiter
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	store := catalog.NewSeededStore()
	logger.Info("catalog loaded", slog.Int("records", store.Len()))

	healthHandler := health.NewHandler(serviceName)
	healthHandler.Register("catalog", func(context.Context) error {
		if store.Len() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})

	// Cart events go to Kafka only when brokers are configured.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher = event.Noop{}
	)
	if cfg.EventsEnabled() {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(producer, logger)
		healthHandler.Register("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("no kafka brokers configured, cart events disabled")
	}

	// Build the dependency graph.
	sessions := memory.NewSessionRepository(cfg.SessionIdleTTL())
	svc := service.NewStorefrontService(store, sessions, publisher, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	var limiter *middleware.RateLimiter
	if cfg.SessionRateLimitEnabled() {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RPS:            cfg.SessionCreateRPS,
			Burst:          cfg.SessionCreateBurst,
			Idle:           5 * time.Minute,
			TrustedProxies: cfg.TrustedProxies(),
		}, logger)
	}

	router := handler.NewRouter(svc, healthHandler, logger, handler.RouterConfig{
		CORS:           corsCfg,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		SessionLimiter: limiter,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		sessions:       sessions,
		service:        svc,
		producer:       producer,
		limiter:        limiter,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Handler returns the HTTP handler serving the API.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and the session sweeper and blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sessions.RunSweeper(sweepCtx, a.cfg.SessionSweepInterval(), a.onSweep)
	}()
	if a.limiter != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.limiter.Run(sweepCtx)
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	stopSweep()
	wg.Wait()

	if err := a.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (a *App) onSweep(removed, remaining int) {
	if removed > 0 {
		a.logger.Info("expired sessions removed",
			slog.Int("removed", removed),
			slog.Int("remaining", remaining),
		)
	}
	a.service.RecordActiveSessions(context.Background())
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}

package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	pkgconfig "github.com/vinylvault/storefront/pkg/config"
	"github.com/vinylvault/storefront/pkg/middleware"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Sessions
	SessionIdleTTLMinutes       int `env:"SESSION_IDLE_TTL_MINUTES" envDefault:"120"`
	SessionSweepIntervalSeconds int `env:"SESSION_SWEEP_INTERVAL_SECONDS" envDefault:"60"`

	// Per-IP throttle on session creation; zero RPS disables it.
	SessionCreateRPS   float64 `env:"SESSION_CREATE_RPS" envDefault:"2"`
	SessionCreateBurst int     `env:"SESSION_CREATE_BURST" envDefault:"10"`

	// Reverse proxies whose X-Forwarded-For / X-Real-IP are believed. Empty
	// means the connection address always identifies the client.
	TrustedProxyCIDRs []string `env:"TRUSTED_PROXY_CIDRS" envSeparator:","`

	// Kafka; empty disables cart events.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SessionIdleTTLMinutes < 1 {
		return fmt.Errorf("SESSION_IDLE_TTL_MINUTES must be positive, got %d", c.SessionIdleTTLMinutes)
	}
	if c.SessionSweepIntervalSeconds < 1 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL_SECONDS must be positive, got %d", c.SessionSweepIntervalSeconds)
	}
	if c.SessionCreateRPS < 0 {
		return fmt.Errorf("SESSION_CREATE_RPS must not be negative, got %v", c.SessionCreateRPS)
	}
	if c.SessionCreateRPS > 0 && c.SessionCreateBurst < 1 {
		return fmt.Errorf("SESSION_CREATE_BURST must be positive, got %d", c.SessionCreateBurst)
	}
	if _, invalid := middleware.ParseAllowlist(c.TrustedProxyCIDRs); len(invalid) > 0 {
		return fmt.Errorf("TRUSTED_PROXY_CIDRS has invalid entries: %s", strings.Join(invalid, ", "))
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	return nil
}

// SessionIdleTTL returns the idle timeout after which a session expires.
func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.SessionIdleTTLMinutes) * time.Minute
}

// SessionSweepInterval returns how often expired sessions are purged.
func (c *Config) SessionSweepInterval() time.Duration {
	return time.Duration(c.SessionSweepIntervalSeconds) * time.Second
}

// SessionRateLimitEnabled reports whether session creation is throttled.
func (c *Config) SessionRateLimitEnabled() bool {
	return c.SessionCreateRPS > 0
}

// TrustedProxies returns the parsed TRUSTED_PROXY_CIDRS.
func (c *Config) TrustedProxies() []netip.Prefix {
	prefixes, _ := middleware.ParseAllowlist(c.TrustedProxyCIDRs)
	return prefixes
}

// EventsEnabled reports whether cart events are published to Kafka.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

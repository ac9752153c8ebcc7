package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinylvault/storefront/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:                 "test",
		LogLevel:                    "error",
		HTTPPort:                    18080,
		SessionIdleTTLMinutes:       120,
		SessionSweepIntervalSeconds: 1,
		CORSAllowedOrigins:          []string{"*"},
		PprofAllowedCIDRs:           []string{"127.0.0.1/32"},
		OTELEndpoint:                "localhost:4318",
		OTELSampleRate:              1.0,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApp_WithoutKafka(t *testing.T) {
	a, err := NewApp(testConfig(), testLogger())
	require.NoError(t, err)
	assert.Nil(t, a.producer)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"catalog"`)
	assert.NotContains(t, rec.Body.String(), `"kafka"`)
}

func TestNewApp_WithKafkaRegistersCheck(t *testing.T) {
	cfg := testConfig()
	cfg.KafkaBrokers = []string{"127.0.0.1:1"}

	a, err := NewApp(cfg, testLogger())
	require.NoError(t, err)
	require.NotNil(t, a.producer)
	t.Cleanup(func() { _ = a.producer.Close() })

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kafka"`)
}

func TestApp_ServesCatalog(t *testing.T) {
	a, err := NewApp(testConfig(), testLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader("")))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPPort = 0
	a, err := NewApp(cfg, testLogger())
	require.NoError(t, err)
	a.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveCORS(cfg CORSConfig, method, origin string) *httptest.ResponseRecorder {
	handler := CORS(cfg)(okHandler())
	req := httptest.NewRequest(method, "/api/v1/catalog", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORS_DevModeWildcard(t *testing.T) {
	rec := serveCORS(CORSConfig{Environment: "development"}, http.MethodGet, "https://shop.example")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ProdAllowedOrigin(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"https://vinylvault.example"}, Environment: "production"}

	rec := serveCORS(cfg, http.MethodGet, "https://vinylvault.example")
	assert.Equal(t, "https://vinylvault.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))

	rec = serveCORS(cfg, http.MethodGet, "https://elsewhere.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardInListAllowsAll(t *testing.T) {
	rec := serveCORS(CORSConfig{AllowedOrigins: []string{"*"}, Environment: "production"}, http.MethodGet, "https://a.example")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	rec := serveCORS(DefaultCORSConfig(), http.MethodOptions, "https://a.example")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORS_DefaultsIncludeSessionHeader(t *testing.T) {
	rec := serveCORS(CORSConfig{Environment: "development"}, http.MethodGet, "")

	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), SessionIDHeader)
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestDefaultCORSConfig_ExposesSessionHeader(t *testing.T) {
	rec := serveCORS(DefaultCORSConfig(), http.MethodGet, "")
	assert.Equal(t, "X-Correlation-ID, X-Session-ID", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORSPolicy_AllowOrigin(t *testing.T) {
	p := newCORSPolicy(CORSConfig{
		AllowedOrigins: []string{"https://vinylvault.example", "https://admin.vinylvault.example"},
		Environment:    "production",
		MaxAge:         -1,
	})

	assert.Equal(t, "https://admin.vinylvault.example", p.allowOrigin("https://admin.vinylvault.example"))
	assert.Empty(t, p.allowOrigin(""))
	assert.Empty(t, p.allowOrigin("https://vinylvault.example.evil"))
	assert.Equal(t, "3600", p.maxAge)
}

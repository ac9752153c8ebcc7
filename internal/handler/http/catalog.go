package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vinylvault/storefront/internal/service"
	"github.com/vinylvault/storefront/pkg/httputil"
	"github.com/vinylvault/storefront/pkg/pagination"
)

// CatalogHandler serves the session-independent catalog and section routes.
type CatalogHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewCatalogHandler creates a catalog HTTP handler.
func NewCatalogHandler(svc *service.StorefrontService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListRecords handles GET /api/v1/catalog
func (h *CatalogHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	page := pagination.Paginate(h.service.Records(r.Context()), params)
	httputil.WriteData(w, http.StatusOK, page)
}

// Facets handles GET /api/v1/catalog/facets
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Facets(r.Context()))
}

// GetRecord handles GET /api/v1/catalog/{ref}
func (h *CatalogHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.GetRecord(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, record)
}

// GetSection handles GET /api/v1/sections/{section}
func (h *CatalogHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Section(r.Context(), chi.URLParam(r, "section"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, page)
}

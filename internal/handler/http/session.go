package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vinylvault/storefront/internal/domain"
	"github.com/vinylvault/storefront/internal/service"
	"github.com/vinylvault/storefront/pkg/httputil"
	"github.com/vinylvault/storefront/pkg/middleware"
	"github.com/vinylvault/storefront/pkg/validator"
)

// SessionHandler serves the routes that act on one visitor session.
type SessionHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewSessionHandler creates a session HTTP handler.
func NewSessionHandler(svc *service.StorefrontService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// SetFilterRequest replaces the session's filter. Empty or missing selectors
// mean "all".
type SetFilterRequest struct {
	Genre     string `json:"genre" validate:"max=100,printable"`
	Condition string `json:"condition" validate:"max=100,printable"`
	Year      string `json:"year" validate:"max=10,printable"`
}

// NavigateRequest selects the current section.
type NavigateRequest struct {
	Section string `json:"section" validate:"required,max=32"`
}

// AddItemRequest adds a catalog record to the cart.
type AddItemRequest struct {
	RecordID int `json:"record_id" validate:"required,gte=1"`
}

// --- Response DTOs ---

// SessionResponse is the full session snapshot.
type SessionResponse struct {
	ID        string                `json:"id"`
	Criteria  domain.FilterCriteria `json:"criteria"`
	Section   domain.Section        `json:"section"`
	Cart      service.CartSummary   `json:"cart"`
	CreatedAt time.Time             `json:"created_at"`
}

func toSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:       s.ID,
		Criteria: s.Criteria,
		Section:  s.Section,
		Cart: service.CartSummary{
			Entries: s.Cart.Entries(),
			Count:   s.Cart.Len(),
			Total:   s.Cart.Total(),
		},
		CreatedAt: s.CreatedAt,
	}
}

// --- Handlers ---

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CreateSession(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.Header().Set(middleware.SessionIDHeader, session.ID)
	httputil.WriteData(w, http.StatusCreated, toSessionResponse(session))
}

// GetSession handles GET /api/v1/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, toSessionResponse(session))
}

// EndSession handles DELETE /api/v1/session
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.EndSession(r.Context(), sessionIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Browse handles GET /api/v1/session/browse
func (h *SessionHandler) Browse(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Browse(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, result)
}

// SetFilter handles PUT /api/v1/session/filter
func (h *SessionHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req SetFilterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	criteria := domain.FilterCriteria{Genre: req.Genre, Condition: req.Condition, Year: req.Year}
	result, err := h.service.SetFilter(r.Context(), sessionIDFromContext(r.Context()), criteria)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, result)
}

// Navigate handles PUT /api/v1/session/section
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	page, err := h.service.Navigate(r.Context(), sessionIDFromContext(r.Context()), req.Section)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, page)
}

// GetCart handles GET /api/v1/session/cart
func (h *SessionHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), sessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cart)
}

// AddItem handles POST /api/v1/session/cart/items
func (h *SessionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	cart, err := h.service.AddToCart(r.Context(), sessionIDFromContext(r.Context()), req.RecordID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/v1/session/cart/items/{position}
func (h *SessionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	position, ok := httputil.ParseInt(w, r, "cart position", chi.URLParam(r, "position"))
	if !ok {
		return
	}

	result, err := h.service.RemoveFromCart(r.Context(), sessionIDFromContext(r.Context()), position)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, result)
}

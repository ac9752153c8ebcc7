package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vinylvault/storefront/internal/catalog"
	"github.com/vinylvault/storefront/internal/content"
	"github.com/vinylvault/storefront/internal/domain"
	"github.com/vinylvault/storefront/internal/event"
	"github.com/vinylvault/storefront/internal/filter"
	"github.com/vinylvault/storefront/internal/repository"
	apperrors "github.com/vinylvault/storefront/pkg/errors"
	"github.com/vinylvault/storefront/pkg/tracing"
)

const tracerComponent = "service"

// BrowseResult is a filtered catalog view.
type BrowseResult struct {
	Criteria domain.FilterCriteria `json:"criteria"`
	Records  []domain.Record       `json:"records"`
	Count    int                   `json:"count"`
}

// CartSummary is the cart as shown to the visitor.
type CartSummary struct {
	Entries []domain.CartEntry `json:"entries"`
	Count   int                `json:"count"`
	Total   int64              `json:"total"`
}

// RemoveResult reports the cart after a removal and whether anything was removed.
type RemoveResult struct {
	Cart    CartSummary `json:"cart"`
	Removed bool        `json:"removed"`
}

// StorefrontService binds sessions to the catalog, the filter and the cart.
type StorefrontService struct {
	catalog *catalog.Store
	repo    repository.SessionRepository
	events  event.Publisher
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewStorefrontService creates a storefront service. A nil publisher disables
// cart events.
func NewStorefrontService(store *catalog.Store, repo repository.SessionRepository, events event.Publisher, logger *slog.Logger) *StorefrontService {
	if events == nil {
		events = event.Noop{}
	}
	return &StorefrontService{
		catalog: store,
		repo:    repo,
		events:  events,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// CreateSession starts a session with unconstrained criteria, an empty cart
// and the home section.
func (s *StorefrontService) CreateSession(ctx context.Context) (*domain.Session, error) {
	session := domain.NewSession(s.newID(), s.now().UTC())
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.RecordActiveSessions(ctx)
	s.logger.InfoContext(ctx, "session created", slog.String("session_id", session.ID))
	return session, nil
}

// GetSession returns the session with the given ID.
func (s *StorefrontService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// EndSession discards the session and everything in it. Ending an unknown or
// expired session is not an error.
func (s *StorefrontService) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	s.RecordActiveSessions(ctx)
	s.logger.InfoContext(ctx, "session ended", slog.String("session_id", sessionID))
	return nil
}

// Records returns the whole catalog in order.
func (s *StorefrontService) Records(_ context.Context) []domain.Record {
	return s.catalog.Records()
}

// Facets returns the options for each filter control.
func (s *StorefrontService) Facets(_ context.Context) []catalog.FacetOptions {
	return s.catalog.Facets()
}

// Browse applies the session's current criteria to the catalog.
func (s *StorefrontService) Browse(ctx context.Context, sessionID string) (*BrowseResult, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.browse(ctx, session.Criteria), nil
}

// SetFilter replaces the session's criteria wholesale and returns the new
// filtered view. Empty selectors mean All.
func (s *StorefrontService) SetFilter(ctx context.Context, sessionID string, criteria domain.FilterCriteria) (*BrowseResult, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	criteria = criteria.Normalize()

	session, err := s.repo.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Criteria = criteria
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set filter: %w", err)
	}

	s.logger.DebugContext(ctx, "filter updated",
		slog.String("session_id", sessionID),
		slog.String("genre", criteria.Genre),
		slog.String("condition", criteria.Condition),
		slog.String("year", criteria.Year),
	)
	return s.browse(ctx, session.Criteria), nil
}

func (s *StorefrontService) browse(ctx context.Context, criteria domain.FilterCriteria) *BrowseResult {
	_, span := tracing.StartSpan(ctx, tracerComponent, "filter.Apply",
		attribute.String("filter.genre", criteria.Genre),
		attribute.String("filter.condition", criteria.Condition),
		attribute.String("filter.year", criteria.Year),
	)
	defer span.End()

	records := filter.Apply(s.catalog.Records(), criteria)
	span.SetAttributes(attribute.Int("filter.results", len(records)))
	filterResults.Observe(float64(len(records)))

	return &BrowseResult{
		Criteria: criteria,
		Records:  records,
		Count:    len(records),
	}
}

// GetRecord looks a record up by numeric ID or by slug.
func (s *StorefrontService) GetRecord(_ context.Context, ref string) (domain.Record, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		if r, ok := s.catalog.Lookup(id); ok {
			return r, nil
		}
		return domain.Record{}, apperrors.NotFound("record", ref)
	}
	if r, ok := s.catalog.LookupSlug(ref); ok {
		return r, nil
	}
	return domain.Record{}, apperrors.NotFound("record", ref)
}

// AddToCart appends the record to the session's cart.
func (s *StorefrontService) AddToCart(ctx context.Context, sessionID string, recordID int) (*CartSummary, error) {
	ctx, span := tracing.StartSpan(ctx, tracerComponent, "AddToCart", attribute.Int("record.id", recordID))
	defer span.End()

	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	record, ok := s.catalog.Lookup(recordID)
	if !ok {
		err := apperrors.NotFound("record", recordID)
		tracing.RecordError(span, err)
		return nil, err
	}

	session, err := s.repo.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Cart.Add(record)
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	cartItemsAdded.Inc()

	position := session.Cart.Len() - 1
	if err := s.events.PublishItemAdded(ctx, sessionID, position, record, session.Cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.item_added event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "record added to cart",
		slog.String("session_id", sessionID),
		slog.Int("record_id", record.ID),
		slog.Int("cart_length", session.Cart.Len()),
	)
	return summarize(session.Cart), nil
}

// RemoveFromCart removes the entry at position. Out-of-range positions leave
// the cart unchanged and publish nothing.
func (s *StorefrontService) RemoveFromCart(ctx context.Context, sessionID string, position int) (*RemoveResult, error) {
	ctx, span := tracing.StartSpan(ctx, tracerComponent, "RemoveFromCart", attribute.Int("cart.position", position))
	defer span.End()

	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	var (
		removed domain.Record
		ok      bool
	)
	session, err := s.repo.Update(ctx, sessionID, func(sess *domain.Session) error {
		removed, ok = sess.Cart.At(position)
		sess.Cart.RemoveAt(position)
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("remove from cart: %w", err)
	}

	if !ok {
		s.logger.DebugContext(ctx, "cart position out of range, nothing removed",
			slog.String("session_id", sessionID),
			slog.Int("position", position),
		)
		return &RemoveResult{Cart: *summarize(session.Cart)}, nil
	}
	cartItemsRemoved.Inc()

	if err := s.events.PublishItemRemoved(ctx, sessionID, position, removed, session.Cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.item_removed event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "record removed from cart",
		slog.String("session_id", sessionID),
		slog.Int("record_id", removed.ID),
		slog.Int("position", position),
	)
	return &RemoveResult{Cart: *summarize(session.Cart), Removed: true}, nil
}

// GetCart returns the session's cart.
func (s *StorefrontService) GetCart(ctx context.Context, sessionID string) (*CartSummary, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return summarize(session.Cart), nil
}

// Navigate makes section the session's current section and returns its content.
func (s *StorefrontService) Navigate(ctx context.Context, sessionID, section string) (content.Page, error) {
	if sessionID == "" {
		return content.Page{}, apperrors.InvalidInput("session id is required")
	}
	target, err := domain.ParseSection(section)
	if err != nil {
		return content.Page{}, apperrors.InvalidInput("%v", err)
	}

	if _, err := s.repo.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Section = target
		return nil
	}); err != nil {
		return content.Page{}, fmt.Errorf("navigate: %w", err)
	}

	return content.For(target), nil
}

// Section returns the static content of section.
func (s *StorefrontService) Section(_ context.Context, section string) (content.Page, error) {
	target, err := domain.ParseSection(section)
	if err != nil {
		return content.Page{}, apperrors.InvalidInput("%v", err)
	}
	return content.For(target), nil
}

// RecordActiveSessions refreshes the active-session gauge from the repository.
func (s *StorefrontService) RecordActiveSessions(ctx context.Context) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to count sessions", slog.String("error", err.Error()))
		return
	}
	sessionsActive.Set(float64(n))
}

// CatalogSize returns the number of records in the catalog.
func (s *StorefrontService) CatalogSize() int {
	return s.catalog.Len()
}

func summarize(c domain.Cart) *CartSummary {
	return &CartSummary{
		Entries: c.Entries(),
		Count:   c.Len(),
		Total:   c.Total(),
	}
}

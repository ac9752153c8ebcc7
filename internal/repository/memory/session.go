package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vinylvault/storefront/internal/domain"
	apperrors "github.com/vinylvault/storefront/pkg/errors"
)

// SessionRepository keeps sessions in process memory. Sessions idle for
// longer than the TTL are treated as absent and removed by Sweep.
// Thread-safe via sync.RWMutex.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionRepository creates an empty repository. A zero ttl disables expiry.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores a copy of session.
func (r *SessionRepository) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[session.ID]; ok && !existing.Expired(r.now(), r.ttl) {
		return apperrors.InvalidInput("session %s already exists", session.ID)
	}
	r.sessions[session.ID] = session.Clone()
	return nil
}

// Get returns a copy of the session and records the access.
func (r *SessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.live(id)
	if err != nil {
		return nil, err
	}
	s.Touch(r.now())
	return s.Clone(), nil
}

// Update runs fn on a working copy under the write lock and stores it when fn
// succeeds.
func (r *SessionRepository) Update(_ context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.live(id)
	if err != nil {
		return nil, err
	}

	working := s.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.Touch(r.now())
	r.sessions[id] = working
	return working.Clone(), nil
}

// Delete removes the session.
func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// Count returns the number of unexpired sessions.
func (r *SessionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	n := 0
	for _, s := range r.sessions {
		if !s.Expired(now, r.ttl) {
			n++
		}
	}
	return n, nil
}

// Sweep deletes expired sessions and reports how many were removed and how
// many remain.
func (r *SessionRepository) Sweep() (removed, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, s := range r.sessions {
		if s.Expired(now, r.ttl) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, len(r.sessions)
}

// RunSweeper calls Sweep every interval until ctx is done. onSweep, if
// non-nil, receives the result of each pass.
func (r *SessionRepository) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed, remaining int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, remaining := r.Sweep()
			if onSweep != nil {
				onSweep(removed, remaining)
			}
		}
	}
}

// live returns the stored session, deleting it first if it has expired.
// Callers must hold the write lock.
func (r *SessionRepository) live(id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("session", id)
	}
	if s.Expired(r.now(), r.ttl) {
		delete(r.sessions, id)
		return nil, apperrors.NotFound("session", id)
	}
	return s, nil
}

package repository

import (
	"context"

	"github.com/vinylvault/storefront/internal/domain"
)

// SessionRepository defines storage for storefront sessions. Implementations
// hand out copies, so callers never share a *domain.Session with another
// request.
type SessionRepository interface {
	// Create stores a new session. It fails if the ID is already taken.
	Create(ctx context.Context, session *domain.Session) error

	// Get returns a copy of the session. Unknown or expired IDs yield an
	// error wrapping apperrors.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Update applies fn to the stored session while holding that session
	// exclusively and stores the result. If fn returns an error nothing is
	// stored. The returned session is a copy of the stored state.
	Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error)

	// Delete removes the session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)
}

package domain

import "time"

// Session is the per-visitor state: the active filter, the cart and the
// section being viewed.
type Session struct {
	ID         string
	Criteria   FilterCriteria
	Cart       Cart
	Section    Section
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// NewSession returns a session with unconstrained criteria, an empty cart
// and the default section.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		Criteria:   DefaultCriteria(),
		Section:    DefaultSection,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Cart = s.Cart.Clone()
	return &c
}

// Touch records activity at now.
func (s *Session) Touch(now time.Time) {
	s.LastSeenAt = now
}

// Expired reports whether s has been idle for at least ttl at now.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && !now.Before(s.LastSeenAt.Add(ttl))
}

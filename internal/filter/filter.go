// Package filter narrows a record list by facet criteria.
package filter

import "github.com/vinylvault/storefront/internal/domain"

// Apply returns the records satisfying every non-All selector in criteria, in
// their original order. Selectors match by exact, case-sensitive equality.
// The result is never nil.
func Apply(records []domain.Record, criteria domain.FilterCriteria) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, criteria) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether r satisfies criteria.
func Matches(r domain.Record, criteria domain.FilterCriteria) bool {
	for _, f := range domain.Facets() {
		sel := criteria.Selector(f)
		if sel == domain.All {
			continue
		}
		if v, _ := r.Value(f); v != sel {
			return false
		}
	}
	return true
}

package catalog

import (
	"github.com/vinylvault/storefront/internal/domain"
)

// FacetOptions describes one filter control: the facet, the display label of
// its All option, and the selectable values with All first.
type FacetOptions struct {
	Facet    domain.Facet `json:"facet"`
	AllLabel string       `json:"all_label"`
	Options  []string     `json:"options"`
}

var allLabels = map[domain.Facet]string{
	domain.FacetGenre:     "Все жанры",
	domain.FacetCondition: "Любое",
	domain.FacetYear:      "Все годы",
}

// Store is the read-only record catalog. It is safe for concurrent use
// because nothing mutates it after NewStore returns.
type Store struct {
	records []domain.Record
	byID    map[int]int
	bySlug  map[string]int
}

// NewStore builds a catalog from records, preserving their order. The slice
// is copied so later changes by the caller are not observed.
func NewStore(records []domain.Record) *Store {
	s := &Store{
		records: make([]domain.Record, len(records)),
		byID:    make(map[int]int, len(records)),
		bySlug:  make(map[string]int, len(records)),
	}
	copy(s.records, records)
	for i, r := range s.records {
		s.byID[r.ID] = i
		if r.Slug != "" {
			s.bySlug[r.Slug] = i
		}
	}
	return s
}

// Records returns every record in catalog order.
func (s *Store) Records() []domain.Record {
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// DistinctValues returns domain.All followed by each distinct value of facet
// in first-seen catalog order. Unknown facets yield only domain.All.
func (s *Store) DistinctValues(facet domain.Facet) []string {
	values := []string{domain.All}
	seen := make(map[string]struct{}, len(s.records))
	for _, r := range s.records {
		v, ok := r.Value(facet)
		if !ok {
			break
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// Facets returns the options for every filterable facet.
func (s *Store) Facets() []FacetOptions {
	facets := domain.Facets()
	out := make([]FacetOptions, 0, len(facets))
	for _, f := range facets {
		out = append(out, FacetOptions{
			Facet:    f,
			AllLabel: allLabels[f],
			Options:  s.DistinctValues(f),
		})
	}
	return out
}

// Lookup returns the record with the given ID.
func (s *Store) Lookup(id int) (domain.Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Record{}, false
	}
	return s.records[i], true
}

// LookupSlug returns the record with the given slug.
func (s *Store) LookupSlug(slug string) (domain.Record, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return domain.Record{}, false
	}
	return s.records[i], true
}

package domain

import "strconv"

// All is the selector value that leaves a facet unconstrained.
const All = "all"

// Record is a single vinyl record in the catalog. Price is in minor units.
type Record struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Condition string `json:"condition"`
	Price     int64  `json:"price"`
	Glyph     string `json:"glyph"`
}

// Facet names one of the filterable record attributes.
type Facet string

const (
	FacetGenre     Facet = "genre"
	FacetCondition Facet = "condition"
	FacetYear      Facet = "year"
)

// Facets lists the filterable facets in display order.
func Facets() []Facet {
	return []Facet{FacetGenre, FacetCondition, FacetYear}
}

// Value returns the record's value for facet f. Years are rendered as
// decimal strings. The second result is false for an unknown facet.
func (r Record) Value(f Facet) (string, bool) {
	switch f {
	case FacetGenre:
		return r.Genre, true
	case FacetCondition:
		return r.Condition, true
	case FacetYear:
		return strconv.Itoa(r.Year), true
	default:
		return "", false
	}
}

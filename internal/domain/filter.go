package domain

// FilterCriteria holds one selector per facet. A selector equal to All
// leaves its facet unconstrained.
type FilterCriteria struct {
	Genre     string `json:"genre"`
	Condition string `json:"condition"`
	Year      string `json:"year"`
}

// DefaultCriteria returns criteria that match every record.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Genre: All, Condition: All, Year: All}
}

// Normalize replaces empty selectors with All.
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.Genre == "" {
		c.Genre = All
	}
	if c.Condition == "" {
		c.Condition = All
	}
	if c.Year == "" {
		c.Year = All
	}
	return c
}

// Selector returns the selector for facet f.
func (c FilterCriteria) Selector(f Facet) string {
	switch f {
	case FacetGenre:
		return c.Genre
	case FacetCondition:
		return c.Condition
	case FacetYear:
		return c.Year
	default:
		return All
	}
}

// IsUnconstrained reports whether every selector is All.
func (c FilterCriteria) IsUnconstrained() bool {
	return c.Genre == All && c.Condition == All && c.Year == All
}

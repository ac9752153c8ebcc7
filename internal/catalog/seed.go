package catalog

import (
	"github.com/vinylvault/storefront/internal/domain"
	"github.com/vinylvault/storefront/pkg/slug"
)

var seed = []domain.Record{
	{ID: 1, Title: "Dark Side of the Moon", Artist: "Pink Floyd", Year: 1973, Genre: "Progressive Rock", Condition: "Mint", Price: 4500, Glyph: "🌙"},
	{ID: 2, Title: "Rumours", Artist: "Fleetwood Mac", Year: 1977, Genre: "Rock", Condition: "Near Mint", Price: 3800, Glyph: "💿"},
	{ID: 3, Title: "Thriller", Artist: "Michael Jackson", Year: 1982, Genre: "Pop", Condition: "Very Good", Price: 5200, Glyph: "🎵"},
	{ID: 4, Title: "Led Zeppelin IV", Artist: "Led Zeppelin", Year: 1971, Genre: "Hard Rock", Condition: "Mint", Price: 4200, Glyph: "⚡"},
	{ID: 5, Title: "Abbey Road", Artist: "The Beatles", Year: 1969, Genre: "Rock", Condition: "Near Mint", Price: 6000, Glyph: "🚶"},
	{ID: 6, Title: "The Wall", Artist: "Pink Floyd", Year: 1979, Genre: "Progressive Rock", Condition: "Very Good", Price: 3500, Glyph: "🧱"},
	{ID: 7, Title: "Kind of Blue", Artist: "Miles Davis", Year: 1959, Genre: "Jazz", Condition: "Good", Price: 4800, Glyph: "🎺"},
	{ID: 8, Title: "Nevermind", Artist: "Nirvana", Year: 1991, Genre: "Grunge", Condition: "Mint", Price: 3200, Glyph: "🎸"},
}

// SeedRecords returns the shop's fixed inventory with slugs filled in.
func SeedRecords() []domain.Record {
	out := make([]domain.Record, len(seed))
	for i, r := range seed {
		r.Slug = slug.Join(r.Artist, r.Title)
		out[i] = r
	}
	return out
}

// NewSeededStore returns a Store over SeedRecords.
func NewSeededStore() *Store {
	return NewStore(SeedRecords())
}

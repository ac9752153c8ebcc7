package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinylvault/storefront/internal/domain"
)

func TestSeedRecords(t *testing.T) {
	records := SeedRecords()
	require.Len(t, records, 8)

	for i, r := range records {
		assert.Equal(t, i+1, r.ID)
		assert.NotEmpty(t, r.Slug)
		assert.GreaterOrEqual(t, r.Price, int64(0))
	}
	assert.Equal(t, "pink-floyd-dark-side-of-the-moon", records[0].Slug)
	assert.Equal(t, "the-beatles-abbey-road", records[4].Slug)
}

func TestStore_RecordsIsCopy(t *testing.T) {
	s := NewSeededStore()
	got := s.Records()
	got[0].Title = "changed"

	assert.Equal(t, "Dark Side of the Moon", s.Records()[0].Title)
}

func TestNewStore_CopiesInput(t *testing.T) {
	in := []domain.Record{{ID: 1, Title: "A"}}
	s := NewStore(in)
	in[0].Title = "B"

	assert.Equal(t, "A", s.Records()[0].Title)
}

func TestStore_DistinctValues(t *testing.T) {
	s := NewSeededStore()

	tests := []struct {
		facet domain.Facet
		want  []string
	}{
		{
			domain.FacetGenre,
			[]string{"all", "Progressive Rock", "Rock", "Pop", "Hard Rock", "Jazz", "Grunge"},
		},
		{
			domain.FacetCondition,
			[]string{"all", "Mint", "Near Mint", "Very Good", "Good"},
		},
		{
			domain.FacetYear,
			[]string{"all", "1973", "1977", "1982", "1971", "1969", "1979", "1959", "1991"},
		},
		{
			domain.Facet("artist"),
			[]string{"all"},
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.facet), func(t *testing.T) {
			assert.Equal(t, tt.want, s.DistinctValues(tt.facet))
		})
	}
}

func TestStore_DistinctValues_EachGenreOnce(t *testing.T) {
	s := NewSeededStore()
	values := s.DistinctValues(domain.FacetGenre)

	require.Equal(t, domain.All, values[0])
	seen := map[string]int{}
	for _, v := range values[1:] {
		seen[v]++
	}
	for _, r := range s.Records() {
		assert.Equal(t, 1, seen[r.Genre], r.Genre)
	}
	assert.Len(t, seen, len(values)-1)
}

func TestStore_DistinctValues_Empty(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, []string{"all"}, s.DistinctValues(domain.FacetGenre))
	assert.Equal(t, 0, s.Len())
}

func TestStore_Facets(t *testing.T) {
	facets := NewSeededStore().Facets()
	require.Len(t, facets, 3)

	assert.Equal(t, domain.FacetGenre, facets[0].Facet)
	assert.Equal(t, "Все жанры", facets[0].AllLabel)
	assert.Equal(t, "Любое", facets[1].AllLabel)
	assert.Equal(t, "Все годы", facets[2].AllLabel)
	assert.Equal(t, "all", facets[2].Options[0])
}

func TestStore_Lookup(t *testing.T) {
	s := NewSeededStore()

	r, ok := s.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "Kind of Blue", r.Title)

	_, ok = s.Lookup(42)
	assert.False(t, ok)
}

func TestStore_LookupSlug(t *testing.T) {
	s := NewSeededStore()

	r, ok := s.LookupSlug("nirvana-nevermind")
	require.True(t, ok)
	assert.Equal(t, 8, r.ID)

	_, ok = s.LookupSlug("nirvana-bleach")
	assert.False(t, ok)
}

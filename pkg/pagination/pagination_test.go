package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		page    int
		perPage int
		offset  int
	}{
		{"defaults", "", 1, 20, 0},
		{"custom", "?page=3&per_page=5", 3, 5, 10},
		{"negative page", "?page=-1", 1, 20, 0},
		{"per_page too large", "?per_page=500", 1, 20, 0},
		{"garbage", "?page=abc&per_page=xyz", 1, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromRequest(httptest.NewRequest(http.MethodGet, "/api/v1/catalog"+tt.query, nil))
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.perPage, p.PerPage)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	r := Paginate(items, Params{Page: 2, PerPage: 3, Offset: 3})
	assert.Equal(t, []int{4, 5, 6}, r.Items)
	assert.Equal(t, 8, r.TotalCount)
	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)

	r = Paginate(items, Params{Page: 3, PerPage: 3, Offset: 6})
	assert.Equal(t, []int{7, 8}, r.Items)
	assert.False(t, r.HasNext)
}

func TestPaginate_PastEnd(t *testing.T) {
	r := Paginate([]string{"a"}, Params{Page: 4, PerPage: 20, Offset: 60})
	require.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
	assert.Equal(t, 1, r.TotalPages)
}

func TestPaginate_Empty(t *testing.T) {
	r := Paginate([]string{}, DefaultParams())
	assert.Equal(t, 0, r.TotalPages)
	assert.False(t, r.HasNext)
	assert.False(t, r.HasPrev)
}

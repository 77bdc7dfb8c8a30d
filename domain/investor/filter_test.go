package investor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListRequestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListRequest
		want ListRequest
	}{
		{
			name: "zero value gets defaults",
			in:   ListRequest{},
			want: ListRequest{Page: 1, PageSize: DefaultPageSize, SortBy: SortByName, SortOrder: SortOrderAsc},
		},
		{
			name: "page size clamped to maximum",
			in:   ListRequest{Page: 2, PageSize: 500},
			want: ListRequest{Page: 2, PageSize: MaxPageSize, SortBy: SortByName, SortOrder: SortOrderAsc},
		},
		{
			name: "unknown sort field falls back to name",
			in:   ListRequest{Page: 1, PageSize: 10, SortBy: "created_at; DROP TABLE"},
			want: ListRequest{Page: 1, PageSize: 10, SortBy: SortByName, SortOrder: SortOrderAsc},
		},
		{
			name: "valid sort preserved",
			in:   ListRequest{Page: 3, PageSize: 50, SortBy: SortByStage, SortOrder: SortOrderDesc},
			want: ListRequest{Page: 3, PageSize: 50, SortBy: SortByStage, SortOrder: SortOrderDesc},
		},
		{
			name: "bad sort order falls back to asc",
			in:   ListRequest{Page: 1, PageSize: 10, SortOrder: "descending"},
			want: ListRequest{Page: 1, PageSize: 10, SortBy: SortByName, SortOrder: SortOrderAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestNewPagePaginationMath(t *testing.T) {
	// 45 records at page size 20 means 3 pages.
	page := NewPage(nil, 45, 2, 20)

	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)

	first := NewPage(nil, 45, 1, 20)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)

	last := NewPage(nil, 45, 3, 20)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

func TestNewPageEmptyResult(t *testing.T) {
	page := NewPage(nil, 0, 1, 20)

	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestNewPageExactMultiple(t *testing.T) {
	page := NewPage(nil, 40, 2, 20)

	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNext)
}

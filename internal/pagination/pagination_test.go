package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagetable/internal/records"
)

func TestPageFromOffset(t *testing.T) {
	tests := []struct {
		name  string
		first int
		rows  int
		want  int
	}{
		{name: "first page", first: 0, rows: 10, want: 1},
		{name: "second page start", first: 10, rows: 10, want: 2},
		{name: "mid page offset floors", first: 15, rows: 10, want: 2},
		{name: "last row of page", first: 29, rows: 10, want: 3},
		{name: "rows of 25", first: 50, rows: 25, want: 3},
		{name: "zero rows", first: 20, rows: 0, want: 1},
		{name: "negative offset", first: -5, rows: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageFromOffset(tt.first, tt.rows))
		})
	}
}

func TestOffsetForPage_RoundTrip(t *testing.T) {
	for _, rows := range []int{1, 5, 10, 25} {
		for page := 1; page <= 7; page++ {
			first := OffsetForPage(page, rows)
			assert.Equal(t, page, PageFromOffset(first, rows), "page %d rows %d", page, rows)
		}
	}
	assert.Equal(t, 0, OffsetForPage(0, 10))
	assert.Equal(t, 0, OffsetForPage(3, 0))
}

func TestPageCountAndLastOffset(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(3, 10))
	assert.Equal(t, 10, PageCount(100, 10))
	assert.Equal(t, 11, PageCount(101, 10))
	assert.Equal(t, 0, PageCount(50, 0))

	assert.Equal(t, 0, LastOffset(0, 10))
	assert.Equal(t, 90, LastOffset(100, 10))
	assert.Equal(t, 100, LastOffset(101, 10))
}

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0, ClampOffset(-10, 10, 100))
	assert.Equal(t, 20, ClampOffset(27, 10, 100))
	assert.Equal(t, 90, ClampOffset(500, 10, 100))
	assert.Equal(t, 500, ClampOffset(500, 10, 0), "unknown total only clamps below")
	assert.Equal(t, 0, ClampOffset(30, 0, 100))
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		wantPrev   bool
		wantNext   bool
	}{
		{name: "first of many", page: 1, totalPages: 5, wantPrev: false, wantNext: true},
		{name: "middle", page: 3, totalPages: 5, wantPrev: true, wantNext: true},
		{name: "last", page: 5, totalPages: 5, wantPrev: true, wantNext: false},
		{name: "single page", page: 1, totalPages: 1, wantPrev: false, wantNext: false},
		{name: "unknown total", page: 1, totalPages: 0, wantPrev: false, wantNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.page, 10, 42, tt.totalPages)
			assert.Equal(t, tt.page, meta.CurrentPage)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, 42, meta.TotalItems)
			assert.Equal(t, tt.wantPrev, meta.HasPrevious)
			assert.Equal(t, tt.wantNext, meta.HasNext)
		})
	}
}

func TestButtonState(t *testing.T) {
	assert.Equal(t, Buttons{PrevDisabled: true, NextDisabled: false}, ButtonState(1, 4))
	assert.Equal(t, Buttons{PrevDisabled: false, NextDisabled: false}, ButtonState(2, 4))
	assert.Equal(t, Buttons{PrevDisabled: false, NextDisabled: true}, ButtonState(4, 4))
	assert.Equal(t, Buttons{PrevDisabled: true, NextDisabled: true}, ButtonState(1, 1))
	assert.Equal(t, Buttons{PrevDisabled: true, NextDisabled: false}, ButtonState(1, 0),
		"Next renders enabled before the first response")
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "valid default", params: *NewParams()},
		{name: "zero rows", params: Params{Pages: []int{1}, Rows: 0}, wantErr: ErrInvalidRows},
		{name: "too many rows", params: Params{Pages: []int{1}, Rows: MaxRows + 1}, wantErr: ErrInvalidRows},
		{name: "no pages", params: Params{Rows: 10}, wantErr: ErrInvalidPageRange},
		{name: "page zero", params: Params{Pages: []int{0}, Rows: 10}, wantErr: ErrInvalidPage},
		{
			name:    "bad order",
			params:  Params{Pages: []int{1}, Rows: 10, SortField: "name", SortOrder: "up"},
			wantErr: ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParsePages(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		want    []int
		wantErr error
	}{
		{name: "no specs defaults to first page", specs: nil, want: []int{1}},
		{name: "single", specs: []string{"3"}, want: []int{3}},
		{name: "comma list", specs: []string{"2,4"}, want: []int{2, 4}},
		{name: "range", specs: []string{"3-5"}, want: []int{3, 4, 5}},
		{name: "mixed and deduplicated", specs: []string{"1,2", "2-3"}, want: []int{1, 2, 3}},
		{name: "keeps request order", specs: []string{"5", "1"}, want: []int{5, 1}},
		{name: "garbage", specs: []string{"x"}, wantErr: ErrInvalidPageRange},
		{name: "reversed range", specs: []string{"5-3"}, wantErr: ErrInvalidPageRange},
		{name: "page zero", specs: []string{"0"}, wantErr: ErrInvalidPage},
		{name: "too many", specs: []string{"1-500"}, wantErr: ErrTooManyPages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePages(tt.specs)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortedPages(t *testing.T) {
	in := []int{5, 1, 3}
	assert.Equal(t, []int{1, 3, 5}, SortedPages(in))
	assert.Equal(t, []int{5, 1, 3}, in)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		input     string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{input: "", wantField: "", wantOrder: "asc"},
		{input: "name", wantField: "name", wantOrder: "asc"},
		{input: "email:desc", wantField: "email", wantOrder: "desc"},
		{input: " id : ASC ", wantField: "id", wantOrder: "asc"},
		{input: ":desc", wantErr: ErrEmptySortField},
		{input: "name:sideways", wantErr: ErrInvalidSortOrder},
		{input: "a:b:c", wantErr: ErrInvalidSortFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field, order, err := ParseSort(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestRecordSorter_ValidFields(t *testing.T) {
	sorter := NewRecordSorter()

	for _, field := range []string{"id", "name", "email"} {
		assert.True(t, sorter.IsValidField(field), "field %s should be valid", field)
	}
	for _, field := range []string{"", "ID", "phone"} {
		assert.False(t, sorter.IsValidField(field), "field %s should be invalid", field)
	}
	assert.Equal(t, []string{"email", "id", "name"}, sorter.GetValidFields())
}

func TestRecordSorter_Sort(t *testing.T) {
	items := []records.Record{
		{ID: "10", Name: "carol", Email: "c@x.io"},
		{ID: "2", Name: "Alice", Email: "z@x.io"},
		{ID: "7", Name: "bob", Email: "a@x.io"},
	}
	sorter := NewRecordSorter()

	ids := func(rs []records.Record) []records.ID {
		out := make([]records.ID, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}

	assert.Equal(t, []records.ID{"2", "7", "10"}, ids(sorter.Sort(items, "id", "asc")))
	assert.Equal(t, []records.ID{"10", "7", "2"}, ids(sorter.Sort(items, "id", "desc")))
	assert.Equal(t, []records.ID{"2", "7", "10"}, ids(sorter.Sort(items, "name", "asc")))
	assert.Equal(t, []records.ID{"2", "10", "7"}, ids(sorter.Sort(items, "email", "desc")))

	assert.Equal(t, items, sorter.Sort(items, "phone", "asc"))
	assert.Equal(t, records.ID("10"), items[0].ID, "input must not be reordered")
}

func TestRecordSorter_Stable(t *testing.T) {
	items := []records.Record{
		{ID: "1", Name: "same"},
		{ID: "2", Name: "same"},
		{ID: "3", Name: "same"},
	}
	sorted := NewRecordSorter().Sort(items, "name", "desc")
	assert.Equal(t, items, sorted)
}

func TestNextSortField(t *testing.T) {
	field := ""
	var seen []string
	for i := 0; i < 4; i++ {
		field = NextSortField(field)
		seen = append(seen, field)
	}
	assert.Equal(t, []string{"id", "name", "email", ""}, seen)
}

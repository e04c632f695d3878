package grid

import (
	"strconv"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   int64
	name string
	num  int
}

func itemColumns() []Column[item] {
	return []Column[item]{
		{ID: "id", Header: "ID", Width: 4, Sortable: true, Align: AlignRight,
			Value: func(i item) string { return strconv.FormatInt(i.id, 10) }},
		{ID: "name", Header: "Name", Sortable: true, Filterable: true,
			Value: func(i item) string { return i.name }},
		{ID: "num", Header: "Num", Width: 5, Sortable: true,
			Value:   func(i item) string { return strconv.Itoa(i.num) },
			Compare: func(a, b item) int { return a.num - b.num }},
	}
}

func newItems() *Instance[item, int64] {
	return New(Options[item, int64]{
		Columns: itemColumns(),
		Data: []item{
			{1, "ESPN", 30},
			{2, "BBC One", 10},
			{3, "CNN", 20},
			{4, "Discovery", 5},
			{5, "ESPN 2", 40},
		},
		RowID: func(i item) int64 { return i.id },
	})
}

func ids(rows []Row[item, int64]) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestInstance_RowModelKeepsDataOrder(t *testing.T) {
	in := newItems()
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(in.RowModel()))
	assert.Equal(t, 2, in.RowModel()[2].Index)
}

func TestInstance_ToggleSortCycles(t *testing.T) {
	in := newItems()

	in.ToggleSort("name")
	assert.Equal(t, []int64{2, 3, 4, 1, 5}, ids(in.RowModel()))

	in.ToggleSort("name")
	assert.Equal(t, SortState{ColumnID: "name", Desc: true}, in.Sort())
	assert.Equal(t, []int64{5, 1, 4, 3, 2}, ids(in.RowModel()))

	in.ToggleSort("name")
	assert.Equal(t, SortState{}, in.Sort())
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(in.RowModel()))
}

func TestInstance_CustomCompare(t *testing.T) {
	in := newItems()
	in.SetSort(SortState{ColumnID: "num"})
	assert.Equal(t, []int64{4, 2, 3, 1, 5}, ids(in.RowModel()))
}

func TestInstance_SetSortIgnoresUnknownColumn(t *testing.T) {
	in := newItems()
	in.SetSort(SortState{ColumnID: "nope"})
	assert.Equal(t, SortState{}, in.Sort())
}

func TestInstance_FilterPreservesOrder(t *testing.T) {
	in := newItems()
	in.SetSort(SortState{ColumnID: "num", Desc: true})
	in.SetFilter("espn")

	assert.Equal(t, []int64{5, 1}, ids(in.RowModel()))
	assert.Equal(t, []int64{5, 1}, ids(in.OrderedRows()))

	in.SetFilter("")
	assert.Len(t, in.RowModel(), 5)
}

func TestInstance_FilterNoMatches(t *testing.T) {
	in := newItems()
	in.SetFilter("zzzz")
	assert.Empty(t, in.RowModel())
}

func TestInstance_ManualFlagsSkipProcessing(t *testing.T) {
	in := New(Options[item, int64]{
		Columns:         itemColumns(),
		Data:            []item{{2, "b", 0}, {1, "a", 0}},
		RowID:           func(i item) int64 { return i.id },
		Sort:            SortState{ColumnID: "name"},
		Filter:          "zzz",
		ManualSorting:   true,
		ManualFiltering: true,
	})
	assert.Equal(t, []int64{2, 1}, ids(in.RowModel()))
}

func TestInstance_Pagination(t *testing.T) {
	in := newItems()
	in.opts.PageSize = 2
	in.dirty = true

	assert.Equal(t, 3, in.PageCount())
	assert.Equal(t, []int64{1, 2}, ids(in.RowModel()))

	in.SetPage(2)
	assert.Equal(t, []int64{5}, ids(in.RowModel()))
	assert.Len(t, in.OrderedRows(), 5, "ordered rows span every page")

	in.SetPage(10)
	assert.Equal(t, []int64{5}, ids(in.RowModel()))
	assert.Equal(t, 2, in.Page())

	in.SetFilter("espn")
	assert.Equal(t, 0, in.Page())
}

func TestInstance_SetDataKeepsSortAndFilter(t *testing.T) {
	in := newItems()
	in.SetSort(SortState{ColumnID: "num"})
	in.SetData([]item{{9, "Z", 2}, {8, "Y", 1}})
	assert.Equal(t, []int64{8, 9}, ids(in.RowModel()))
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in   string
		want SortState
	}{
		{"", SortState{}},
		{"name", SortState{ColumnID: "name"}},
		{"-name", SortState{ColumnID: "name", Desc: true}},
		{" -num ", SortState{ColumnID: "num", Desc: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseSort(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestResolveWidths(t *testing.T) {
	tests := []struct {
		name  string
		cols  []Column[item]
		total int
		want  []int
	}{
		{
			name:  "fixed only",
			cols:  []Column[item]{{Width: 3}, {Width: 5}},
			total: 40,
			want:  []int{3, 5},
		},
		{
			name:  "single flex takes the rest",
			cols:  []Column[item]{{Width: 3}, {}, {Width: 5}},
			total: 20,
			want:  []int{3, 10, 5},
		},
		{
			name:  "flex columns share evenly",
			cols:  []Column[item]{{}, {}, {Width: 2}},
			total: 15,
			want:  []int{6, 5, 2},
		},
		{
			name:  "flex columns share by weight",
			cols:  []Column[item]{{Weight: 3}, {}, {Width: 2}},
			total: 23,
			want:  []int{15, 4, 2},
		},
		{
			name:  "weighted leftover goes leftmost",
			cols:  []Column[item]{{Weight: 2}, {Weight: 1}},
			total: 12,
			want:  []int{8, 3},
		},
		{
			name:  "min width wins when space runs out",
			cols:  []Column[item]{{Width: 10}, {MinWidth: 4}},
			total: 8,
			want:  []int{10, 4},
		},
		{
			name:  "flex never collapses below one",
			cols:  []Column[item]{{Width: 10}, {}},
			total: 5,
			want:  []int{10, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveWidths(tt.cols, tt.total)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveWidths_FillsTotal(t *testing.T) {
	widths := ResolveWidths(itemColumns(), 50)
	assert.Equal(t, 50, TotalWidth(widths))
}

func TestHeaderGroups(t *testing.T) {
	in := newItems()
	in.SetSort(SortState{ColumnID: "num", Desc: true})

	groups := in.HeaderGroups(30)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Headers, 3)

	h := groups[0].Headers[2]
	assert.True(t, h.Sorted())
	assert.Equal(t, "Num ▼", ansi.Strip(RenderHeader(h)))
	assert.False(t, groups[0].Headers[0].Sorted())
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		align Align
		want  string
	}{
		{"pad left aligned", "ab", 4, AlignLeft, "ab  "},
		{"pad right aligned", "ab", 4, AlignRight, "  ab"},
		{"center", "ab", 5, AlignCenter, " ab  "},
		{"truncate", "abcdef", 4, AlignLeft, "abc…"},
		{"exact", "abcd", 4, AlignLeft, "abcd"},
		{"zero width", "abc", 0, AlignLeft, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fit(tt.in, tt.width, tt.align))
		})
	}
}

func TestFit_IgnoresANSIWidth(t *testing.T) {
	styled := "\x1b[1mab\x1b[0m"
	got := Fit(styled, 4, AlignLeft)
	assert.Equal(t, 4, ansi.StringWidth(got))
	assert.Equal(t, "ab  ", ansi.Strip(got))
}

func TestRenderCell(t *testing.T) {
	in := newItems()
	row := in.RowModel()[0]
	col := in.Columns()[0]
	assert.Equal(t, "   1", RenderCell(col, row, 4))
}

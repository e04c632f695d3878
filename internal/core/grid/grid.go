package grid

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SortState names the sorted column. An empty ColumnID means unsorted.
type SortState struct {
	ColumnID string
	Desc     bool
}

// ParseSort reads "column" or "-column".
func ParseSort(s string) SortState {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return SortState{ColumnID: s[1:], Desc: true}
	}
	return SortState{ColumnID: s}
}

func (s SortState) String() string {
	if s.ColumnID == "" {
		return ""
	}
	if s.Desc {
		return "-" + s.ColumnID
	}
	return s.ColumnID
}

// Options configures an Instance. The Manual flags tell the engine the data
// already arrives filtered, sorted or paged by its supplier.
type Options[T any, K comparable] struct {
	Columns []Column[T]
	Data    []T
	RowID   func(T) K

	Sort     SortState
	Filter   string
	PageSize int

	ManualSorting    bool
	ManualFiltering  bool
	ManualPagination bool
}

// Row is one entry of the row model.
type Row[T any, K comparable] struct {
	// Index is the position of Original in the data slice.
	Index    int
	ID       K
	Original T
}

// Header is a column header for one render.
type Header[T any] struct {
	Index  int
	Column Column[T]
	Width  int
	Sort   SortState
}

// Sorted reports whether the header's column is the sorted column.
func (h Header[T]) Sorted() bool {
	return h.Sort.ColumnID != "" && h.Sort.ColumnID == h.Column.ID
}

// HeaderGroup is a row of headers. Catalog tables use a single group.
type HeaderGroup[T any] struct {
	Headers []Header[T]
}

// Instance holds the column and row model of one table.
type Instance[T any, K comparable] struct {
	opts Options[T, K]
	page int

	dirty    bool
	ordered  []Row[T, K] // filtered and sorted
	pageRows []Row[T, K]
}

// New returns an instance for opts.
func New[T any, K comparable](opts Options[T, K]) *Instance[T, K] {
	return &Instance[T, K]{opts: opts, dirty: true}
}

// SetData replaces the rows. Sort, filter and page are kept.
func (in *Instance[T, K]) SetData(data []T) {
	in.opts.Data = data
	in.dirty = true
}

// Data returns the unprocessed rows.
func (in *Instance[T, K]) Data() []T {
	return in.opts.Data
}

// Columns returns the column definitions.
func (in *Instance[T, K]) Columns() []Column[T] {
	return in.opts.Columns
}

// SetColumns replaces the column definitions.
func (in *Instance[T, K]) SetColumns(cols []Column[T]) {
	in.opts.Columns = cols
	in.dirty = true
}

// Column returns the column with id.
func (in *Instance[T, K]) Column(id string) (Column[T], bool) {
	for _, c := range in.opts.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Sort returns the current sort.
func (in *Instance[T, K]) Sort() SortState {
	return in.opts.Sort
}

// SetSort sorts by s. Unknown or unsortable columns clear the sort.
func (in *Instance[T, K]) SetSort(s SortState) {
	if c, ok := in.Column(s.ColumnID); !ok || !c.Sortable {
		s = SortState{}
	}
	in.opts.Sort = s
	in.dirty = true
}

// ToggleSort cycles a column through ascending, descending and unsorted.
func (in *Instance[T, K]) ToggleSort(columnID string) {
	cur := in.opts.Sort
	switch {
	case cur.ColumnID != columnID:
		in.SetSort(SortState{ColumnID: columnID})
	case !cur.Desc:
		in.SetSort(SortState{ColumnID: columnID, Desc: true})
	default:
		in.SetSort(SortState{})
	}
}

// SortableColumns returns the ids of sortable columns in display order.
func (in *Instance[T, K]) SortableColumns() []string {
	var ids []string
	for _, c := range in.opts.Columns {
		if c.Sortable {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Filter returns the filter query.
func (in *Instance[T, K]) Filter() string {
	return in.opts.Filter
}

// SetFilter sets the fuzzy filter query and returns to the first page.
func (in *Instance[T, K]) SetFilter(q string) {
	if q == in.opts.Filter {
		return
	}
	in.opts.Filter = q
	in.page = 0
	in.dirty = true
}

// Page returns the zero based page index.
func (in *Instance[T, K]) Page() int {
	return in.page
}

// SetPage moves to page p, clamped to the available pages.
func (in *Instance[T, K]) SetPage(p int) {
	in.page = p
	in.dirty = true
}

// PageCount returns the number of pages, at least one.
func (in *Instance[T, K]) PageCount() int {
	if in.opts.PageSize <= 0 || in.opts.ManualPagination {
		return 1
	}
	n := len(in.OrderedRows())
	pages := (n + in.opts.PageSize - 1) / in.opts.PageSize
	return max(pages, 1)
}

// RowID returns the id of a data row.
func (in *Instance[T, K]) RowID(row T) K {
	return in.opts.RowID(row)
}

// OrderedRows returns every row after filtering and sorting, before paging.
// This is the canonical display order used for range selection.
func (in *Instance[T, K]) OrderedRows() []Row[T, K] {
	in.build()
	return in.ordered
}

// RowModel returns the rows of the current page.
func (in *Instance[T, K]) RowModel() []Row[T, K] {
	in.build()
	return in.pageRows
}

// HeaderGroups returns the header rows for a table width of total cells.
func (in *Instance[T, K]) HeaderGroups(total int) []HeaderGroup[T] {
	widths := ResolveWidths(in.opts.Columns, total)
	headers := make([]Header[T], len(in.opts.Columns))
	for i, c := range in.opts.Columns {
		headers[i] = Header[T]{Index: i, Column: c, Width: widths[i], Sort: in.opts.Sort}
	}
	return []HeaderGroup[T]{{Headers: headers}}
}

func (in *Instance[T, K]) build() {
	if !in.dirty {
		return
	}
	in.dirty = false

	rows := make([]Row[T, K], len(in.opts.Data))
	for i, d := range in.opts.Data {
		rows[i] = Row[T, K]{Index: i, ID: in.opts.RowID(d), Original: d}
	}

	if in.opts.Filter != "" && !in.opts.ManualFiltering {
		rows = in.filter(rows)
	}

	if in.opts.Sort.ColumnID != "" && !in.opts.ManualSorting {
		if col, ok := in.Column(in.opts.Sort.ColumnID); ok {
			desc := in.opts.Sort.Desc
			slices.SortStableFunc(rows, func(a, b Row[T, K]) int {
				c := col.compare(a.Original, b.Original)
				if desc {
					return -c
				}
				return c
			})
		}
	}
	in.ordered = rows

	if in.opts.PageSize <= 0 || in.opts.ManualPagination {
		in.pageRows = rows
		return
	}

	pages := max((len(rows)+in.opts.PageSize-1)/in.opts.PageSize, 1)
	in.page = min(max(in.page, 0), pages-1)
	start := in.page * in.opts.PageSize
	end := min(start+in.opts.PageSize, len(rows))
	in.pageRows = rows[start:end]
}

// filterSource adapts rows to fuzzy.Source.
type filterSource[T any, K comparable] struct {
	rows []Row[T, K]
	cols []Column[T]
}

func (s filterSource[T, K]) Len() int { return len(s.rows) }

func (s filterSource[T, K]) String(i int) string {
	parts := make([]string, 0, len(s.cols))
	for _, c := range s.cols {
		parts = append(parts, c.ValueOf(s.rows[i].Original))
	}
	return strings.Join(parts, " ")
}

// filter keeps rows matching the query, preserving their order.
func (in *Instance[T, K]) filter(rows []Row[T, K]) []Row[T, K] {
	var cols []Column[T]
	for _, c := range in.opts.Columns {
		if c.Filterable && c.Value != nil {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return rows
	}

	matches := fuzzy.FindFrom(in.opts.Filter, filterSource[T, K]{rows: rows, cols: cols})
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	slices.Sort(idx)

	out := make([]Row[T, K], len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

package table

import (
	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/core/selection"
	"github.com/hay-kot/tvconsole/internal/core/styles"
)

// Cell is what a body cell renderer receives.
type Cell[T any, K comparable] struct {
	Row      grid.Row[T, K]
	Column   grid.Column[T]
	Width    int
	Selected bool
	Expanded bool
}

// BodyCellRenderer renders one body cell. The result is fitted to Width by
// the table, so renderers may return shorter or styled text.
type BodyCellRenderer[T any, K comparable] func(c Cell[T, K]) string

// HeaderCellRenderer renders one header cell.
type HeaderCellRenderer[T any] func(h grid.Header[T]) string

// ExpandedRowRenderer renders the detail shown under an expanded row.
type ExpandedRowRenderer[T any, K comparable] func(row grid.Row[T, K], width int) string

type renderKind int

const (
	renderFallback renderKind = iota
	renderSelect
	renderExpand
	renderDomain
)

func (k renderKind) String() string {
	switch k {
	case renderSelect:
		return "select"
	case renderExpand:
		return "expand"
	case renderDomain:
		return "domain"
	default:
		return "fallback"
	}
}

// renderer is the resolved rendering of one column.
type renderer[T any, K comparable] struct {
	kind   renderKind
	body   BodyCellRenderer[T, K]
	header HeaderCellRenderer[T]
}

// resolveRenderers picks the renderer of every column once. Built-in ids win
// over domain renderers registered under the same id.
func resolveRenderers[T any, K comparable](
	cols []grid.Column[T],
	headers map[string]HeaderCellRenderer[T],
	bodies map[string]BodyCellRenderer[T, K],
) []renderer[T, K] {
	out := make([]renderer[T, K], len(cols))
	for i, col := range cols {
		r := renderer[T, K]{header: headers[col.ID]}
		switch col.ID {
		case SelectColumnID:
			r.kind = renderSelect
			r.header = nil
		case ExpandColumnID:
			r.kind = renderExpand
			r.header = nil
		default:
			if fn, ok := bodies[col.ID]; ok && fn != nil {
				r.kind = renderDomain
				r.body = fn
			}
		}
		out[i] = r
	}
	return out
}

func checkboxIcon(state selection.CheckState) string {
	switch state {
	case selection.Checked:
		return styles.IconChecked
	case selection.Indeterminate:
		return styles.IconIndeterminate
	default:
		return styles.IconUnchecked
	}
}

func disclosureIcon(expanded bool) string {
	if expanded {
		return styles.IconExpanded
	}
	return styles.IconCollapsed
}

// RenderHeaderCell renders the header of column h.Index.
func (m *Model[T, K]) RenderHeaderCell(h grid.Header[T]) string {
	r := m.rendererAt(h.Index)
	switch r.kind {
	case renderSelect:
		return grid.Fit(checkboxIcon(m.store.HeaderCheck(len(m.store.Order()))), h.Width, grid.AlignLeft)
	case renderExpand:
		return grid.Fit("", h.Width, grid.AlignLeft)
	}
	if r.header != nil {
		return grid.Fit(r.header(h), h.Width, h.Column.Align)
	}
	return grid.RenderHeader(h)
}

// RenderBodyCell renders column index col of row at the given width.
func (m *Model[T, K]) RenderBodyCell(row grid.Row[T, K], col, width int) string {
	r := m.rendererAt(col)
	column := m.grid.Columns()[col]

	switch r.kind {
	case renderSelect:
		state := selection.Unchecked
		if m.store.IsSelected(row.ID) {
			state = selection.Checked
		}
		return grid.Fit(checkboxIcon(state), width, grid.AlignLeft)
	case renderExpand:
		return grid.Fit(disclosureIcon(m.store.IsExpanded(row.ID)), width, grid.AlignLeft)
	case renderDomain:
		return grid.Fit(r.body(Cell[T, K]{
			Row:      row,
			Column:   column,
			Width:    width,
			Selected: m.store.IsSelected(row.ID),
			Expanded: m.store.IsExpanded(row.ID),
		}), width, column.Align)
	default:
		return grid.RenderCell(column, row, width)
	}
}

func (m *Model[T, K]) rendererAt(i int) renderer[T, K] {
	if i < 0 || i >= len(m.renderers) {
		return renderer[T, K]{}
	}
	return m.renderers[i]
}

package grid

const (
	arrowAsc  = "▲"
	arrowDesc = "▼"
)

// RenderCell is the default body cell renderer: the column value fitted to
// width.
func RenderCell[T any, K comparable](col Column[T], row Row[T, K], width int) string {
	return Fit(col.ValueOf(row.Original), width, col.Align)
}

// RenderHeader is the default header renderer: the column label with a sort
// arrow when the column is sorted.
func RenderHeader[T any](h Header[T]) string {
	label := h.Column.Header
	if h.Sorted() {
		arrow := arrowAsc
		if h.Sort.Desc {
			arrow = arrowDesc
		}
		label += " " + arrow
	}
	return Fit(label, h.Width, h.Column.Align)
}

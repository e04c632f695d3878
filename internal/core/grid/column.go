// Package grid is the tabular engine behind catalog tables: column model,
// row model (filter, sort, page), column width resolution, virtualization
// and the default cell and header renderers. It knows nothing about
// selection; the table adapter layers that on top.
package grid

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Align is the horizontal alignment of a column's content.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column describes one column. A zero Width makes the column flexible: it
// shares the space left over by fixed columns in proportion to its Weight.
type Column[T any] struct {
	ID         string
	Header     string
	Width      int
	MinWidth   int
	Weight     int // flexible share; zero counts as 1
	Sortable   bool
	Filterable bool
	Align      Align

	// Value returns the plain cell text used by the default renderer,
	// filtering and the default sort order.
	Value func(T) string

	// Compare orders two rows for sorting. Defaults to a case-insensitive
	// comparison of Value.
	Compare func(a, b T) int
}

// Flexible reports whether the column has no fixed width.
func (c Column[T]) Flexible() bool {
	return c.Width <= 0
}

func (c Column[T]) weight() int {
	return max(c.Weight, 1)
}

// ValueOf returns the column text for row, or "" when the column has no
// accessor.
func (c Column[T]) ValueOf(row T) string {
	if c.Value == nil {
		return ""
	}
	return c.Value(row)
}

func (c Column[T]) compare(a, b T) int {
	if c.Compare != nil {
		return c.Compare(a, b)
	}
	return strings.Compare(strings.ToLower(c.ValueOf(a)), strings.ToLower(c.ValueOf(b)))
}

// columnGap is the number of cells between adjacent columns.
const columnGap = 1

// ResolveWidths distributes total cells across columns. Fixed columns get
// their width, flexible columns split what remains in proportion to their
// weights with the rounding leftover going to the leftmost flexible columns.
// MinWidth is always honoured.
func ResolveWidths[T any](cols []Column[T], total int) []int {
	widths := make([]int, len(cols))
	if len(cols) == 0 {
		return widths
	}

	remaining := total - columnGap*(len(cols)-1)
	var flex []int
	for i, c := range cols {
		if c.Flexible() {
			flex = append(flex, i)
			continue
		}
		widths[i] = max(c.Width, c.MinWidth)
		remaining -= widths[i]
	}

	if len(flex) > 0 {
		remaining = max(remaining, 0)
		weights := 0
		for _, i := range flex {
			weights += cols[i].weight()
		}

		shares := make([]int, len(flex))
		left := remaining
		for n, i := range flex {
			shares[n] = remaining * cols[i].weight() / weights
			left -= shares[n]
		}
		for n := 0; left > 0; n = (n + 1) % len(flex) {
			shares[n]++
			left--
		}

		for n, i := range flex {
			widths[i] = max(shares[n], cols[i].MinWidth, 1)
		}
	}

	return widths
}

// TotalWidth returns the rendered width of a row for the given column widths.
func TotalWidth(widths []int) int {
	if len(widths) == 0 {
		return 0
	}
	total := columnGap * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

// Fit truncates or pads s to exactly width cells. ANSI sequences in s are
// preserved and not counted.
func Fit(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	pad := width - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// Gap returns the separator placed between columns.
func Gap() string {
	return strings.Repeat(" ", columnGap)
}

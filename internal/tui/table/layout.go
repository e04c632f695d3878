package table

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/core/styles"
)

// gutterWidth is the cursor marker column left of the cells.
const gutterWidth = 2

type area int

const (
	areaNone area = iota
	areaHeader
	areaRow
	areaDetail
)

// bodyLine is one rendered line of the body: a row, or a line of the
// expanded content under it.
type bodyLine struct {
	area area
	row  int
	text string
}

// layout is the geometry of one render. View and mouse hit testing both use
// it so they always agree.
type layout[T any, K comparable] struct {
	widths []int
	xs     []int
	rows   []grid.Row[T, K]
	start  int
	end    int
	lines  []bodyLine
}

type hit struct {
	area area
	row  int
	col  int
}

func (m *Model[T, K]) layout() layout[T, K] {
	cols := m.grid.Columns()
	avail := max(m.width-gutterWidth, 0)

	l := layout[T, K]{
		widths: grid.ResolveWidths(cols, avail),
		xs:     make([]int, len(cols)),
		rows:   m.grid.RowModel(),
	}

	x := gutterWidth
	for i, w := range l.widths {
		l.xs[i] = x
		x += w + lipgloss.Width(grid.Gap())
	}

	expandedAt, detail := m.expandedDetail(l.rows, avail)
	heightOf := func(i int) int {
		if i == expandedAt {
			return 1 + len(detail)
		}
		return 1
	}

	viewport := m.bodyHeight()
	l.start, l.end = grid.Window(len(l.rows), m.cursor, m.offset, viewport, heightOf)

	for i := l.start; i < l.end && len(l.lines) < viewport; i++ {
		l.lines = append(l.lines, bodyLine{area: areaRow, row: i})
		if i != expandedAt {
			continue
		}
		for _, text := range detail {
			if len(l.lines) >= viewport {
				break
			}
			l.lines = append(l.lines, bodyLine{area: areaDetail, row: i, text: text})
		}
	}
	return l
}

// expandedDetail renders the content of the expanded row when it is on the
// current page. It returns the row position and the content lines.
func (m *Model[T, K]) expandedDetail(rows []grid.Row[T, K], width int) (int, []string) {
	expanded := m.store.Expanded()
	if len(expanded) == 0 || m.expandedRender == nil {
		return -1, nil
	}

	at := -1
	for i, r := range rows {
		if r.ID == expanded[0] {
			at = i
			break
		}
	}
	if at < 0 {
		return -1, nil
	}

	frame := styles.TableExpandedStyle.GetHorizontalFrameSize()
	content := m.expandedRender(rows[at], max(width-frame, 1))
	lines := strings.Split(styles.TableExpandedStyle.Render(content), "\n")

	if m.expandedHeight != nil {
		h := max(m.expandedHeight(rows[at]), 0)
		for len(lines) < h {
			lines = append(lines, "")
		}
		lines = lines[:h]
	}
	return at, lines
}

func (m *Model[T, K]) showFilterLine() bool {
	return m.filtering || m.grid.Filter() != ""
}

// bodyHeight is the number of lines available for rows: the height minus
// the header, the footer and the filter line when shown.
func (m *Model[T, K]) bodyHeight() int {
	reserved := 2
	if m.showFilterLine() {
		reserved++
	}
	return max(m.height-reserved, 1)
}

// hitTest maps a position relative to the table origin to what is drawn
// there.
func (m *Model[T, K]) hitTest(x, y int) (hit, bool) {
	l := m.layout()

	col := -1
	for i, start := range l.xs {
		if x >= start && x < start+l.widths[i] {
			col = i
			break
		}
	}

	switch {
	case y == 0:
		return hit{area: areaHeader, row: -1, col: col}, true
	case y >= 1 && y-1 < len(l.lines):
		line := l.lines[y-1]
		return hit{area: line.area, row: line.row, col: col}, true
	}
	return hit{}, false
}

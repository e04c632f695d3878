package table

import (
	"fmt"
	"strings"

	"github.com/hay-kot/tvconsole/internal/core/grid"
	"github.com/hay-kot/tvconsole/internal/core/styles"
)

const cursorMarker = "┃"

// View renders the header, the visible rows with any expanded content
// under its row, the filter line and the footer.
func (m *Model[T, K]) View() string {
	l := m.layout()
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	rendered := 0
	if len(l.rows) == 0 {
		msg := "No rows"
		if m.grid.Filter() != "" {
			msg = "No matching rows"
		}
		b.WriteString(strings.Repeat(" ", gutterWidth))
		b.WriteString(styles.TableEmptyStyle.Render(msg))
		b.WriteString("\n")
		rendered++
	}

	for _, line := range l.lines {
		switch line.area {
		case areaRow:
			b.WriteString(m.renderRow(l, line.row))
		case areaDetail:
			b.WriteString(strings.Repeat(" ", gutterWidth))
			b.WriteString(line.text)
		}
		b.WriteString("\n")
		rendered++
	}

	for i := rendered; i < m.bodyHeight(); i++ {
		b.WriteString("\n")
	}

	if m.showFilterLine() {
		b.WriteString(m.renderFilter())
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model[T, K]) renderHeader() string {
	groups := m.grid.HeaderGroups(max(m.width-gutterWidth, 0))
	if len(groups) == 0 {
		return ""
	}
	cells := make([]string, len(groups[0].Headers))
	for i, h := range groups[0].Headers {
		cells[i] = m.RenderHeaderCell(h)
	}
	return strings.Repeat(" ", gutterWidth) + styles.TableHeaderStyle.Render(strings.Join(cells, grid.Gap()))
}

// renderRow draws one row. The row style comes from the selection on every
// call.
func (m *Model[T, K]) renderRow(l layout[T, K], i int) string {
	row := l.rows[i]

	cells := make([]string, len(l.widths))
	for c, w := range l.widths {
		cells[c] = m.RenderBodyCell(row, c, w)
	}

	style := styles.TableRowStyle
	if m.store.IsSelected(row.ID) {
		style = styles.TableSelectedRowStyle
	}

	gutter := strings.Repeat(" ", gutterWidth)
	if m.focused && i == m.cursor {
		marker := styles.TableCursorStyle
		if m.shiftActive() {
			marker = styles.TableRangeCursorStyle
		}
		gutter = marker.Render(cursorMarker) + " "
	}

	return gutter + style.Render(strings.Join(cells, grid.Gap()))
}

func (m *Model[T, K]) renderFilter() string {
	if m.filtering {
		return m.filter.View()
	}
	return styles.FilterPromptStyle.Render(styles.IconFilter+" ") + m.grid.Filter()
}

func (m *Model[T, K]) renderFooter() string {
	parts := []string{fmt.Sprintf("%d/%d selected", m.store.Len(), len(m.store.Order()))}
	if s := m.grid.Sort(); s.ColumnID != "" {
		parts = append(parts, "sort "+s.String())
	}
	if pages := m.grid.PageCount(); pages > 1 {
		parts = append(parts, fmt.Sprintf("page %d/%d", m.grid.Page()+1, pages))
	}
	return styles.TableFooterStyle.Render(strings.Join(parts, " · "))
}

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/hay-kot/tvconsole/internal/core/notify"
	"github.com/hay-kot/tvconsole/internal/core/styles"
	"github.com/hay-kot/tvconsole/internal/tui/components"
)

const tabSeparator = " "

// View renders the console.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	v.ReportFocus = true
	v.KeyboardEnhancements.ReportEventTypes = true
	if m.cfg.TUI.Mouse {
		v.MouseMode = tea.MouseModeCellMotion
	}
	return v
}

func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabBar(w),
		styles.DividerStyle.Render(strings.Repeat("─", w)),
		m.renderBody(max(h-chromeHeight, 1)),
		m.renderStatusBar(w),
	)

	switch {
	case m.helpDialog != nil:
		return m.helpDialog.Overlay(mainView, w, h)
	case m.infoDialog != nil:
		return m.infoDialog.Overlay(mainView, w, h)
	}
	return mainView
}

func (m Model) tabLabels() []string {
	labels := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		label := fmt.Sprintf(" %d %s", i+1, t.Title())
		if m.loaded {
			label += fmt.Sprintf(" (%d)", t.RowCount())
		}
		label += " "
		if i == m.active {
			labels[i] = styles.TabSelectedStyle.Render(label)
		} else {
			labels[i] = styles.TabNormalStyle.Render(label)
		}
	}
	return labels
}

// tabAt returns the tab whose label covers column x of the tab bar, or -1.
func (m Model) tabAt(x int) int {
	pos := 0
	for i, label := range m.tabLabels() {
		w := lipgloss.Width(label)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + lipgloss.Width(tabSeparator)
	}
	return -1
}

func (m Model) renderTabBar(width int) string {
	left := strings.Join(m.tabLabels(), tabSeparator)

	right := ""
	if m.loaded {
		right = styles.StatusBarStyle.Render("updated " + humanize.Time(m.snapshot.LoadedAt))
	}
	if m.refreshing {
		right = styles.StatusBarStyle.Render("refreshing…")
	}

	spacer := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + components.Pad(spacer) + right
}

func (m Model) renderBody(height int) string {
	if !m.loaded {
		return lipgloss.NewStyle().Height(height).Render(styles.TableEmptyStyle.Render("  Loading catalog…"))
	}
	return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(m.activeTab().View())
}

func (m Model) renderStatusBar(width int) string {
	var left []string
	if m.surface.Active() {
		left = append(left, styles.RangeBadgeStyle.Render(styles.IconRange+" RANGE"))
	}
	if n, ok := m.notes.Latest(); ok && !n.Expired(time.Now(), notificationTTL) {
		left = append(left, renderNotification(n))
	}

	hints := []string{
		styles.StatusKeyStyle.Render("?") + styles.StatusBarStyle.Render(" help"),
		styles.StatusKeyStyle.Render("y") + styles.StatusBarStyle.Render(" copy"),
		styles.StatusKeyStyle.Render("q") + styles.StatusBarStyle.Render(" quit"),
	}

	l := strings.Join(left, " ")
	r := strings.Join(hints, "  ")
	spacer := max(width-lipgloss.Width(l)-lipgloss.Width(r), 1)
	return l + components.Pad(spacer) + r
}

func renderNotification(n notify.Notification) string {
	switch n.Level {
	case notify.LevelError:
		return styles.StatusErrorStyle.Render(n.Message)
	case notify.LevelWarning:
		return lipgloss.NewStyle().Foreground(styles.ColorWarning).Render(n.Message)
	default:
		return styles.StatusBarStyle.Render(n.Message)
	}
}

package catalog

import (
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/hay-kot/tvconsole/internal/core/catalog"
	"github.com/hay-kot/tvconsole/internal/core/styles"
	"github.com/hay-kot/tvconsole/internal/tui/jsoncolor"
	"github.com/hay-kot/tvconsole/pkg/kv"
)

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func tag(s string) string {
	if s == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(styles.ColorForString(s)).Render(s)
}

func activeBadge(active bool) string {
	if active {
		return styles.EnabledStyle.Render("● active")
	}
	return styles.DisabledStyle.Render("○ off")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func roleBadge(r catalog.Role) string {
	c := styles.ColorMuted
	switch r {
	case catalog.RoleAdmin:
		c = styles.ColorError
	case catalog.RoleOperator:
		c = styles.ColorWarning
	}
	return lipgloss.NewStyle().Foreground(c).Render(r.String())
}

func statusBadge(s catalog.EPGStatus) string {
	c := styles.ColorMuted
	switch s {
	case catalog.EPGStatusSuccess:
		c = styles.ColorSuccess
	case catalog.EPGStatusError:
		c = styles.ColorError
	case catalog.EPGStatusFetching:
		c = styles.ColorWarning
	}
	return lipgloss.NewStyle().Foreground(c).Render(s.String())
}

// relTime formats t relative to now, "never" for nil.
func relTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "never"
	}
	return humanize.Time(*t)
}

func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// detail renders label/value pairs as an aligned block.
func detail(pairs ...[2]string) string {
	labelWidth := 0
	for _, p := range pairs {
		labelWidth = max(labelWidth, len(p[0]))
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		label := p[0] + ":" + strings.Repeat(" ", labelWidth-len(p[0])+1)
		lines[i] = styles.DetailLabelStyle.Render(label) + styles.DetailValueStyle.Render(p[1])
	}
	return strings.Join(lines, "\n")
}

func jsonDetail(v any) string {
	out, err := jsoncolor.Value(v)
	if err != nil {
		return styles.StatusErrorStyle.Render(err.Error())
	}
	return out
}

const markdownCacheSize = 32

type markdownKey struct {
	width  int
	source string
}

// markdown renders notes with the theme's glamour style. Output is cached
// per width and source since detail panes re-render on every frame.
type markdown struct {
	cache *kv.Store[markdownKey, string]
}

func newMarkdown() *markdown {
	return &markdown{cache: kv.New[markdownKey, string](markdownCacheSize)}
}

func (m *markdown) render(source string, width int) string {
	return m.cache.GetOrSet(markdownKey{width: width, source: source}, func() string {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle()),
			glamour.WithWordWrap(max(width-2, 10)),
		)
		if err != nil {
			return source
		}
		out, err := r.Render(source)
		if err != nil {
			return source
		}
		return strings.Trim(out, "\n")
	})
}

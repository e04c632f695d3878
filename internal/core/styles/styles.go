// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color

	// ColorBgSelection marks selected rows. It is the surface tinted toward
	// the primary color.
	ColorBgSelection color.Color
	ColorBgCursor    color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// TUI shared styles.
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
	SectionStyle    lipgloss.Style
	HelpKeyStyle    lipgloss.Style

	TabSelectedStyle lipgloss.Style
	TabNormalStyle   lipgloss.Style

	// Table styles.
	TableHeaderStyle      lipgloss.Style
	TableRowStyle         lipgloss.Style
	TableSelectedRowStyle lipgloss.Style
	TableCursorStyle      lipgloss.Style
	TableRangeCursorStyle lipgloss.Style
	TableExpandedStyle    lipgloss.Style
	TableEmptyStyle       lipgloss.Style
	TableFooterStyle      lipgloss.Style

	StatusBarStyle    lipgloss.Style
	StatusKeyStyle    lipgloss.Style
	StatusErrorStyle  lipgloss.Style
	RangeBadgeStyle   lipgloss.Style
	FilterPromptStyle lipgloss.Style

	EnabledStyle  lipgloss.Style
	DisabledStyle lipgloss.Style

	// Expanded-row detail styles.
	DetailLabelStyle lipgloss.Style
	DetailValueStyle lipgloss.Style

	JSONKeyStyle    lipgloss.Style
	JSONStringStyle lipgloss.Style
	JSONNumberStyle lipgloss.Style
	JSONBoolStyle   lipgloss.Style
	JSONNullStyle   lipgloss.Style
	JSONPunctStyle  lipgloss.Style
)

// ColorPool is used for deterministic color hashing of group and role names.
var ColorPool []color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	ColorBgSelection = blend(p.Surface, p.Primary, 0.25)
	ColorBgCursor = p.Surface

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	SectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	TabSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	TabNormalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	TableRowStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	TableSelectedRowStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorBgSelection)
	TableCursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	TableRangeCursorStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
	TableExpandedStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorSurface).
		PaddingLeft(1)
	TableEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	TableFooterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StatusKeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	RangeBadgeStyle = lipgloss.NewStyle().
		Background(ColorWarning).
		Foreground(ColorBackground).
		Bold(true).
		Padding(0, 1)
	FilterPromptStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	EnabledStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	DisabledStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	DetailLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	DetailValueStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	JSONKeyStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	JSONStringStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	JSONNumberStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	JSONBoolStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	JSONNullStyle = lipgloss.NewStyle().Foreground(ColorError)
	JSONPunctStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ColorPool = []color.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
		ColorMuted,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// blend mixes a toward b by t in Lab space. Falls back to a when either color
// cannot be converted.
func blend(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return a
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"
)

// Pad returns n spaces.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// Overlay draws modal centered over background. The background is padded to
// width x height first so a short background never clips the modal.
func Overlay(background, modal string, width, height int) string {
	bgLayer := lipgloss.NewLayer(lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, background))
	modalLayer := lipgloss.NewLayer(modal)

	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

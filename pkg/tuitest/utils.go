// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace for cleaner golden files.
// This makes golden files human-readable and less fragile to style changes.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		result = append(result, trimmed)
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// Lines returns the stripped view split into lines.
func Lines(s string) []string {
	return strings.Split(StripANSI(s), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Text: string(key)})
}

// ShiftKeyPress creates a key press for a rune with Shift held.
func ShiftKeyPress(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Mod: tea.ModShift})
}

// KeyCode creates a key press message for a special key such as tea.KeySpace.
func KeyCode(code rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// ShiftDown creates the key press of the left Shift key on its own.
func ShiftDown() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyLeftShift})
}

// ShiftUp creates the key release of the left Shift key.
func ShiftUp() tea.Msg {
	return tea.KeyReleaseMsg(tea.Key{Code: tea.KeyLeftShift})
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
}

// KeyUp creates an up arrow key press message.
func KeyUp() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp})
}

// KeyEnter creates an enter key press message.
func KeyEnter() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
}

// KeyEsc creates an escape key press message.
func KeyEsc() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
}

// Click creates a left mouse click at the given cell.
func Click(x, y int, shift bool) tea.Msg {
	m := tea.Mouse{X: x, Y: y, Button: tea.MouseLeft}
	if shift {
		m.Mod = tea.ModShift
	}
	return tea.MouseClickMsg(m)
}

// Blur creates a terminal focus-lost message.
func Blur() tea.Msg {
	return tea.BlurMsg{}
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

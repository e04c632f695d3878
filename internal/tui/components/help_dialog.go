// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/tvconsole/internal/core/styles"
)

// HelpSection groups bindings under a title.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog lists every key binding of the console.
type HelpDialog struct {
	title    string
	sections []HelpSection
}

// NewHelpDialog creates a help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the dialog box.
func (h *HelpDialog) View() string {
	var lines []string
	separator := styles.DividerStyle.Render(strings.Repeat("─", 25))

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.SectionStyle.Render(section.Title), separator)
		}
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			lines = append(lines, formatKeyDesc(help.Key, help.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		styles.ModalHelpStyle.Render("esc/? close"),
	)
	return styles.ModalStyle.Render(content)
}

// Overlay renders the dialog centered over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	return Overlay(background, h.View(), width, height)
}

func formatKeyDesc(k, desc string) string {
	const keyWidth = 12
	padded := k + Pad(keyWidth-lipgloss.Width(k))
	return styles.HelpKeyStyle.Render(padded) + styles.DetailValueStyle.Render(desc)
}

package components

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tvconsole/pkg/tuitest"
)

func TestInfoDialog_RendersSectionsItemsFooter(t *testing.T) {
	d := NewInfoDialog(
		"Database",
		[]InfoSection{
			{
				Title: "File",
				Items: []InfoItem{
					{Label: "Path", Value: "/tmp/tvconsole.db"},
					{Label: "Schema", Value: "2"},
				},
			},
			{
				Title: "Rows",
				Items: []InfoItem{
					{Label: "channels", Value: "48", Status: InfoStatusPass},
					{Label: "logos", Value: "0", Status: InfoStatusWarn},
					{Label: "epg", Value: "error", Status: InfoStatusFail},
				},
			},
		},
		"seeded demo data",
		"[j/k] scroll  [esc] close",
		120,
		40,
	)

	out := tuitest.StripANSI(d.Overlay("bg", 120, 40))
	for _, want := range []string{"Database", "File", "Path", "/tmp/tvconsole.db", "seeded demo data", "✔", "●", "✘"} {
		assert.Contains(t, out, want)
	}
}

func TestInfoDialog_Scrolls(t *testing.T) {
	items := make([]InfoItem, 0, 50)
	for range 50 {
		items = append(items, InfoItem{Label: "item", Value: "value"})
	}

	d := NewInfoDialog("Database", []InfoSection{{Title: "Many", Items: items}, {Title: "Empty"}}, "", "help", 70, 18)

	before := d.Overlay("bg", 70, 18)
	d.ScrollDown()
	after := d.Overlay("bg", 70, 18)

	assert.Contains(t, before, "Database")
	assert.NotEqual(t, before, after)
}

func TestHelpDialog_ListsEnabledBindings(t *testing.T) {
	disabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden action"))
	disabled.SetEnabled(false)

	d := NewHelpDialog("Keys", []HelpSection{
		{Title: "Table", Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle row")),
			disabled,
		}},
		{Title: "Console", Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy ids")),
		}},
	})

	out := tuitest.StripANSI(d.Overlay("", 80, 30))
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "Table")
	assert.Contains(t, out, "toggle row")
	assert.Contains(t, out, "copy ids")
	assert.NotContains(t, out, "hidden action")
}

func TestOverlay_ShortBackgroundDoesNotClip(t *testing.T) {
	modal := "first line\nsecond line"

	out := tuitest.StripANSI(Overlay("bg", modal, 40, 10))
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Contains(t, out, "first line")
	assert.Contains(t, out, "second line")
	assert.True(t, strings.HasPrefix(lines[0], "bg"))
	assert.Contains(t, lines[4], "first line", "modal is centered vertically")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "", Pad(-1))
	assert.Equal(t, "   ", Pad(3))
}

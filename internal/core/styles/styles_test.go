package styles

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNamesResolve(t *testing.T) {
	names := ThemeNames()
	require.Contains(t, names, DefaultTheme)
	for _, name := range names {
		_, ok := GetPalette(name)
		assert.True(t, ok, name)
	}
}

func TestSetTheme_SelectionColorBetweenSurfaceAndPrimary(t *testing.T) {
	p, _ := GetPalette("gruvbox")
	SetTheme(p)
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	sel, ok := colorful.MakeColor(ColorBgSelection)
	require.True(t, ok)
	surface, _ := colorful.MakeColor(p.Surface)
	primary, _ := colorful.MakeColor(p.Primary)

	assert.NotEqual(t, surface.Hex(), sel.Hex())
	assert.Less(t, sel.DistanceLab(surface), primary.DistanceLab(surface))
}

func TestColorForStringIsStable(t *testing.T) {
	assert.Equal(t, ColorForString("Sports"), ColorForString("Sports"))
}

func TestGlamourStyleUsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.H2.Color)
	c, _ := colorful.MakeColor(ColorPrimary)
	assert.Equal(t, c.Hex(), *cfg.H2.Color)
}

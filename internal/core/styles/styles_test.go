package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		_, ok := GetPalette(name)
		assert.True(t, ok, name)
	}

	_, ok := GetPalette("solarized-neon")
	assert.False(t, ok)
}

func TestSetTheme_RebuildsAuthorPool(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	for _, name := range ThemeNames() {
		p, _ := GetPalette(name)
		SetTheme(p)

		require.Len(t, ColorPool, 10, name)
		assert.Equal(t, p.Primary, ColorPrimary)
	}
}

func TestColorForString_Deterministic(t *testing.T) {
	assert.Equal(t, ColorForString("alice"), ColorForString("alice"))
	assert.Contains(t, ColorPool, ColorForString("bob"))
	assert.Contains(t, ColorPool, ColorForString(""))
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Margin)
	assert.Equal(t, uint(0), *cfg.Document.Margin)
	require.NotNil(t, cfg.H1.Color)
	assert.Equal(t, *colorHexPtr(CurrentPalette.Primary), *cfg.H1.Color)
}

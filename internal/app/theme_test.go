package app

import (
	"image/color"
	"testing"

	"drawing-studio/internal/compose"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestStudioThemeFollowsCanvasColors(t *testing.T) {
	opts := compose.DefaultOptions()
	th := NewStudioTheme(opts)

	assert.Equal(t, opts.Outline, th.Color(theme.ColorNamePrimary, theme.VariantLight))
	assert.Equal(t, opts.Margin, th.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark),
		th.Color(theme.ColorNameBackground, theme.VariantDark))

	assert.Equal(t, color.NRGBA{B: 255, A: 0x60}, th.Color(theme.ColorNameSelection, theme.VariantLight))
}

func TestStudioThemeFallsBack(t *testing.T) {
	th := NewStudioTheme(compose.DefaultOptions())

	assert.Equal(t, float32(4), th.Size(theme.SizeNamePadding))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameText), th.Size(theme.SizeNameText))
	assert.Equal(t, theme.DefaultTheme().Color(theme.ColorNameForeground, theme.VariantLight),
		th.Color(theme.ColorNameForeground, theme.VariantLight))
}

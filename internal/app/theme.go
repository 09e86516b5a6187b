package app

import (
	"image/color"

	"drawing-studio/internal/compose"
	"drawing-studio/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// StudioTheme ties the Fyne chrome to the canvas colors: primary widgets
// use the selection outline, and in the light variant the window
// background is the composer margin so the canvas blends into the window.
type StudioTheme struct {
	fyne.Theme

	primary    color.Color
	background color.Color
}

var _ fyne.Theme = (*StudioTheme)(nil)

// NewStudioTheme derives the theme from the composer options.
func NewStudioTheme(opts compose.Options) *StudioTheme {
	return &StudioTheme{
		Theme:      theme.DefaultTheme(),
		primary:    opts.Outline,
		background: opts.Margin,
	}
}

func (t *StudioTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return t.primary
	case theme.ColorNameSelection:
		return color.NRGBA{R: colorutil.Blue.R, G: colorutil.Blue.G, B: colorutil.Blue.B, A: 0x60}
	case theme.ColorNameBackground:
		if variant == theme.VariantLight && t.background != nil {
			return t.background
		}
	}
	return t.Theme.Color(name, variant)
}

func (t *StudioTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return 4 // Keeps the toolbar on one row at 800px
	}
	return t.Theme.Size(name)
}

// Package colorutil provides shared colors and color helpers for the drawing studio.
package colorutil

import (
	"image/color"
)

// Common colors used by the canvases.
var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Blue      = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	LightGray = color.RGBA{R: 192, G: 192, B: 192, A: 255}
	Margin    = color.RGBA{R: 240, G: 240, B: 240, A: 255} // Area outside the composer canvas
)

// Darker returns c with each channel scaled by 0.7, matching the usual
// "darker shade" used for swatch outlines.
func Darker(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{
		R: uint8(float64(r>>8) * 0.7),
		G: uint8(float64(g>>8) * 0.7),
		B: uint8(float64(b>>8) * 0.7),
		A: uint8(a >> 8),
	}
}

// ToRGBA converts any color to 8-bit premultiplied RGBA.
func ToRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Package compose implements the composer canvas: an ordered stack of image
// layers that can be moved, rotated, scaled and flipped through handles.
package compose

import (
	"image"
	"strings"

	"drawing-studio/pkg/geometry"
)

// LayerID identifies a layer within its canvas. Zero means "no layer".
type LayerID uint64

// Category tags where a layer's image came from. It has no effect on
// behavior; all categories are manipulated the same way.
type Category int

const (
	CategoryCustom Category = iota
	CategoryAnimal
	CategoryFlower
)

func (c Category) String() string {
	switch c {
	case CategoryAnimal:
		return "animal"
	case CategoryFlower:
		return "flower"
	default:
		return "custom"
	}
}

// ParseCategory maps a tag such as "Animal" to a Category. Unknown tags
// become CategoryCustom.
func ParseCategory(tag string) Category {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "animal":
		return CategoryAnimal
	case "flower":
		return CategoryFlower
	default:
		return CategoryCustom
	}
}

// Layer is one placed image with its manipulation state.
// The image itself is never modified; size changes go through Scale.
type Layer struct {
	ID       LayerID
	Image    image.Image
	Category Category

	Position geometry.Point2D // Top-left anchor in canvas coordinates
	Rotation float64          // Radians, accumulated and never normalized
	Scale    float64
	FlipH    bool
	FlipV    bool
}

// NewLayer creates an untransformed layer for img.
func NewLayer(img image.Image, category Category) *Layer {
	return &Layer{
		Image:    img,
		Category: category,
		Scale:    1.0,
	}
}

// Width returns the source image width in pixels.
func (l *Layer) Width() float64 {
	if l.Image == nil {
		return 0
	}
	return float64(l.Image.Bounds().Dx())
}

// Height returns the source image height in pixels.
func (l *Layer) Height() float64 {
	if l.Image == nil {
		return 0
	}
	return float64(l.Image.Bounds().Dy())
}

// Size returns the source image dimensions.
func (l *Layer) Size() geometry.Size {
	return geometry.NewSize(l.Width(), l.Height())
}

// ScaledSize returns the image dimensions after scaling.
func (l *Layer) ScaledSize() geometry.Size {
	return l.Size().Scale(l.Scale)
}

// Center returns the layer center in canvas coordinates.
func (l *Layer) Center() geometry.Point2D {
	s := l.ScaledSize()
	return geometry.Point2D{X: l.Position.X + s.Width/2, Y: l.Position.Y + s.Height/2}
}

// FlipHorizontal toggles the horizontal mirror.
func (l *Layer) FlipHorizontal() {
	l.FlipH = !l.FlipH
}

// FlipVertical toggles the vertical mirror.
func (l *Layer) FlipVertical() {
	l.FlipV = !l.FlipV
}

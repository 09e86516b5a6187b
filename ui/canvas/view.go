// Package canvas provides the Fyne widgets for the composer and the
// sketchpad. Both draw through a raster and forward pointer events to the
// application state in raster pixel coordinates.
package canvas

import (
	"image"
	"sync"

	"drawing-studio/pkg/geometry"

	"fyne.io/fyne/v2"
)

// pixelView tracks the raster's pixel size and its ratio to widget units.
// The raster callback runs on the render goroutine while events arrive on
// the event goroutine, hence the lock.
type pixelView struct {
	mu    sync.Mutex
	size  image.Point
	ratio float64
}

// update records the latest raster size against the widget size.
func (v *pixelView) update(w, h int, widget fyne.Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.size = image.Pt(w, h)
	if widget.Width > 0 {
		v.ratio = float64(w) / float64(widget.Width)
	}
}

// toPixels converts a widget-relative position to raster pixels.
func (v *pixelView) toPixels(pos fyne.Position) geometry.Point2D {
	v.mu.Lock()
	defer v.mu.Unlock()
	r := v.ratio
	if r <= 0 {
		r = 1
	}
	return geometry.NewPoint2D(float64(pos.X)*r, float64(pos.Y)*r)
}

// rect returns the raster rectangle last drawn.
func (v *pixelView) rect() image.Rectangle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return image.Rectangle{Max: v.size}
}

// unitsFor converts a size in device pixels to Fyne units at the given
// output scale.
func unitsFor(px image.Point, scale float32) fyne.Size {
	if scale <= 0 {
		scale = 1
	}
	return fyne.NewSize(float32(px.X)/scale, float32(px.Y)/scale)
}

// canvasScale returns the device pixels per unit of the window showing obj,
// or 1 before it is shown.
func canvasScale(obj fyne.CanvasObject) float32 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	if c := app.Driver().CanvasForObject(obj); c != nil {
		return c.Scale()
	}
	return 1
}

// containsAbsolute reports whether an absolute window position falls on obj.
func containsAbsolute(obj fyne.CanvasObject, pos fyne.Position) bool {
	app := fyne.CurrentApp()
	if app == nil {
		return false
	}
	origin := app.Driver().AbsolutePositionForObject(obj)
	size := obj.Size()
	return pos.X >= origin.X && pos.Y >= origin.Y &&
		pos.X < origin.X+size.Width && pos.Y < origin.Y+size.Height
}

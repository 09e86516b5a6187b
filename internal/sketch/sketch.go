// Package sketch implements the freehand sketchpad: a fixed-size transparent
// drawing buffer stretched over the view, plus one movable uploaded image
// underneath it.
package sketch

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"drawing-studio/pkg/colorutil"
	"drawing-studio/pkg/geometry"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600

	MinPenSize     = 1
	MaxPenSize     = 20
	DefaultPenSize = 4
)

// ErrNoImage is returned when loading a nil or empty image.
var ErrNoImage = errors.New("no image to load")

// Pad is the sketchpad model. Pen strokes land in the buffer, which has its
// own resolution and is scaled to whatever view it is shown in. The uploaded
// image lives in view coordinates and is drawn unscaled.
// A Pad is not safe for concurrent use.
type Pad struct {
	buffer *image.RGBA

	penColor color.Color
	penSize  int
	eraser   bool

	img      image.Image
	imgPos   image.Point
	selected bool

	// Gesture state
	stroking  bool
	prev      geometry.Point2D
	moving    bool
	dragStart image.Point
}

// New creates an empty pad with a width×height buffer. Non-positive
// dimensions fall back to 800×600.
func New(width, height int) *Pad {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return &Pad{
		buffer:   image.NewRGBA(image.Rect(0, 0, width, height)),
		penColor: colorutil.Black,
		penSize:  DefaultPenSize,
	}
}

// Bounds returns the drawing buffer rectangle.
func (p *Pad) Bounds() image.Rectangle { return p.buffer.Bounds() }

// PenColor returns the stroke color.
func (p *Pad) PenColor() color.Color { return p.penColor }

// SetPenColor changes the stroke color. nil is ignored.
func (p *Pad) SetPenColor(c color.Color) {
	if c != nil {
		p.penColor = c
	}
}

// PenSize returns the stroke width in buffer pixels.
func (p *Pad) PenSize() int { return p.penSize }

// SetPenSize sets the stroke width, clamped to [MinPenSize, MaxPenSize].
func (p *Pad) SetPenSize(size int) {
	p.penSize = min(max(size, MinPenSize), MaxPenSize)
}

// Eraser reports whether strokes erase instead of paint.
func (p *Pad) Eraser() bool { return p.eraser }

// SetEraser switches between pen and eraser.
func (p *Pad) SetEraser(on bool) { p.eraser = on }

// ToggleEraser flips eraser mode and returns the new state.
func (p *Pad) ToggleEraser() bool {
	p.eraser = !p.eraser
	return p.eraser
}

// Image returns the uploaded image, or nil.
func (p *Pad) Image() image.Image { return p.img }

// ImagePosition returns the top-left corner of the uploaded image in view
// coordinates.
func (p *Pad) ImagePosition() image.Point { return p.imgPos }

// ImageSelected reports whether the uploaded image is selected for moving.
func (p *Pad) ImageSelected() bool { return p.selected }

// imageRect returns the uploaded image's footprint in view coordinates.
func (p *Pad) imageRect() image.Rectangle {
	if p.img == nil {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: p.imgPos, Max: p.imgPos.Add(p.img.Bounds().Size())}
}

// LoadImage replaces the uploaded image and centers it in a view of the
// given size. The selection is cleared.
func (p *Pad) LoadImage(img image.Image, view image.Point) error {
	if img == nil || img.Bounds().Empty() {
		return ErrNoImage
	}
	sz := img.Bounds().Size()
	p.img = img
	p.imgPos = image.Pt((view.X-sz.X)/2, (view.Y-sz.Y)/2)
	p.selected = false
	p.moving = false
	return nil
}

// ToggleSelection handles a double click at v. Inside the image the
// selection toggles; anywhere else it is cleared.
func (p *Pad) ToggleSelection(v geometry.Point2D) bool {
	if p.img != nil && v.ImagePoint().In(p.imageRect()) {
		p.selected = !p.selected
	} else {
		p.selected = false
	}
	return p.selected
}

// Press starts a gesture at view point v: a move when the selected image is
// under v, a stroke otherwise.
func (p *Pad) Press(v geometry.Point2D) {
	p.stroking, p.moving = false, false
	if p.selected && p.img != nil && v.ImagePoint().In(p.imageRect()) {
		p.moving = true
		p.dragStart = v.ImagePoint()
		return
	}
	p.stroking = true
	p.prev = v
}

// Drag continues the gesture. view is the size the buffer is displayed at,
// used to map view coordinates onto the buffer. It reports whether anything
// changed.
func (p *Pad) Drag(v geometry.Point2D, view image.Point) bool {
	switch {
	case p.moving && p.img != nil:
		cur := v.ImagePoint()
		p.imgPos = p.imgPos.Add(cur.Sub(p.dragStart))
		p.dragStart = cur
		return true

	case p.stroking:
		if view.X <= 0 || view.Y <= 0 {
			return false
		}
		b := p.buffer.Bounds()
		sx := float64(b.Dx()) / float64(view.X)
		sy := float64(b.Dy()) / float64(view.Y)
		from := geometry.NewPoint2D(p.prev.X*sx, p.prev.Y*sy)
		to := geometry.NewPoint2D(v.X*sx, v.Y*sy)
		p.prev = v
		if p.eraser {
			p.erase(from, to)
		} else {
			p.paint(from, to)
		}
		return true
	}
	return false
}

// Release ends the gesture. The image selection is kept.
func (p *Pad) Release() {
	p.stroking, p.moving = false, false
}

func (p *Pad) paint(from, to geometry.Point2D) {
	dc := gg.NewContextForRGBA(p.buffer)
	dc.SetColor(p.penColor)
	dc.SetLineWidth(float64(p.penSize))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()
}

// erase clears the pixels under a round-capped segment to transparent.
// The segment is rasterized into a mask covering just its bounding box.
func (p *Pad) erase(from, to geometry.Point2D) {
	half := float64(p.penSize)/2 + 1
	r := image.Rect(
		int(math.Floor(math.Min(from.X, to.X)-half)),
		int(math.Floor(math.Min(from.Y, to.Y)-half)),
		int(math.Ceil(math.Max(from.X, to.X)+half)),
		int(math.Ceil(math.Max(from.Y, to.Y)+half)),
	).Intersect(p.buffer.Bounds())
	if r.Empty() {
		return
	}

	mc := gg.NewContext(r.Dx(), r.Dy())
	mc.Translate(-float64(r.Min.X), -float64(r.Min.Y))
	mc.SetColor(colorutil.Black)
	mc.SetLineWidth(float64(p.penSize))
	mc.SetLineCapRound()
	mc.DrawLine(from.X, from.Y, to.X, to.Y)
	mc.Stroke()

	draw.DrawMask(p.buffer, r, image.Transparent, image.Point{}, mc.AsMask(), image.Point{}, draw.Src)
}

// Clear wipes the drawing buffer and removes the uploaded image.
func (p *Pad) Clear() {
	draw.Draw(p.buffer, p.buffer.Bounds(), image.Transparent, image.Point{}, draw.Src)
	p.img = nil
	p.imgPos = image.Point{}
	p.selected = false
	p.stroking, p.moving = false, false
}

// Snapshot flattens the pad at buffer resolution: white, then the uploaded
// image at its position, then the strokes.
func (p *Pad) Snapshot() *image.RGBA {
	b := p.buffer.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(colorutil.White), image.Point{}, draw.Src)
	if p.img != nil {
		draw.Draw(out, p.imageRect(), p.img, p.img.Bounds().Min, draw.Over)
	}
	draw.Draw(out, b, p.buffer, b.Min, draw.Over)
	return out
}

// Render draws the pad into dst, whose size is the view: white, the
// uploaded image, a dashed blue border when selected, then the buffer
// stretched over the whole view.
func (p *Pad) Render(dst *image.RGBA) {
	view := dst.Bounds()
	draw.Draw(dst, view, image.NewUniform(colorutil.White), image.Point{}, draw.Src)

	if p.img != nil {
		r := p.imageRect().Add(view.Min)
		draw.Draw(dst, r, p.img, p.img.Bounds().Min, draw.Over)
		if p.selected {
			dc := gg.NewContextForRGBA(dst)
			dc.SetColor(colorutil.Blue)
			dc.SetLineWidth(2)
			dc.SetDash(5)
			dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
			dc.Stroke()
		}
	}

	xdraw.BiLinear.Scale(dst, view, p.buffer, p.buffer.Bounds(), xdraw.Over, nil)
}

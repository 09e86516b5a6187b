package compose

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"drawing-studio/pkg/colorutil"
	"drawing-studio/pkg/geometry"
)

const (
	DefaultWidth  = 400
	DefaultHeight = 400
)

var (
	// ErrInvalidSize is returned when a canvas dimension is not positive.
	ErrInvalidSize = errors.New("canvas size must be positive")

	// ErrNoImage is returned when inserting a nil or empty image.
	ErrNoImage = errors.New("no image to insert")
)

// Options tunes handle geometry, scale limits and colors.
type Options struct {
	HandleRadius       float64 // Pointer tolerance and marker diameter, in canvas pixels
	RotateHandleOffset float64 // Distance of the rotate handle above the top edge
	MinScale           float64
	MaxScale           float64
	FitMargin          float64 // Fraction of the canvas an oversized image is fitted into

	Background color.Color
	Margin     color.Color
	Border     color.Color
	Outline    color.Color
	Connector  color.Color
	HandleFill color.Color
	HandleLine color.Color
}

// DefaultOptions returns the standard composer settings.
func DefaultOptions() Options {
	return Options{
		HandleRadius:       10,
		RotateHandleOffset: 30,
		MinScale:           0.1,
		MaxScale:           10.0,
		FitMargin:          0.95,
		Background:         colorutil.White,
		Margin:             colorutil.Margin,
		Border:             colorutil.LightGray,
		Outline:            colorutil.Red,
		Connector:          colorutil.Black,
		HandleFill:         colorutil.White,
		HandleLine:         colorutil.Black,
	}
}

// ClampScale limits s to [MinScale, MaxScale]. A non-positive MinScale
// still keeps the result strictly positive.
func (o Options) ClampScale(s float64) float64 {
	lo := o.MinScale
	if lo <= 0 {
		lo = geometry.Epsilon
	}
	if s < lo {
		return lo
	}
	if o.MaxScale > 0 && s > o.MaxScale {
		return o.MaxScale
	}
	return s
}

// Canvas owns the layer stack of the composer. Layers are kept back to
// front, so the last layer is drawn on top and hit-tested first.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width    int
	height   int
	rotation float64

	layers   []*Layer
	selected LayerID
	nextID   LayerID

	opts Options
}

// NewCanvas creates an empty canvas. Non-positive dimensions fall back to
// the defaults.
func NewCanvas(width, height int, opts Options) *Canvas {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return &Canvas{
		width:  width,
		height: height,
		opts:   opts,
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas rectangle in canvas coordinates.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Options returns the active settings.
func (c *Canvas) Options() Options { return c.opts }

// SetOptions replaces the settings. Existing layers are left as they are.
func (c *Canvas) SetOptions(opts Options) { c.opts = opts }

// Rotation returns the whole-canvas rotation in radians.
func (c *Canvas) Rotation() float64 { return c.rotation }

// RotateCanvas adds radians to the whole-canvas rotation. It only affects
// rendering and export; layer state is untouched.
func (c *Canvas) RotateCanvas(radians float64) {
	c.rotation += radians
}

// Len returns the number of layers.
func (c *Canvas) Len() int { return len(c.layers) }

// Layers returns the layers back to front. The slice is a copy; the layers
// are shared.
func (c *Canvas) Layers() []*Layer {
	out := make([]*Layer, len(c.layers))
	copy(out, c.layers)
	return out
}

// Layer returns the layer with the given ID, or nil.
func (c *Canvas) Layer(id LayerID) *Layer {
	if id == 0 {
		return nil
	}
	for _, l := range c.layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Insert places img on top of the stack, centered on the canvas. Images
// larger than the canvas are scaled down to fit within FitMargin of it.
func (c *Canvas) Insert(img image.Image, category Category) (*Layer, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}

	l := NewLayer(img, category)
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	l.Position = geometry.Point2D{
		X: float64(max(0, (c.width-iw)/2)),
		Y: float64(max(0, (c.height-ih)/2)),
	}

	if iw > c.width || ih > c.height {
		fit := math.Min(float64(c.width)/float64(iw), float64(c.height)/float64(ih))
		l.Scale *= fit * c.opts.FitMargin
	}
	c.clampPosition(l)

	c.nextID++
	l.ID = c.nextID
	c.layers = append(c.layers, l)
	return l, nil
}

// Remove deletes the layer with the given ID. Removing the selected layer
// clears the selection.
func (c *Canvas) Remove(id LayerID) bool {
	for i, l := range c.layers {
		if l.ID == id {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			if c.selected == id {
				c.selected = 0
			}
			return true
		}
	}
	return false
}

// DeleteSelected removes the selected layer. Without a selection it does nothing.
func (c *Canvas) DeleteSelected() bool {
	if c.selected == 0 {
		return false
	}
	return c.Remove(c.selected)
}

// Clear removes every layer and the selection.
func (c *Canvas) Clear() {
	c.layers = nil
	c.selected = 0
}

// Resize changes the canvas dimensions. Layers are kept and pulled back
// inside the new bounds.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, ErrInvalidSize)
	}
	c.width = width
	c.height = height
	for _, l := range c.layers {
		c.clampPosition(l)
	}
	return nil
}

// Reset starts a new empty canvas of the given size.
func (c *Canvas) Reset(width, height int) error {
	if err := c.Resize(width, height); err != nil {
		return err
	}
	c.Clear()
	c.rotation = 0
	return nil
}

// Selected returns the selected layer, or nil.
func (c *Canvas) Selected() *Layer {
	return c.Layer(c.selected)
}

// Select makes the layer with the given ID the selection.
func (c *Canvas) Select(id LayerID) bool {
	if c.Layer(id) == nil {
		return false
	}
	c.selected = id
	return true
}

// ClearSelection deselects any layer.
func (c *Canvas) ClearSelection() {
	c.selected = 0
}

// HitTest searches the layers topmost first and returns the first one with
// a handle under p.
func (c *Canvas) HitTest(p geometry.Point2D) (*Layer, HandleKind) {
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		if h := HitTest(p, l, c.opts); h != HandleNone {
			return l, h
		}
	}
	return nil, HandleNone
}

// HandleAt reports the handle of the selected layer under p, for hover
// feedback. Without a selection it returns HandleNone.
func (c *Canvas) HandleAt(p geometry.Point2D) HandleKind {
	l := c.Selected()
	if l == nil {
		return HandleNone
	}
	return HitTest(p, l, c.opts)
}

// clampPosition keeps the layer's scaled box inside the canvas. When the
// layer is larger than the canvas the position is pinned at zero.
func (c *Canvas) clampPosition(l *Layer) {
	s := l.ScaledSize()
	l.Position.X = clampAxis(l.Position.X, float64(c.width)-s.Width)
	l.Position.Y = clampAxis(l.Position.Y, float64(c.height)-s.Height)
}

func clampAxis(v, limit float64) float64 {
	return math.Max(0, math.Min(v, limit))
}

package compose

import (
	"image"
	"image/draw"
	"math"

	"drawing-studio/pkg/geometry"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// ViewOrigin returns the top-left corner of the canvas inside a viewport of
// the given size. The canvas is centered; the origin goes negative when the
// viewport is smaller than the canvas.
func (c *Canvas) ViewOrigin(viewport image.Rectangle) geometry.Point2D {
	return geometry.Point2D{
		X: float64(viewport.Min.X + (viewport.Dx()-c.width)/2),
		Y: float64(viewport.Min.Y + (viewport.Dy()-c.height)/2),
	}
}

// ViewTransform maps canvas coordinates to viewport coordinates, including
// the whole-canvas rotation about the canvas center.
func (c *Canvas) ViewTransform(viewport image.Rectangle) geometry.AffineTransform {
	o := c.ViewOrigin(viewport)
	return geometry.Translation(o.X, o.Y).Compose(c.rotationTransform())
}

// ViewToCanvas maps a viewport point, such as a pointer position, into
// canvas coordinates.
func (c *Canvas) ViewToCanvas(viewport image.Rectangle, p geometry.Point2D) geometry.Point2D {
	inv, ok := c.ViewTransform(viewport).Inverse()
	if !ok {
		return p
	}
	return inv.Apply(p)
}

func (c *Canvas) rotationTransform() geometry.AffineTransform {
	if c.rotation == 0 {
		return geometry.Identity()
	}
	return geometry.RotationAbout(c.rotation, float64(c.width)/2, float64(c.height)/2)
}

// Render draws the composer into dst, treating dst's bounds as the viewport:
// margin, canvas background and border, every layer in z-order, then the
// selection outline and handles.
func (c *Canvas) Render(dst *image.RGBA) {
	viewport := dst.Bounds()
	o := c.ViewOrigin(viewport).ImagePoint()
	canvasRect := image.Rectangle{Min: o, Max: o.Add(image.Pt(c.width, c.height))}

	draw.Draw(dst, viewport, image.NewUniform(c.opts.Margin), image.Point{}, draw.Src)
	draw.Draw(dst, canvasRect, image.NewUniform(c.opts.Background), image.Point{}, draw.Src)

	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(c.opts.Border)
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(canvasRect.Min.X)+0.5, float64(canvasRect.Min.Y)+0.5, float64(c.width), float64(c.height))
	dc.Stroke()

	view := c.ViewTransform(viewport)
	c.drawLayers(dst, view)

	if l := c.Selected(); l != nil {
		c.drawSelection(dc, l, view)
	}
}

// Snapshot renders the canvas at its own resolution without selection
// decoration, for export. The canvas rotation is applied.
func (c *Canvas) Snapshot() *image.RGBA {
	dst := image.NewRGBA(c.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c.opts.Background), image.Point{}, draw.Src)
	c.drawLayers(dst, c.rotationTransform())
	return dst
}

// drawLayers composites every layer through view ∘ TransformFor(layer).
func (c *Canvas) drawLayers(dst draw.Image, view geometry.AffineTransform) {
	for _, l := range c.layers {
		if l.Image == nil {
			continue
		}
		src := l.Image.Bounds()
		m := view.Compose(TransformFor(l)).
			Compose(geometry.Translation(-float64(src.Min.X), -float64(src.Min.Y)))
		if math.Abs(m.Determinant()) < geometry.Epsilon {
			continue
		}
		xdraw.BiLinear.Transform(dst, m.Aff3(), l.Image, src, xdraw.Over, nil)
	}
}

// drawSelection outlines the layer and draws the connector and handle markers.
func (c *Canvas) drawSelection(dc *gg.Context, l *Layer, view geometry.AffineTransform) {
	corners := TransformedCorners(l)

	dc.SetLineWidth(1)
	dc.SetColor(c.opts.Outline)
	for i, p := range corners {
		v := view.Apply(p)
		if i == 0 {
			dc.MoveTo(v.X, v.Y)
		} else {
			dc.LineTo(v.X, v.Y)
		}
	}
	dc.ClosePath()
	dc.Stroke()

	top, okTop := HandleAnchor(l, HandleFlipTop, c.opts)
	rot, okRot := HandleAnchor(l, HandleRotate, c.opts)
	if okTop && okRot {
		a, b := view.Apply(top), view.Apply(rot)
		dc.SetColor(c.opts.Connector)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}

	r := c.opts.HandleRadius / 2
	for _, p := range HandleAnchors(l, c.opts) {
		v := view.Apply(p)
		dc.DrawCircle(v.X, v.Y, r)
		dc.SetColor(c.opts.HandleFill)
		dc.FillPreserve()
		dc.SetColor(c.opts.HandleLine)
		dc.Stroke()
	}
}

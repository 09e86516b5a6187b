package compose

import (
	"drawing-studio/pkg/geometry"
)

// TransformFor returns the matrix mapping the layer's local image space
// [0,w]x[0,h] into canvas space: translate to Position, rotate about the
// scaled image center, then scale. Flips are negative scale factors, so a
// mirrored layer swings across its Position edge.
func TransformFor(l *Layer) geometry.AffineTransform {
	scaled := l.ScaledSize()
	cx, cy := scaled.Width/2, scaled.Height/2

	sx, sy := l.Scale, l.Scale
	if l.FlipH {
		sx = -sx
	}
	if l.FlipV {
		sy = -sy
	}

	return geometry.Translation(l.Position.X, l.Position.Y).
		Compose(geometry.RotationAbout(l.Rotation, cx, cy)).
		Compose(geometry.Scale(sx, sy))
}

// TransformPoint maps p through m.
func TransformPoint(m geometry.AffineTransform, p geometry.Point2D) geometry.Point2D {
	return m.Apply(p)
}

// InverseTransformPoint maps a canvas-space point back into the layer's
// local image space. It fails only for a degenerate (zero-scale) layer.
func InverseTransformPoint(l *Layer, p geometry.Point2D) (geometry.Point2D, bool) {
	inv, ok := TransformFor(l).Inverse()
	if !ok {
		return geometry.Point2D{}, false
	}
	return inv.Apply(p), true
}

// TransformedCorners returns the local corners (0,0), (w,0), (w,h), (0,h)
// mapped into canvas space, in that order.
func TransformedCorners(l *Layer) [4]geometry.Point2D {
	m := TransformFor(l)
	w, h := l.Width(), l.Height()
	return [4]geometry.Point2D{
		m.Apply(geometry.Point2D{X: 0, Y: 0}),
		m.Apply(geometry.Point2D{X: w, Y: 0}),
		m.Apply(geometry.Point2D{X: w, Y: h}),
		m.Apply(geometry.Point2D{X: 0, Y: h}),
	}
}

// localAnchor returns the handle position in local image space. Scale has
// four anchors (the corners) and Move has none, so both report false.
func localAnchor(l *Layer, kind HandleKind, opts Options) (geometry.Point2D, bool) {
	w, h := l.Width(), l.Height()
	switch kind {
	case HandleFlipTop:
		return geometry.Point2D{X: w / 2, Y: 0}, true
	case HandleFlipBottom:
		return geometry.Point2D{X: w / 2, Y: h}, true
	case HandleFlipLeft:
		return geometry.Point2D{X: 0, Y: h / 2}, true
	case HandleFlipRight:
		return geometry.Point2D{X: w, Y: h / 2}, true
	case HandleRotate:
		if l.Scale <= 0 {
			return geometry.Point2D{}, false
		}
		// Constant on-screen distance above the top edge
		return geometry.Point2D{X: w / 2, Y: -opts.RotateHandleOffset / l.Scale}, true
	}
	return geometry.Point2D{}, false
}

// HandleAnchor returns the canvas-space position of a single-anchor handle
// (the four flip handles and the rotate handle).
func HandleAnchor(l *Layer, kind HandleKind, opts Options) (geometry.Point2D, bool) {
	p, ok := localAnchor(l, kind, opts)
	if !ok {
		return geometry.Point2D{}, false
	}
	return TransformFor(l).Apply(p), true
}

// HandleAnchors returns every handle marker position in drawing order:
// the four corners, the four edge midpoints, then the rotate handle.
func HandleAnchors(l *Layer, opts Options) []geometry.Point2D {
	corners := TransformedCorners(l)
	anchors := make([]geometry.Point2D, 0, 9)
	anchors = append(anchors, corners[:]...)
	for _, kind := range []HandleKind{HandleFlipTop, HandleFlipBottom, HandleFlipLeft, HandleFlipRight, HandleRotate} {
		if p, ok := HandleAnchor(l, kind, opts); ok {
			anchors = append(anchors, p)
		}
	}
	return anchors
}

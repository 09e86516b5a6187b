package compose

import (
	"drawing-studio/pkg/geometry"
)

// HandleKind identifies the manipulation handle under a point.
type HandleKind int

const (
	HandleNone HandleKind = iota
	HandleMove
	HandleScale
	HandleFlipTop
	HandleFlipBottom
	HandleFlipLeft
	HandleFlipRight
	HandleRotate
)

func (h HandleKind) String() string {
	switch h {
	case HandleMove:
		return "Move"
	case HandleScale:
		return "Scale"
	case HandleFlipTop:
		return "FlipTop"
	case HandleFlipBottom:
		return "FlipBottom"
	case HandleFlipLeft:
		return "FlipLeft"
	case HandleFlipRight:
		return "FlipRight"
	case HandleRotate:
		return "Rotate"
	default:
		return "None"
	}
}

// IsFlip reports whether the handle toggles a mirror instead of starting a drag.
func (h HandleKind) IsFlip() bool {
	switch h {
	case HandleFlipTop, HandleFlipBottom, HandleFlipLeft, HandleFlipRight:
		return true
	}
	return false
}

// flipOrder is the priority in which edge handles are tested after the corners.
var flipOrder = [...]HandleKind{HandleFlipTop, HandleFlipBottom, HandleFlipLeft, HandleFlipRight}

// HitTest reports which handle of l is under the canvas-space point p.
//
// Outside the transformed body only the rotate handle, which floats above
// the top edge, can match. Inside the body the corners win over the edge
// flip handles, and anything else is Move.
func HitTest(p geometry.Point2D, l *Layer, opts Options) HandleKind {
	if l == nil || l.Image == nil {
		return HandleNone
	}
	radius := opts.HandleRadius
	corners := TransformedCorners(l)

	if !geometry.ConvexContains(corners[:], p, geometry.Epsilon) {
		if rot, ok := HandleAnchor(l, HandleRotate, opts); ok && rot.Distance(p) <= radius {
			return HandleRotate
		}
		return HandleNone
	}

	for _, c := range corners {
		if c.Distance(p) <= radius {
			return HandleScale
		}
	}
	for _, kind := range flipOrder {
		if a, ok := HandleAnchor(l, kind, opts); ok && a.Distance(p) <= radius {
			return kind
		}
	}

	return HandleMove
}

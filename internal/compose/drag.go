package compose

import (
	"drawing-studio/pkg/geometry"
)

// Mode is the manipulation in progress during a drag.
type Mode int

const (
	ModeNone Mode = iota
	ModeMove
	ModeScale
	ModeRotate
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "Move"
	case ModeScale:
		return "Scale"
	case ModeRotate:
		return "Rotate"
	default:
		return "None"
	}
}

// Session turns pointer press/drag/release events into layer transform
// updates. The zero value is idle and ready for use.
type Session struct {
	mode  Mode
	layer LayerID

	lastPointer    geometry.Point2D // Previous pointer sample, for Move
	anchorRotation float64          // Layer rotation at press time
	anchorAngle    float64          // Pointer angle around the center at press time
	scaleDistance  float64          // Previous center distance, for Scale
}

// Mode returns the active manipulation.
func (s *Session) Mode() Mode { return s.mode }

// Active reports whether a drag is in progress.
func (s *Session) Active() bool { return s.mode != ModeNone }

// Press starts an interaction at canvas point p. The topmost layer with a
// handle under p becomes the selection. Flip handles are applied at once
// and leave the session idle; pressing empty space clears the selection.
func (s *Session) Press(c *Canvas, p geometry.Point2D) HandleKind {
	s.reset()

	l, handle := c.HitTest(p)
	if l == nil {
		c.ClearSelection()
		return HandleNone
	}
	c.Select(l.ID)

	center := l.Center()
	switch handle {
	case HandleFlipLeft, HandleFlipRight:
		l.FlipHorizontal()
		return handle
	case HandleFlipTop, HandleFlipBottom:
		l.FlipVertical()
		return handle
	case HandleMove:
		s.mode = ModeMove
		s.lastPointer = p
	case HandleRotate:
		s.mode = ModeRotate
		s.anchorRotation = l.Rotation
		s.anchorAngle = center.AngleTo(p)
	case HandleScale:
		s.mode = ModeScale
		s.scaleDistance = center.Distance(p)
	}
	s.layer = l.ID
	return handle
}

// Drag applies the pointer movement to the layer grabbed at press time.
// It reports whether the layer changed.
func (s *Session) Drag(c *Canvas, p geometry.Point2D) bool {
	if s.mode == ModeNone {
		return false
	}
	l := c.Layer(s.layer)
	if l == nil {
		// Layer was removed mid-drag
		s.reset()
		return false
	}

	switch s.mode {
	case ModeMove:
		delta := p.Sub(s.lastPointer)
		s.lastPointer = p
		l.Position = l.Position.Add(delta)
		c.clampPosition(l)

	case ModeRotate:
		current := l.Center().AngleTo(p)
		l.Rotation = s.anchorRotation + (current - s.anchorAngle)

	case ModeScale:
		dist := l.Center().Distance(p)
		if s.scaleDistance < geometry.Epsilon {
			s.scaleDistance = dist
			return false
		}
		// Ratio against the previous sample, not the press distance
		l.Scale = c.opts.ClampScale(l.Scale * dist / s.scaleDistance)
		s.scaleDistance = dist
		c.clampPosition(l)
	}
	return true
}

// Release ends the drag. The selection is kept.
func (s *Session) Release() {
	s.reset()
}

func (s *Session) reset() {
	*s = Session{}
}

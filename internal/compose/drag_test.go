package compose

import (
	"image/color"
	"math"
	"testing"

	"drawing-studio/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	return NewCanvas(w, h, DefaultOptions())
}

func insertSolid(t *testing.T, c *Canvas, w, h int) *Layer {
	t.Helper()
	l, err := c.Insert(solidImage(w, h, color.RGBA{G: 255, A: 255}), CategoryCustom)
	require.NoError(t, err)
	return l
}

func TestMoveDragTranslatesLayer(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	l := insertSolid(t, c, 100, 100)
	require.Equal(t, geometry.NewPoint2D(150, 150), l.Position)

	var s Session
	require.Equal(t, HandleMove, s.Press(c, geometry.NewPoint2D(200, 200)))
	assert.Equal(t, ModeMove, s.Mode())
	assert.Equal(t, l, c.Selected())

	assert.True(t, s.Drag(c, geometry.NewPoint2D(210, 195)))
	assert.True(t, s.Drag(c, geometry.NewPoint2D(230, 190)))
	assertPoint(t, geometry.NewPoint2D(180, 140), l.Position)

	s.Release()
	assert.False(t, s.Active())
	assert.Equal(t, l, c.Selected(), "selection survives release")
}

func TestMoveDragClampsToCanvas(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	l := insertSolid(t, c, 100, 100)

	var s Session
	s.Press(c, geometry.NewPoint2D(200, 200))
	s.Drag(c, geometry.NewPoint2D(-1000, -1000))
	assertPoint(t, geometry.Point2D{}, l.Position)

	s.Drag(c, geometry.NewPoint2D(5000, 5000))
	assertPoint(t, geometry.NewPoint2D(300, 300), l.Position)
}

func TestRotateDrag(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	l := insertSolid(t, c, 100, 100)
	center := l.Center()

	rot, ok := HandleAnchor(l, HandleRotate, c.Options())
	require.True(t, ok)

	var s Session
	require.Equal(t, HandleRotate, s.Press(c, rot))
	assert.Equal(t, ModeRotate, s.Mode())

	// Dragging back onto the press point leaves the rotation unchanged
	s.Drag(c, rot)
	assert.InDelta(t, 0, l.Rotation, tol)

	// Swinging from straight above to straight right is a quarter turn
	s.Drag(c, geometry.NewPoint2D(center.X+80, center.Y))
	assert.InDelta(t, math.Pi/2, l.Rotation, 1e-9)

	s.Release()
	assert.InDelta(t, math.Pi/2, l.Rotation, 1e-9)
}

func TestRotateDragIsRelativeToExistingRotation(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	l := insertSolid(t, c, 100, 100)
	l.Rotation = 1.0

	rot, ok := HandleAnchor(l, HandleRotate, c.Options())
	require.True(t, ok)

	var s Session
	require.Equal(t, HandleRotate, s.Press(c, rot))
	s.Drag(c, rot)
	assert.InDelta(t, 1.0, l.Rotation, 1e-9, "no jump on the first sample")
}

func TestScaleDrag(t *testing.T) {
	c := newTestCanvas(t, 1000, 1000)
	l := insertSolid(t, c, 100, 100)
	require.Equal(t, geometry.NewPoint2D(450, 450), l.Position)
	center := l.Center()

	var s Session
	require.Equal(t, HandleScale, s.Press(c, geometry.NewPoint2D(550, 550)))
	assert.Equal(t, ModeScale, s.Mode())

	// Same distance: no change
	s.Drag(c, geometry.NewPoint2D(550, 550))
	assert.InDelta(t, 1.0, l.Scale, tol)

	// Double the distance from the center
	s.Drag(c, geometry.NewPoint2D(center.X+100, center.Y+100))
	assert.InDelta(t, 2.0, l.Scale, 1e-9)

	// Later samples compare against the previous one, measured from the
	// center of the grown layer
	center = l.Center()
	s.Drag(c, geometry.NewPoint2D(center.X+50, center.Y+50))
	assert.InDelta(t, 1.0, l.Scale, 1e-9)
}

func TestScaleDragClamps(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	l := insertSolid(t, c, 60, 60)
	center := l.Center()

	var s Session
	require.Equal(t, HandleScale, s.Press(c, geometry.NewPoint2D(center.X+30, center.Y+30)))

	s.Drag(c, geometry.NewPoint2D(center.X+0.001, center.Y+0.001))
	assert.InDelta(t, c.Options().MinScale, l.Scale, tol)

	s.Drag(c, geometry.NewPoint2D(center.X+1000, center.Y+1000))
	assert.InDelta(t, c.Options().MaxScale, l.Scale, tol)

	// Growing past the canvas pins the layer at the origin
	assertPoint(t, geometry.Point2D{}, l.Position)
}

func TestScaleDragFromCenterDistanceZero(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	l := insertSolid(t, c, 100, 100)

	var s Session
	require.Equal(t, HandleScale, s.Press(c, geometry.NewPoint2D(150, 150)))
	s.scaleDistance = 0

	assert.False(t, s.Drag(c, geometry.NewPoint2D(160, 160)))
	assert.InDelta(t, 1.0, l.Scale, tol)
	assert.False(t, math.IsNaN(l.Scale))
}

func TestFlipPressDoesNotStartDrag(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	l := insertSolid(t, c, 200, 100)
	before := l.Position

	top, ok := HandleAnchor(l, HandleFlipTop, c.Options())
	require.True(t, ok)

	var s Session
	assert.Equal(t, HandleFlipTop, s.Press(c, top))
	assert.True(t, l.FlipV)
	assert.False(t, l.FlipH)
	assert.Equal(t, ModeNone, s.Mode())
	assert.Equal(t, l, c.Selected())

	assert.False(t, s.Drag(c, geometry.NewPoint2D(0, 0)))
	assert.Equal(t, before, l.Position)

	left, ok := HandleAnchor(l, HandleFlipLeft, c.Options())
	require.True(t, ok)
	assert.Equal(t, HandleFlipLeft, s.Press(c, left))
	assert.True(t, l.FlipH)
}

func TestPressOnEmptySpaceClearsSelection(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	insertSolid(t, c, 50, 50)

	var s Session
	s.Press(c, geometry.NewPoint2D(200, 200))
	require.NotNil(t, c.Selected())

	assert.Equal(t, HandleNone, s.Press(c, geometry.NewPoint2D(5, 5)))
	assert.Nil(t, c.Selected())
	assert.False(t, s.Active())
}

func TestPressPicksTopmostLayer(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	bottom := insertSolid(t, c, 100, 100)
	top := insertSolid(t, c, 100, 100)

	var s Session
	s.Press(c, geometry.NewPoint2D(200, 200))
	assert.Equal(t, top.ID, c.Selected().ID)

	s.Drag(c, geometry.NewPoint2D(220, 200))
	assertPoint(t, geometry.NewPoint2D(170, 150), top.Position)
	assertPoint(t, geometry.NewPoint2D(150, 150), bottom.Position)
}

func TestDragAfterLayerRemoved(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	insertSolid(t, c, 100, 100)

	var s Session
	s.Press(c, geometry.NewPoint2D(200, 200))
	require.True(t, c.DeleteSelected())

	assert.False(t, s.Drag(c, geometry.NewPoint2D(250, 250)))
	assert.False(t, s.Active())
}

func TestDragWithoutPress(t *testing.T) {
	c := newTestCanvas(t, 400, 400)
	l := insertSolid(t, c, 100, 100)

	var s Session
	assert.False(t, s.Drag(c, geometry.NewPoint2D(10, 10)))
	assert.Equal(t, geometry.NewPoint2D(150, 150), l.Position)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Rotate", ModeRotate.String())
	assert.Equal(t, "None", Mode(42).String())
}

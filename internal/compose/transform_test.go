package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"drawing-studio/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func testLayer(w, h int) *Layer {
	return NewLayer(solidImage(w, h, color.RGBA{R: 255, A: 255}), CategoryCustom)
}

func assertPoint(t *testing.T, want, got geometry.Point2D) {
	t.Helper()
	assert.Truef(t, want.ApproxEqual(got, 1e-6), "want %+v, got %+v", want, got)
}

func TestTransformForPlainLayer(t *testing.T) {
	l := testLayer(100, 50)
	l.Position = geometry.NewPoint2D(10, 20)

	corners := TransformedCorners(l)
	assertPoint(t, geometry.NewPoint2D(10, 20), corners[0])
	assertPoint(t, geometry.NewPoint2D(110, 20), corners[1])
	assertPoint(t, geometry.NewPoint2D(110, 70), corners[2])
	assertPoint(t, geometry.NewPoint2D(10, 70), corners[3])
}

func TestTransformForScalesFromTopLeft(t *testing.T) {
	l := testLayer(100, 50)
	l.Position = geometry.NewPoint2D(10, 20)
	l.Scale = 2

	corners := TransformedCorners(l)
	assertPoint(t, geometry.NewPoint2D(10, 20), corners[0])
	assertPoint(t, geometry.NewPoint2D(210, 120), corners[2])
}

func TestRotationKeepsCenterFixed(t *testing.T) {
	for _, rot := range []float64{0, 0.3, math.Pi / 2, math.Pi, -2.5, 11 * math.Pi} {
		l := testLayer(80, 40)
		l.Position = geometry.NewPoint2D(30, 60)
		l.Scale = 1.5
		l.Rotation = rot

		center := TransformFor(l).Apply(geometry.NewPoint2D(40, 20))
		assertPoint(t, l.Center(), center)
	}
}

func TestQuarterTurnRotatesClockwise(t *testing.T) {
	l := testLayer(100, 100)
	l.Rotation = math.Pi / 2

	// Top-left corner ends up at the top-right after a clockwise quarter turn
	assertPoint(t, geometry.NewPoint2D(100, 0), TransformFor(l).Apply(geometry.Point2D{}))
}

func TestInverseTransformRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		setup func(l *Layer)
	}{
		{"identity", func(l *Layer) {}},
		{"moved", func(l *Layer) { l.Position = geometry.NewPoint2D(123.4, 56.7) }},
		{"rotated", func(l *Layer) { l.Rotation = 1.234 }},
		{"scaled", func(l *Layer) { l.Scale = 0.37 }},
		{"flipped", func(l *Layer) { l.FlipH, l.FlipV = true, true }},
		{"everything", func(l *Layer) {
			l.Position = geometry.NewPoint2D(5, 9)
			l.Rotation = -4.2
			l.Scale = 3.3
			l.FlipH = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLayer(64, 32)
			tt.setup(l)

			for _, local := range []geometry.Point2D{{}, {X: 64, Y: 32}, {X: 10, Y: 7}} {
				canvasPt := TransformPoint(TransformFor(l), local)
				back, ok := InverseTransformPoint(l, canvasPt)
				require.True(t, ok)
				assertPoint(t, local, back)
			}
		})
	}
}

func TestInverseTransformDegenerateLayer(t *testing.T) {
	l := testLayer(10, 10)
	l.Scale = 0

	_, ok := InverseTransformPoint(l, geometry.Point2D{})
	assert.False(t, ok)
}

func TestFlipTwiceRestoresCorners(t *testing.T) {
	l := testLayer(70, 30)
	l.Position = geometry.NewPoint2D(12, 34)
	l.Rotation = 0.7
	l.Scale = 1.3
	before := TransformedCorners(l)

	l.FlipHorizontal()
	l.FlipHorizontal()

	assert.False(t, l.FlipH)
	assert.Equal(t, before, TransformedCorners(l))
}

func TestFlipIsSignedScale(t *testing.T) {
	l := testLayer(100, 100)
	l.Position = geometry.NewPoint2D(150, 150)

	l.FlipHorizontal()
	want := geometry.Translation(150, 150).
		Compose(geometry.RotationAbout(0, 50, 50)).
		Compose(geometry.Scale(-1, 1))
	assert.True(t, want.ApproxEqual(TransformFor(l), tol), "got %+v", TransformFor(l))

	// Local (0,0) stays on Position; the image extends to its left
	corners := TransformedCorners(l)
	assertPoint(t, geometry.NewPoint2D(150, 150), corners[0])
	assertPoint(t, geometry.NewPoint2D(50, 150), corners[1])
}

func TestFlipComposesWithRotationAndScale(t *testing.T) {
	l := testLayer(80, 40)
	l.Position = geometry.NewPoint2D(30, 60)
	l.Rotation = 0.9
	l.Scale = 1.5
	l.FlipH, l.FlipV = true, true

	want := geometry.Translation(30, 60).
		Compose(geometry.RotationAbout(0.9, 60, 30)).
		Compose(geometry.Scale(-1.5, -1.5))
	assert.True(t, want.ApproxEqual(TransformFor(l), tol), "got %+v", TransformFor(l))
}

func TestRotateHandleFloatsAboveTopEdge(t *testing.T) {
	opts := DefaultOptions()
	l := testLayer(100, 40)
	l.Position = geometry.NewPoint2D(50, 100)
	l.Scale = 2

	p, ok := HandleAnchor(l, HandleRotate, opts)
	require.True(t, ok)
	// Offset is constant on screen regardless of scale
	assertPoint(t, geometry.NewPoint2D(150, 100-opts.RotateHandleOffset), p)
}

func TestHandleAnchors(t *testing.T) {
	l := testLayer(100, 100)
	anchors := HandleAnchors(l, DefaultOptions())

	require.Len(t, anchors, 9)
	assertPoint(t, geometry.NewPoint2D(50, 0), anchors[4])
	assertPoint(t, geometry.NewPoint2D(50, 100), anchors[5])
	assertPoint(t, geometry.NewPoint2D(0, 50), anchors[6])
	assertPoint(t, geometry.NewPoint2D(100, 50), anchors[7])
	assertPoint(t, geometry.NewPoint2D(50, -30), anchors[8])

	_, ok := HandleAnchor(l, HandleScale, DefaultOptions())
	assert.False(t, ok, "scale has one anchor per corner")
}

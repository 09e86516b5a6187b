package geometry

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointOps(t *testing.T) {
	p := NewPoint2D(3, 4)
	assert.Equal(t, 5.0, p.Distance(Point2D{}))
	assert.Equal(t, NewPoint2D(4, 6), p.Add(NewPoint2D(1, 2)))
	assert.Equal(t, NewPoint2D(2, 2), p.Sub(NewPoint2D(1, 2)))
	assert.Equal(t, NewPoint2D(6, 8), p.Scale(2))
	assert.InDelta(t, math.Pi/2, Point2D{}.AngleTo(NewPoint2D(0, 10)), 1e-12)
	assert.Equal(t, image.Pt(3, -2), NewPoint2D(2.5, -2.4).ImagePoint())
	assert.Equal(t, NewPoint2D(7, 9), FromImagePoint(image.Pt(7, 9)))
}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, Rect{}, BoundingBox(nil))

	r := BoundingBox([]Point2D{{X: 5, Y: -1}, {X: -2, Y: 3}, {X: 1, Y: 8}})
	assert.Equal(t, NewRect(-2, -1, 7, 9), r)
	assert.True(t, r.Contains(NewPoint2D(5, 8)))
	assert.False(t, r.Contains(NewPoint2D(5.1, 8)))
	assert.Equal(t, NewPoint2D(1.5, 3.5), r.Center())
}

func TestComposeAppliesRightOperandFirst(t *testing.T) {
	m := Translation(10, 0).Compose(Scale(2, 2))
	assert.Equal(t, NewPoint2D(12, 2), m.Apply(NewPoint2D(1, 1)))

	m = Scale(2, 2).Compose(Translation(10, 0))
	assert.Equal(t, NewPoint2D(22, 2), m.Apply(NewPoint2D(1, 1)))
}

func TestRotationAboutFixesPivot(t *testing.T) {
	m := RotationAbout(1.1, 30, -7)
	assert.True(t, m.Apply(NewPoint2D(30, -7)).ApproxEqual(NewPoint2D(30, -7), 1e-12))

	q := RotationAbout(math.Pi/2, 0, 0).Apply(NewPoint2D(1, 0))
	assert.True(t, q.ApproxEqual(NewPoint2D(0, 1), 1e-12), "positive angles turn clockwise on screen")
}

func TestInverse(t *testing.T) {
	m := Translation(5, -3).Compose(RotationAbout(0.4, 2, 2)).Compose(Scale(-1.5, 0.5))
	inv, ok := m.Inverse()
	require.True(t, ok)
	assert.True(t, m.Compose(inv).ApproxEqual(Identity(), 1e-12))
	assert.True(t, inv.Compose(m).ApproxEqual(Identity(), 1e-12))

	_, ok = Scale(0, 1).Inverse()
	assert.False(t, ok)
}

func TestDeterminantSign(t *testing.T) {
	assert.InDelta(t, 1, Rotation(2).Determinant(), 1e-12)
	assert.InDelta(t, -4, Scale(-2, 2).Determinant(), 1e-12)
}

func TestAff3Layout(t *testing.T) {
	m := AffineTransform{A: 1, B: 2, TX: 3, C: 4, D: 5, TY: 6}
	a := m.Aff3()
	assert.Equal(t, [6]float64{1, 2, 3, 4, 5, 6}, [6]float64(a))
}

func TestConvexContains(t *testing.T) {
	square := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	reversed := []Point2D{square[3], square[2], square[1], square[0]}

	tests := []struct {
		name string
		p    Point2D
		want bool
	}{
		{"inside", NewPoint2D(5, 5), true},
		{"vertex", NewPoint2D(10, 10), true},
		{"edge", NewPoint2D(0, 4), true},
		{"outside", NewPoint2D(11, 5), false},
		{"just outside", NewPoint2D(-0.001, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvexContains(square, tt.p, Epsilon))
			assert.Equal(t, tt.want, ConvexContains(reversed, tt.p, Epsilon))
		})
	}

	assert.False(t, ConvexContains(square[:2], NewPoint2D(1, 0), Epsilon))
	assert.True(t, ConvexContains(square, NewPoint2D(-0.001, 5), 0.01))
}

func TestArea(t *testing.T) {
	assert.Equal(t, 12.0, Area([]Point2D{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 3}}))
	assert.Equal(t, 12.0, Area([]Point2D{{X: 0, Y: 3}, {X: 4, Y: 3}, {X: 4, Y: 0}, {X: 0, Y: 0}}))
	assert.Zero(t, Area(nil))
}

package geometry

import "math"

// ConvexContains reports whether p lies inside or on the boundary of a convex
// polygon. Either winding order is accepted, so mirrored shapes work too.
// Points within tol of an edge count as inside.
func ConvexContains(polygon []Point2D, p Point2D, tol float64) bool {
	if len(polygon) < 3 {
		return false
	}

	var sawPositive, sawNegative bool
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		length := a.Distance(b)
		if length < Epsilon {
			continue
		}

		// Signed distance of p from the edge line
		d := crossProduct(a, b, p) / length
		if d > tol {
			sawPositive = true
		} else if d < -tol {
			sawNegative = true
		}
		if sawPositive && sawNegative {
			return false
		}
	}

	return true
}

// Area returns the unsigned area of a simple polygon (shoelace formula).
func Area(polygon []Point2D) float64 {
	if len(polygon) < 3 {
		return 0
	}
	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return math.Abs(sum) / 2
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

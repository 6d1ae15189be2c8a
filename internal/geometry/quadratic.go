package geometry

import "math"

// NoRoot is returned by SideRoot when no equidistant point lies on the side
const NoRoot = -1.0

// Quadratic is the polynomial A*t^2 + B*t + C
type Quadratic struct {
	A, B, C float64
}

// Sub returns q - r
func (q Quadratic) Sub(r Quadratic) Quadratic {
	return Quadratic{A: q.A - r.A, B: q.B - r.B, C: q.C - r.C}
}

// Discriminant returns B^2 - 4AC
func (q Quadratic) Discriminant() float64 {
	return q.B*q.B - 4*q.A*q.C
}

// Roots solves q(t) = 0 with the quadratic formula and returns the "+" and
// "-" roots. A vanishing leading coefficient degrades to the linear root,
// reported in both positions. ok is false for a negative discriminant or a
// constant polynomial.
func (q Quadratic) Roots() (plus, minus float64, ok bool) {
	if math.Abs(q.A) < Epsilon {
		if math.Abs(q.B) < Epsilon {
			return NoRoot, NoRoot, false
		}
		r := -q.C / q.B
		return r, r, true
	}

	d := q.Discriminant()
	if d < 0 {
		return NoRoot, NoRoot, false
	}
	s := math.Sqrt(d)
	return (-q.B + s) / (2 * q.A), (-q.B - s) / (2 * q.A), true
}

// squaredDistanceTo returns |(c, t) - p|^2 (or |(t, c) - p|^2 for a
// horizontal side) as a polynomial in the free coordinate t.
func squaredDistanceTo(p Point, side Side) Quadratic {
	c := side.Coord()
	fixed, free := p.X, p.Y
	if side.Axis() == AxisY {
		fixed, free = p.Y, p.X
	}
	off := c - fixed
	return Quadratic{A: 1, B: -2 * free, C: free*free + off*off}
}

// SideEquation returns the polynomial whose roots are the points on side
// that are equally distant from p1 and p2.
func SideEquation(p1, p2 Point, side Side) Quadratic {
	return squaredDistanceTo(p1, side).Sub(squaredDistanceTo(p2, side))
}

// SideRoot is the per-side quadratic kernel. It returns the free coordinate
// of a point on side equidistant from p1 and p2, preferring the "+" root,
// or NoRoot when neither root lies in [0,1].
func SideRoot(p1, p2 Point, side Side) float64 {
	plus, minus, ok := SideEquation(p1, p2, side).Roots()
	if !ok {
		return NoRoot
	}
	if InUnit(plus) {
		return plus
	}
	if InUnit(minus) {
		return minus
	}
	return NoRoot
}

// OnSide returns the point of side whose free coordinate is t
func OnSide(side Side, t float64) Point {
	if side.Axis() == AxisX {
		return Point{X: side.Coord(), Y: t}
	}
	return Point{X: t, Y: side.Coord()}
}

// QuadraticHitsNearestSide runs SideRoot on the side nearest to p1 (first
// side in distance order wins ties) and reports whether a root was found.
func QuadraticHitsNearestSide(p1, p2 Point) bool {
	return SideRoot(p1, p2, NearestSide(p1, FirstWins)) >= 0
}

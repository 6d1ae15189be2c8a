package geometry

import "math"

// EquidistantOn intersects the perpendicular bisector of p1-p2 with the line
// of the given side. It returns the free coordinate of the intersection
// (y for Left/Right, x for Bottom/Top). ok is false when the bisector is
// parallel to the side, which includes p1 == p2.
func EquidistantOn(p1, p2 Point, side Side) (coord float64, ok bool) {
	mid := p1.Midpoint(p2)
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	c := side.Coord()

	// Bisector: (X-mid.X)*dx + (Y-mid.Y)*dy = 0
	if side.Axis() == AxisX {
		if math.Abs(dy) < Epsilon {
			return 0, false
		}
		return mid.Y - (c-mid.X)*dx/dy, true
	}
	if math.Abs(dx) < Epsilon {
		return 0, false
	}
	return mid.X - (c-mid.Y)*dy/dx, true
}

// BisectorHitsNearestSide is the nearest-side equidistance kernel. It picks
// the side nearest to p1 (later sides win ties) and reports whether the point
// on that side equidistant from p1 and p2 lies on the square's boundary.
func BisectorHitsNearestSide(p1, p2 Point) bool {
	coord, ok := EquidistantOn(p1, p2, NearestSide(p1, LastWins))
	return ok && InUnit(coord)
}

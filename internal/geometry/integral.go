package geometry

import "math"

const quarterPi = math.Pi / 4

// Fold maps a uniform sample (u, v) of the unit square onto the triangle
// with corners (0,0), (1,0) and (1/2,1/2). Samples above the diagonal
// u+v = 1 are reflected back into the lower half.
func Fold(u, v float64) Point {
	if u+v > 1 {
		return Point{X: 0.5*u + v - 0.5, Y: 0.5 * (1 - u)}
	}
	return Point{X: 0.5*u + v, Y: 0.5 * u}
}

// Integrand evaluates the integral kernel for one uniform sample (u, v).
//
// The arctangent terms use math.Atan2, so a zero denominator resolves to the
// limit pi/2*sign(y) and the corner cases x = 0 or x = 1 (where y is also 0)
// give atan(0/0) = 0. Those terms are multiplied by a squared distance that is
// 0 at the corners, so the result stays finite on the whole closed square.
func Integrand(u, v float64) float64 {
	p := Fold(u, v)
	x, y := p.X, p.Y
	xi := 1 - x

	x2 := x * x
	y2 := y * y
	xi2 := xi * xi

	return quarterPi*(2*y2+x2+xi2) -
		0.5*(math.Atan2(y, x)*(x2+y2)+math.Atan2(y, xi)*(xi2+y2))
}

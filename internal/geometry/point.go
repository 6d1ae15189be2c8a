// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     geometry
// Description: Points, sides and per-trial kernels on the unit square
// Author:      msto63
// Created:     2025-12-14
// License:     MIT
// ============================================================================

// Package geometry holds the pure per-trial kernels evaluated by the engine.
// Every function here is stateless and total: degenerate inputs resolve to a
// defined outcome instead of NaN, Inf or a panic.
package geometry

import "math"

// Epsilon is the threshold below which a denominator is treated as zero
const Epsilon = 2.220446049250313e-16

// Point is a point in the unit square
type Point struct {
	X float64
	Y float64
}

// Dist returns the euclidean distance between p and q
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Midpoint returns the midpoint of segment p-q
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// InUnit reports whether v lies in the closed interval [0,1]
func InUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     version
// Description: Central version management for geomc components
// Author:      msto63
// Created:     2025-12-15
// License:     MIT
// ============================================================================

package version

// Version constants for geomc
const (
	// Release version of the CLI
	Platform = "1.0.0"

	// Component versions. A kernel version changes whenever the numbers
	// it produces for a fixed seed change.
	Engine        = "1.0.0"
	Sampler       = "1.0.0"
	Integral      = "1.0.0"
	NearestSide   = "1.0.0"
	SideQuadratic = "1.0.0"
)

// ComponentVersion returns the version for a given component or kernel name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "sampler":
		return Sampler
	case "integral":
		return Integral
	case "nearest-side":
		return NearestSide
	case "side-quadratic":
		return SideQuadratic
	default:
		return Platform
	}
}

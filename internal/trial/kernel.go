// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     trial
// Description: Kernel selection and single-trial execution
// Author:      msto63
// Created:     2025-12-14
// License:     MIT
// ============================================================================

package trial

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKernel is returned by ParseKernel for names it does not know
var ErrUnknownKernel = errors.New("unknown kernel")

// Kernel selects the geometric predicate evaluated per trial. It is chosen
// once per run.
type Kernel int

const (
	// Integral sums a real-valued contribution per (u, v) sample
	Integral Kernel = iota
	// NearestSide tests the perpendicular bisector against the side nearest p1
	NearestSide
	// SideQuadratic solves the equidistance equation on the side nearest p1
	SideQuadratic
)

// Outcome is the form of a kernel's per-trial result
type Outcome int

const (
	// Contribution outcomes are summed as real numbers
	Contribution Outcome = iota
	// Hit outcomes are counted
	Hit
)

// Kernels returns all kernels in declaration order
func Kernels() []Kernel {
	return []Kernel{Integral, NearestSide, SideQuadratic}
}

// ParseKernel resolves a kernel from its name
func ParseKernel(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "integral", "area":
		return Integral, nil
	case "nearest-side", "nearest", "bisector":
		return NearestSide, nil
	case "side-quadratic", "quadratic":
		return SideQuadratic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}
}

// String returns the canonical kernel name
func (k Kernel) String() string {
	switch k {
	case Integral:
		return "integral"
	case NearestSide:
		return "nearest-side"
	case SideQuadratic:
		return "side-quadratic"
	default:
		return "unknown"
	}
}

// Label is the prefix of the result line
func (k Kernel) Label() string {
	return "Probability"
}

// Digits is the number of decimals printed for the estimate
func (k Kernel) Digits() int {
	if k == Integral {
		return 12
	}
	return 10
}

// Outcome reports whether the kernel produces contributions or hits
func (k Kernel) Outcome() Outcome {
	if k == Integral {
		return Contribution
	}
	return Hit
}

// Describe returns a one-line description of the kernel
func (k Kernel) Describe() string {
	switch k {
	case Integral:
		return "closed-form contribution over a folded (u, v) sample"
	case NearestSide:
		return "bisector of p1-p2 meets the side nearest p1 (later side wins ties)"
	case SideQuadratic:
		return "equidistance root on the side nearest p1 (first side wins ties)"
	default:
		return ""
	}
}

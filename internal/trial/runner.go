package trial

import (
	"github.com/msto63/geomc/internal/geometry"
	"github.com/msto63/geomc/internal/sampler"
)

// Tally is the subtotal of a number of trials
type Tally struct {
	Trials int64
	Hits   int64
	Sum    float64
}

// Add folds another tally into t
func (t *Tally) Add(o Tally) {
	t.Trials += o.Trials
	t.Hits += o.Hits
	t.Sum += o.Sum
}

// IntegralTrial draws (u, v) and returns the integral contribution
func IntegralTrial(s *sampler.Stream) float64 {
	u := s.Float64()
	v := s.Float64()
	return geometry.Integrand(u, v)
}

// NearestSideTrial draws two points and runs the bisector kernel
func NearestSideTrial(s *sampler.Stream) bool {
	p1 := s.Point()
	p2 := s.Point()
	return geometry.BisectorHitsNearestSide(p1, p2)
}

// SideQuadraticTrial draws two points and runs the per-side quadratic kernel
func SideQuadraticTrial(s *sampler.Stream) bool {
	p1 := s.Point()
	p2 := s.Point()
	return geometry.QuadraticHitsNearestSide(p1, p2)
}

// Trial runs a single trial and returns its outcome as a number: the
// contribution for Integral, 1 or 0 for the hit kernels.
func (k Kernel) Trial(s *sampler.Stream) float64 {
	switch k {
	case Integral:
		return IntegralTrial(s)
	case NearestSide:
		return boolToFloat(NearestSideTrial(s))
	case SideQuadratic:
		return boolToFloat(SideQuadraticTrial(s))
	default:
		panic("trial: unknown kernel " + k.String())
	}
}

// Run executes n trials on s. The kernel is resolved once, outside the loop.
func (k Kernel) Run(s *sampler.Stream, n int64) Tally {
	t := Tally{Trials: n}
	switch k {
	case Integral:
		for i := int64(0); i < n; i++ {
			t.Sum += IntegralTrial(s)
		}
	case NearestSide:
		t.Hits = countHits(s, n, NearestSideTrial)
	case SideQuadratic:
		t.Hits = countHits(s, n, SideQuadraticTrial)
	default:
		panic("trial: unknown kernel " + k.String())
	}
	return t
}

func countHits(s *sampler.Stream, n int64, hit func(*sampler.Stream) bool) int64 {
	var hits int64
	for i := int64(0); i < n; i++ {
		if hit(s) {
			hits++
		}
	}
	return hits
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

package engine

import (
	"math"

	"github.com/msto63/geomc/internal/trial"
)

// accumulator is the driver's running total. Contributions are summed with
// Neumaier compensation so the error stays bounded over billions of trials.
type accumulator struct {
	trials int64
	hits   int64
	sum    float64
	comp   float64
}

func (a *accumulator) add(t trial.Tally) {
	a.trials += t.Trials
	a.hits += t.Hits

	s := a.sum + t.Sum
	if math.Abs(a.sum) >= math.Abs(t.Sum) {
		a.comp += (a.sum - s) + t.Sum
	} else {
		a.comp += (t.Sum - s) + a.sum
	}
	a.sum = s
}

func (a *accumulator) total() float64 {
	return a.sum + a.comp
}

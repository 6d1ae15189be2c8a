package engine

import (
	"fmt"
	"time"

	"github.com/msto63/geomc/internal/trial"
)

// Result is the outcome of a completed run
type Result struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Kernel   trial.Kernel  `json:"-" yaml:"-"`
	Trials   int64         `json:"trials" yaml:"trials"`
	Batches  int64         `json:"batches" yaml:"batches"`
	Hits     int64         `json:"hits" yaml:"hits"`
	Sum      float64       `json:"sum" yaml:"sum"`
	Estimate float64       `json:"estimate" yaml:"estimate"`
	Elapsed  time.Duration `json:"elapsed_ns" yaml:"elapsed"`
}

// Line renders "<label> after <trials> trials: <rate>"
func (r *Result) Line() string {
	return fmt.Sprintf("%s after %d trials: %.*f",
		r.Kernel.Label(), r.Trials, r.Kernel.Digits(), r.Estimate)
}

// estimate divides the grand total by the trial count
func estimate(k trial.Kernel, hits int64, sum float64, trials int64) float64 {
	if trials == 0 {
		return 0
	}
	if k.Outcome() == trial.Hit {
		return float64(hits) / float64(trials)
	}
	return sum / float64(trials)
}

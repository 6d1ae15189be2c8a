package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/geomc/pkg/core/logging"
)

// Observer receives the number of trials completed by each batch
type Observer interface {
	Notify(increment int64)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(increment int64)

// Notify calls f(increment)
func (f ObserverFunc) Notify(increment int64) {
	f(increment)
}

type nopObserver struct{}

func (nopObserver) Notify(int64) {}

// Driver runs the batches of a plan one after another and folds their
// subtotals into the grand total
type Driver struct {
	runner BatchRunner
	logger *logging.Logger
}

// NewDriver creates a driver. A nil logger discards log output.
func NewDriver(runner BatchRunner, logger *logging.Logger) *Driver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Driver{runner: runner, logger: logger}
}

// Run executes the plan. The plan is validated before any batch starts;
// cancellation is honoured between batches. The observer is notified after
// every batch with the number of trials it completed.
func (d *Driver) Run(ctx context.Context, plan Plan, observer Observer) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = nopObserver{}
	}

	kernel := d.runner.Kernel()
	runID := uuid.NewString()
	log := d.logger.With("run_id", runID)

	whole, rem := plan.Batches()
	log.Info("Starting run",
		"kernel", kernel.String(),
		"trials", plan.Trials,
		"batch_size", plan.BatchSize,
		"full_batches", whole,
		"remainder", rem,
	)

	start := time.Now()
	var acc accumulator
	var batches int64

	for index, size := range plan.Sizes() {
		if err := ctx.Err(); err != nil {
			log.Warn("Run cancelled", "completed", acc.trials, "trials", plan.Trials)
			return nil, fmt.Errorf("run cancelled after %d of %d trials: %w", acc.trials, plan.Trials, err)
		}

		timer := log.StartTimer("batch", "index", index, "size", size)
		tally, err := d.runner.RunBatch(ctx, uint64(index), size)
		if err != nil {
			log.Error("Batch failed", "index", index, "error", err)
			return nil, fmt.Errorf("batch %d: %w", index, err)
		}
		if tally.Trials != size {
			return nil, fmt.Errorf("batch %d completed %d of %d trials", index, tally.Trials, size)
		}
		timer.Stop()

		acc.add(tally)
		batches++
		observer.Notify(tally.Trials)
	}

	result := &Result{
		RunID:    runID,
		Kernel:   kernel,
		Trials:   acc.trials,
		Batches:  batches,
		Hits:     acc.hits,
		Sum:      acc.total(),
		Estimate: estimate(kernel, acc.hits, acc.total(), acc.trials),
		Elapsed:  time.Since(start),
	}

	log.Info("Run completed",
		"estimate", result.Estimate,
		"batches", result.Batches,
		"elapsed", result.Elapsed.String(),
	)
	return result, nil
}

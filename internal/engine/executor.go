package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/msto63/geomc/internal/sampler"
	"github.com/msto63/geomc/internal/trial"
)

// chunkSize is the number of trials a worker runs between cancellation checks
const chunkSize = 1 << 16

// BatchRunner executes one batch of trials and returns its subtotal
type BatchRunner interface {
	Kernel() trial.Kernel
	RunBatch(ctx context.Context, index uint64, size int64) (trial.Tally, error)
}

// Executor runs a batch across a fixed number of workers. Each worker draws
// from its own stream and owns its subtotal until the reduction.
type Executor struct {
	kernel  trial.Kernel
	workers int
	source  *sampler.Source
}

// NewExecutor creates an executor for kernel with the given worker count
func NewExecutor(kernel trial.Kernel, workers int, source *sampler.Source) (*Executor, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: workers must be > 0, got %d", ErrInvalidConfig, workers)
	}
	if kernel.String() == "unknown" {
		return nil, fmt.Errorf("%w: %d", trial.ErrUnknownKernel, int(kernel))
	}
	if source == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidConfig)
	}
	return &Executor{kernel: kernel, workers: workers, source: source}, nil
}

// Kernel returns the kernel evaluated by the executor
func (e *Executor) Kernel() trial.Kernel {
	return e.kernel
}

// Workers returns the worker count
func (e *Executor) Workers() int {
	return e.workers
}

// Seed returns the master seed of the random source
func (e *Executor) Seed() uint64 {
	return e.source.Seed()
}

// Partition splits size into at most workers contiguous shares. The first
// size%workers shares get one extra trial; empty shares are omitted.
func Partition(size int64, workers int) []int64 {
	if size <= 0 || workers <= 0 {
		return nil
	}
	n := int64(workers)
	if size < n {
		n = size
	}
	base, extra := size/n, size%n

	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < extra {
			shares[i]++
		}
	}
	return shares
}

// RunBatch runs size trials and returns the reduced subtotal. Worker i of
// batch index uses stream (index, i). Subtotals are reduced in worker order,
// so a fixed seed and worker count give a bit-identical result.
func (e *Executor) RunBatch(ctx context.Context, index uint64, size int64) (trial.Tally, error) {
	if size <= 0 {
		return trial.Tally{}, fmt.Errorf("%w: batch size must be > 0, got %d", ErrInvalidConfig, size)
	}

	shares := Partition(size, e.workers)
	partials := make([]trial.Tally, len(shares))

	g, gctx := errgroup.WithContext(ctx)
	for w, share := range shares {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("batch %d worker %d: kernel fault: %v", index, w, r)
				}
			}()

			stream := e.source.Stream(index, uint64(w))
			var local trial.Tally
			for left := share; left > 0; left -= chunkSize {
				if err := gctx.Err(); err != nil {
					return err
				}
				local.Add(e.kernel.Run(stream, min(left, chunkSize)))
			}
			partials[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return trial.Tally{}, err
	}

	var total trial.Tally
	for _, p := range partials {
		total.Add(p)
	}
	return total, nil
}

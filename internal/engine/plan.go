// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     engine
// Description: Batch planning, parallel batch execution and the run driver
// Author:      msto63
// Created:     2025-12-14
// License:     MIT
// ============================================================================

package engine

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidConfig is returned before any work starts when trial, batch or
// worker counts are not positive
var ErrInvalidConfig = errors.New("invalid run configuration")

// Plan splits a run into sequential batches
type Plan struct {
	Trials    int64
	BatchSize int64
}

// Validate checks that both counts are positive
func (p Plan) Validate() error {
	if p.Trials <= 0 {
		return fmt.Errorf("%w: trials must be > 0, got %d", ErrInvalidConfig, p.Trials)
	}
	if p.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be > 0, got %d", ErrInvalidConfig, p.BatchSize)
	}
	return nil
}

// Batches returns the number of full batches and the size of the trailing
// remainder batch (0 if there is none)
func (p Plan) Batches() (whole, remainder int64) {
	return p.Trials / p.BatchSize, p.Trials % p.BatchSize
}

// Count returns the number of batch executions the plan needs
func (p Plan) Count() int64 {
	whole, rem := p.Batches()
	if rem > 0 {
		return whole + 1
	}
	return whole
}

// Sizes yields (index, size) for every batch in execution order. The sizes
// add up to Trials exactly.
func (p Plan) Sizes() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		whole, rem := p.Batches()
		for i := int64(0); i < whole; i++ {
			if !yield(i, p.BatchSize) {
				return
			}
		}
		if rem > 0 {
			yield(whole, rem)
		}
	}
}

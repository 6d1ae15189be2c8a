// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     sampler
// Description: Independent uniform random streams, one per batch worker
// Author:      msto63
// Created:     2025-12-14
// License:     MIT
// ============================================================================

package sampler

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"

	"golang.org/x/crypto/sha3"

	"github.com/msto63/geomc/internal/geometry"
)

// Source owns the master seed from which every worker stream is derived.
// A Source holds no generator state itself and is safe for concurrent use.
type Source struct {
	seed uint64
}

// NewSource creates a Source with a fixed master seed
func NewSource(seed uint64) *Source {
	return &Source{seed: seed}
}

// NewRandomSource creates a Source with a master seed read from crypto/rand.
// The seed is available through Seed so a run can be reproduced.
func NewRandomSource() (*Source, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("failed to read master seed: %w", err)
	}
	return NewSource(binary.LittleEndian.Uint64(buf[:])), nil
}

// Seed returns the master seed
func (s *Source) Seed() uint64 {
	return s.seed
}

// Stream returns the generator for one worker of one batch. The PCG state is
// the SHA3-256 digest of (seed, batch, worker), so distinct coordinates give
// unrelated streams and equal coordinates replay the same stream.
func (s *Source) Stream(batch, worker uint64) *Stream {
	var in [24]byte
	binary.LittleEndian.PutUint64(in[0:], s.seed)
	binary.LittleEndian.PutUint64(in[8:], batch)
	binary.LittleEndian.PutUint64(in[16:], worker)
	sum := sha3.Sum256(in[:])

	hi := binary.LittleEndian.Uint64(sum[0:8])
	lo := binary.LittleEndian.Uint64(sum[8:16])
	return &Stream{rng: mrand.New(mrand.NewPCG(hi, lo))}
}

// Stream is a single-owner uniform generator. It must not be shared
// between goroutines.
type Stream struct {
	rng *mrand.Rand
}

// Float64 returns a uniform value in [0,1)
func (s *Stream) Float64() float64 {
	return s.rng.Float64()
}

// Point returns a uniform point of the unit square
func (s *Stream) Point() geometry.Point {
	x := s.rng.Float64()
	y := s.rng.Float64()
	return geometry.Point{X: x, Y: y}
}

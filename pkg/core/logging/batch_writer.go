// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     logging
// Description: BatchWriter appends log lines to a sink in batches
// Author:      msto63
// Created:     2025-12-16
// License:     MIT
// ============================================================================

package logging

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"time"
)

// BatchWriter implements io.Writer. Every line is written to the fallback
// immediately and buffered for the sink, which receives one write per
// batch. A batch is flushed when it is full, on every tick and on Close.
type BatchWriter struct {
	sink        io.Writer
	fallback    io.Writer
	batchSize   int
	flushPeriod time.Duration

	mu      sync.Mutex
	pending bytes.Buffer
	lines   int
	err     error

	flushCh   chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// BatchWriterConfig holds configuration for BatchWriter
type BatchWriterConfig struct {
	Sink        io.Writer     // Destination for batched lines (required)
	Fallback    io.Writer     // Receives every line unbuffered (optional)
	BatchSize   int           // Lines per batch (default: 100)
	FlushPeriod time.Duration // How often to flush (default: 5s)
}

// DefaultBatchWriterConfig returns default configuration for sink
func DefaultBatchWriterConfig(sink io.Writer) BatchWriterConfig {
	return BatchWriterConfig{
		Sink:        sink,
		BatchSize:   100,
		FlushPeriod: 5 * time.Second,
	}
}

// NewBatchWriter creates a BatchWriter and starts its flush worker
func NewBatchWriter(cfg BatchWriterConfig) (*BatchWriter, error) {
	if cfg.Sink == nil {
		return nil, errors.New("batch writer needs a sink")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushPeriod <= 0 {
		cfg.FlushPeriod = 5 * time.Second
	}

	w := &BatchWriter{
		sink:        cfg.Sink,
		fallback:    cfg.Fallback,
		batchSize:   cfg.BatchSize,
		flushPeriod: cfg.FlushPeriod,
		flushCh:     make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	go w.flushWorker()

	return w, nil
}

// Write implements io.Writer
func (w *BatchWriter) Write(p []byte) (n int, err error) {
	if w.fallback != nil {
		if n, err = w.fallback.Write(p); err != nil {
			return n, err
		}
	}

	w.mu.Lock()
	w.pending.Write(p)
	w.lines++
	shouldFlush := w.lines >= w.batchSize
	w.mu.Unlock()

	if shouldFlush {
		select {
		case w.flushCh <- struct{}{}:
		default:
		}
	}

	return len(p), nil
}

// flushWorker periodically flushes the buffer
func (w *BatchWriter) flushWorker() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.flushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			w.flush()
			return
		case <-w.flushCh:
			w.flush()
		case <-ticker.C:
			w.flush()
		}
	}
}

// flush writes the pending batch to the sink. The first sink error is kept
// and returned by Close.
func (w *BatchWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending.Len() == 0 {
		return
	}
	if _, err := w.sink.Write(w.pending.Bytes()); err != nil && w.err == nil {
		w.err = err
	}
	w.pending.Reset()
	w.lines = 0
}

// Close flushes the last batch and stops the worker. The sink is not closed.
func (w *BatchWriter) Close() error {
	w.closeOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.doneCh

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     history
// Description: SQLite-backed record of completed runs
// Author:      msto63
// Created:     2025-12-16
// License:     MIT
// ============================================================================

// Package history stores completed runs so that estimates from independent
// runs of the same kernel can be listed and pooled.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunRecord is one completed run
type RunRecord struct {
	RunID     string        `json:"run_id"`
	Timestamp time.Time     `json:"timestamp"`
	Kernel    string        `json:"kernel"`
	Seed      uint64        `json:"seed"`
	Workers   int           `json:"workers"`
	Trials    int64         `json:"trials"`
	BatchSize int64         `json:"batch_size"`
	Hits      int64         `json:"hits"`
	Sum       float64       `json:"sum"`
	Estimate  float64       `json:"estimate"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// RunFilter defines criteria for listing runs
type RunFilter struct {
	Kernel string
	Limit  int
}

// KernelStats pools all recorded runs of one kernel
type KernelStats struct {
	Kernel   string
	Runs     int64
	Trials   int64
	Estimate float64 // trial-weighted mean of the run estimates
}

// RunStore defines the interface for run persistence
type RunStore interface {
	Record(ctx context.Context, run *RunRecord) error
	Query(ctx context.Context, filter RunFilter) ([]*RunRecord, error)
	Stats(ctx context.Context, kernel string) (*KernelStats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRunStore implements RunStore using SQLite
type SQLiteRunStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/geomc.db",
	}
}

// NewSQLiteRunStore opens (and if needed creates) the run database
func NewSQLiteRunStore(cfg SQLiteConfig) (*SQLiteRunStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteRunStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteRunStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		kernel TEXT NOT NULL,
		seed TEXT NOT NULL,
		workers INTEGER NOT NULL,
		trials INTEGER NOT NULL,
		batch_size INTEGER NOT NULL,
		hits INTEGER NOT NULL,
		sum REAL NOT NULL,
		estimate REAL NOT NULL,
		elapsed_ns INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_kernel ON runs(kernel);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a completed run
func (s *SQLiteRunStore) Record(ctx context.Context, run *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.RunID == "" {
		return fmt.Errorf("run record without run id")
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}

	// seeds use the full uint64 range, which SQLite integers cannot hold
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, timestamp, kernel, seed, workers, trials, batch_size, hits, sum, estimate, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunID, run.Timestamp.UTC(), run.Kernel, fmt.Sprintf("%d", run.Seed), run.Workers, run.Trials,
		run.BatchSize, run.Hits, run.Sum, run.Estimate, int64(run.Elapsed))

	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// Query lists runs, newest first
func (s *SQLiteRunStore) Query(ctx context.Context, filter RunFilter) ([]*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT run_id, timestamp, kernel, seed, workers, trials, batch_size, hits, sum, estimate, elapsed_ns FROM runs WHERE 1=1`
	var args []interface{}

	if filter.Kernel != "" {
		query += " AND kernel = ?"
		args = append(args, filter.Kernel)
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		var run RunRecord
		var seed string
		var elapsed int64

		if err := rows.Scan(&run.RunID, &run.Timestamp, &run.Kernel, &seed, &run.Workers, &run.Trials,
			&run.BatchSize, &run.Hits, &run.Sum, &run.Estimate, &elapsed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if _, err := fmt.Sscan(seed, &run.Seed); err != nil {
			return nil, fmt.Errorf("run %s: invalid seed %q: %w", run.RunID, seed, err)
		}
		run.Elapsed = time.Duration(elapsed)

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// Stats pools every recorded run of kernel
func (s *SQLiteRunStore) Stats(ctx context.Context, kernel string) (*KernelStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &KernelStats{Kernel: kernel}
	var weighted sql.NullFloat64
	var trials sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(trials), SUM(estimate * trials) FROM runs WHERE kernel = ?
	`, kernel).Scan(&stats.Runs, &trials, &weighted)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	if trials.Valid && trials.Int64 > 0 {
		stats.Trials = trials.Int64
		stats.Estimate = weighted.Float64 / float64(trials.Int64)
	}

	return stats, nil
}

// Prune removes runs older than the given duration
func (s *SQLiteRunStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	return result.RowsAffected()
}

// Close closes the database connection
func (s *SQLiteRunStore) Close() error {
	return s.db.Close()
}

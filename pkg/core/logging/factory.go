// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers
// Author:      msto63
// Created:     2025-12-14
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
)

// LoggerConfig holds string-typed logger settings as they come from
// configuration files and flags
type LoggerConfig struct {
	// Component name
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: "json" or "text"
	Format string

	// Output writer (default: os.Stderr)
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}
}

// NewLogger creates a logger from a LoggerConfig. Invalid level or format
// names fall back to info and json.
func NewLogger(cfg LoggerConfig) *Logger {
	level, _ := ParseLevel(cfg.Level)
	format, _ := ParseFormat(cfg.Format)

	return NewWithConfig(Config{
		Name:   cfg.Name,
		Level:  level,
		Format: format,
		Output: cfg.Output,
	})
}

// Discard returns a logger that writes nothing
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelFatal + 1, Output: io.Discard})
}

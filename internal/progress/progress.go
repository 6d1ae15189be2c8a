// ============================================================================
// geomc - Geometrische Monte-Carlo-Schätzer
// ============================================================================
//
// Package:     progress
// Description: Progress observers for the run driver
// Author:      msto63
// Created:     2025-12-15
// License:     MIT
// ============================================================================

package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/msto63/geomc/pkg/core/logging"
)

// Tracker receives batch increments from the driver and owns whatever is
// needed to display them. Notify is called from the driver goroutine only.
type Tracker interface {
	Notify(increment int64)
	Start() error
	Stop() error
}

// Mode names accepted by New
const (
	ModeTUI   = "tui"
	ModePlain = "plain"
	ModeNone  = "none"
)

// New creates the tracker for mode. total is the planned trial count and
// interval throttles the plain tracker.
func New(mode string, total int64, title string, interval time.Duration, logger *logging.Logger, out io.Writer) (Tracker, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeTUI:
		return NewTUI(total, title, out), nil
	case ModePlain, "":
		p := NewPlain(total, logger)
		p.Interval = interval
		return p, nil
	case ModeNone, "off":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown progress mode %q (use tui, plain or none)", mode)
	}
}

// Nop discards all notifications
type Nop struct{}

func (Nop) Notify(int64) {}
func (Nop) Start() error { return nil }
func (Nop) Stop() error  { return nil }

// Plain logs one progress entry per batch, or at most one per Interval
// when Interval is set. The final batch is always logged.
type Plain struct {
	Interval time.Duration

	logger *logging.Logger
	total  int64
	done   int64
	start  time.Time
	last   time.Time
	now    func() time.Time
}

// NewPlain creates a log-based tracker
func NewPlain(total int64, logger *logging.Logger) *Plain {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Plain{logger: logger, total: total, now: time.Now}
}

// Start records the start time
func (p *Plain) Start() error {
	p.start = p.now()
	return nil
}

// Notify adds increment to the completed count and logs the new state
func (p *Plain) Notify(increment int64) {
	p.done += increment

	now := p.now()
	if p.Interval > 0 && !p.last.IsZero() && now.Sub(p.last) < p.Interval && p.done < p.total {
		return
	}
	p.last = now

	kv := []interface{}{
		"completed", p.done,
		"total", p.total,
		"percent", fmt.Sprintf("%.1f", percent(p.done, p.total)*100),
	}
	if elapsed := now.Sub(p.start); !p.start.IsZero() && elapsed > 0 {
		kv = append(kv, "trials_per_sec", int64(float64(p.done)/elapsed.Seconds()))
	}
	p.logger.Info("Progress", kv...)
}

// Stop logs the final count
func (p *Plain) Stop() error {
	p.logger.Info("Completed", "completed", p.done, "total", p.total)
	return nil
}

// Done returns the number of trials reported so far
func (p *Plain) Done() int64 {
	return p.done
}

func percent(done, total int64) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(done) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}

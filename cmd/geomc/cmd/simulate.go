package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"

	"github.com/msto63/geomc/internal/engine"
	"github.com/msto63/geomc/internal/history"
	"github.com/msto63/geomc/internal/progress"
	"github.com/msto63/geomc/internal/sampler"
	"github.com/msto63/geomc/internal/trial"
	"github.com/msto63/geomc/pkg/core/config"
	"github.com/msto63/geomc/pkg/core/logging"
	"github.com/msto63/geomc/pkg/core/version"
)

// report is the JSON form of a finished run
type report struct {
	Kernel  string `json:"kernel"`
	Version string `json:"kernel_version"`
	Seed    uint64 `json:"seed"`
	Workers int    `json:"workers"`
	Summary string `json:"line"`
	engine.Result
}

// simulate runs cfg to completion and writes the result to the command's
// output. Logs and progress go to stderr.
func simulate(cmd *cobra.Command, cfg *config.Config, asJSON bool) error {
	logCfg := logging.DefaultLoggerConfig("geomc")
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Output = cmd.ErrOrStderr()
	if verbose {
		logCfg.Level = "debug"
	} else if strings.EqualFold(cfg.Progress.Mode, progress.ModeTUI) {
		logCfg.Level = "warn"
	}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(os.ExpandEnv(cfg.Logging.File), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			printError("Logdatei konnte nicht geöffnet werden", err)
			return err
		}
		defer f.Close()

		bwCfg := logging.DefaultBatchWriterConfig(f)
		bwCfg.Fallback = logCfg.Output
		bw, err := logging.NewBatchWriter(bwCfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := bw.Close(); err != nil {
				printError("Logdatei unvollständig", err)
			}
		}()
		logCfg.Output = bw
	}
	logger := logging.NewLogger(logCfg)

	kernel, err := trial.ParseKernel(cfg.Simulation.Kernel)
	if err != nil {
		printError("Ungültiger Kernel", err)
		return err
	}

	plan := engine.Plan{Trials: cfg.Simulation.Trials, BatchSize: cfg.Simulation.BatchSize}
	if err := plan.Validate(); err != nil {
		printError("Ungültige Konfiguration", err)
		return err
	}

	source := sampler.NewSource(cfg.Simulation.Seed)
	if cfg.Simulation.Seed == 0 {
		if source, err = sampler.NewRandomSource(); err != nil {
			printError("Seed konnte nicht erzeugt werden", err)
			return err
		}
	}

	executor, err := engine.NewExecutor(kernel, cfg.Simulation.Workers, source)
	if err != nil {
		printError("Ungültige Konfiguration", err)
		return err
	}
	logger.Info("Using seed", "seed", source.Seed(), "workers", executor.Workers())

	tracker, err := progress.New(cfg.Progress.Mode, plan.Trials, kernel.String(),
		cfg.Progress.Interval.Duration, logger, cmd.ErrOrStderr())
	if err != nil {
		printError("Ungültige Konfiguration", err)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tracker.Start(); err != nil {
		return fmt.Errorf("progress display: %w", err)
	}
	result, runErr := engine.NewDriver(executor, logger).Run(ctx, plan, tracker)
	if err := tracker.Stop(); err != nil {
		logger.Warn("Progress display failed", "error", err)
	}
	if runErr != nil {
		printError("Simulation abgebrochen", runErr)
		return runErr
	}

	if cfg.History.Path != "" {
		if err := recordRun(ctx, cfg.History.Path, result, source.Seed(), executor.Workers(), plan.BatchSize); err != nil {
			logger.Warn("Run not recorded", "path", cfg.History.Path, "error", err)
		} else {
			logger.Debug("Run recorded", "path", cfg.History.Path, "run_id", result.RunID)
		}
	}

	out := cmd.OutOrStdout()
	if !asJSON {
		_, err = fmt.Fprintln(out, result.Line())
		return err
	}

	data, err := sonnet.Marshal(report{
		Kernel:  kernel.String(),
		Version: version.ComponentVersion(kernel.String()),
		Seed:    source.Seed(),
		Workers: executor.Workers(),
		Summary: result.Line(),
		Result:  *result,
	})
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// recordRun appends result to the run database at path
func recordRun(ctx context.Context, path string, result *engine.Result, seed uint64, workers int, batchSize int64) error {
	store, err := history.NewSQLiteRunStore(history.SQLiteConfig{Path: os.ExpandEnv(path)})
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(ctx, &history.RunRecord{
		RunID:     result.RunID,
		Kernel:    result.Kernel.String(),
		Seed:      seed,
		Workers:   workers,
		Trials:    result.Trials,
		BatchSize: batchSize,
		Hits:      result.Hits,
		Sum:       result.Sum,
		Estimate:  result.Estimate,
		Elapsed:   result.Elapsed,
	})
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/geomc/pkg/core/config"
)

var (
	runKernel    string
	runTrials    int64
	runBatchSize int64
	runWorkers   int
	runSeed      uint64
	runProgress  string
	runJSON      bool
	runHistory   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulation ausführen",
	Long: `Führt eine Simulation aus. Flags überschreiben Werte aus der
Konfigurationsdatei und den GEOMC_* Umgebungsvariablen.

Beispiele:
  geomc run                                   # Standardlauf
  geomc run --kernel integral --trials 1000000000
  geomc run --trials 1000000 --seed 42 --json
  geomc run --progress tui`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runKernel, "kernel", "k", "", "Kernel (integral, nearest-side, side-quadratic)")
	runCmd.Flags().Int64VarP(&runTrials, "trials", "n", 0, "Anzahl Versuche")
	runCmd.Flags().Int64VarP(&runBatchSize, "batch-size", "b", 0, "Versuche pro Batch")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "Anzahl paralleler Worker")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "Seed (0 = zufällig)")
	runCmd.Flags().StringVar(&runProgress, "progress", "", "Fortschrittsanzeige (tui, plain, none)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Ergebnis als JSON ausgeben")
	runCmd.Flags().StringVar(&runHistory, "history", "", "Lauf in dieser SQLite-Datenbank speichern")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}
	applyFlags(cmd, cfg)
	return simulate(cmd, cfg, runJSON)
}

// applyFlags copies explicitly set flags over the loaded configuration
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("kernel") {
		cfg.Simulation.Kernel = runKernel
	}
	if flags.Changed("trials") {
		cfg.Simulation.Trials = runTrials
	}
	if flags.Changed("batch-size") {
		cfg.Simulation.BatchSize = runBatchSize
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers = runWorkers
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed = runSeed
	}
	if flags.Changed("progress") {
		cfg.Progress.Mode = runProgress
	}
	if flags.Changed("history") {
		cfg.History.Path = runHistory
	}
}

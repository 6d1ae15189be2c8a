package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/msto63/geomc/internal/history"
	"github.com/msto63/geomc/internal/trial"
	"github.com/msto63/geomc/pkg/core/config"
)

var (
	historyKernel string
	historyLimit  int
	historyPrune  time.Duration
)

var historyHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF"))

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Gespeicherte Läufe anzeigen",
	Long: `Zeigt die in der Lauf-Datenbank gespeicherten Läufe und den über
alle Läufe eines Kernels gepoolten Schätzwert.

Beispiele:
  geomc history                          # Letzte 20 Läufe
  geomc history --kernel integral        # Nur ein Kernel
  geomc history --prune 720h             # Läufe älter als 30 Tage löschen`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyKernel, "kernel", "k", "", "Nur Läufe dieses Kernels")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximale Anzahl Läufe")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "Läufe älter als diese Dauer löschen")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	path := cfg.History.Path
	if path == "" {
		path = history.DefaultConfig().Path
	}
	store, err := history.NewSQLiteRunStore(history.SQLiteConfig{Path: os.ExpandEnv(path)})
	if err != nil {
		printError("Lauf-Datenbank nicht verfügbar", err)
		return err
	}
	defer store.Close()

	return showHistory(cmd.Context(), cmd, store)
}

// showHistory prints the filtered runs and the pooled estimate per kernel
func showHistory(ctx context.Context, cmd *cobra.Command, store history.RunStore) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	kernels := trial.Kernels()
	if historyKernel != "" {
		k, err := trial.ParseKernel(historyKernel)
		if err != nil {
			printError("Ungültiger Kernel", err)
			return err
		}
		kernels = []trial.Kernel{k}
	}

	if historyPrune > 0 {
		n, err := store.Prune(ctx, historyPrune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d Läufe gelöscht\n\n", n)
	}

	filter := history.RunFilter{Limit: historyLimit}
	if len(kernels) == 1 {
		filter.Kernel = kernels[0].String()
	}
	runs, err := store.Query(ctx, filter)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "Keine Läufe gespeichert.")
		return nil
	}

	fmt.Fprintln(out, historyHeaderStyle.Render(fmt.Sprintf("%-36s  %-19s  %-14s  %14s  %s",
		"Run", "Zeit", "Kernel", "Versuche", "Schätzwert")))
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-19s  %-14s  %14d  %.10f\n",
			r.RunID, r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.Kernel, r.Trials, r.Estimate)
	}

	fmt.Fprintln(out)
	for _, k := range kernels {
		stats, err := store.Stats(ctx, k.String())
		if err != nil {
			return err
		}
		if stats.Runs == 0 {
			continue
		}
		fmt.Fprintf(out, "%-14s  %d Läufe, %d Versuche, gepoolt: %.*f\n",
			k.String(), stats.Runs, stats.Trials, k.Digits(), stats.Estimate)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/geomc/pkg/core/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "geomc",
	Short: "geomc - Geometrische Monte-Carlo-Schätzer",
	Long: `geomc schätzt geometrische Wahrscheinlichkeiten im Einheitsquadrat
per Monte-Carlo-Simulation.

Ohne Argumente wird der Standardlauf aus der Konfiguration ausgeführt
(ohne Konfigurationsdatei: nearest-side, 10 Mrd. Versuche).

Kernel:
  integral        - geschlossene Formel über (u, v)
  nearest-side    - Mittelsenkrechte trifft die nächste Seite
  side-quadratic  - Gleichabstandswurzel auf der nächsten Seite`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgFile)
		if err != nil {
			printError("Konfiguration konnte nicht geladen werden", err)
			return err
		}
		return simulate(cmd, cfg, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/geomc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/msto63/geomc/internal/trial"
	"github.com/msto63/geomc/pkg/core/version"
)

var (
	kernelNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF")).Width(16)
	kernelMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

var kernelsCmd = &cobra.Command{
	Use:   "kernels",
	Short: "Verfügbare Kernel anzeigen",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Verfügbare Kernel")
		fmt.Fprintln(out, "=================")
		for _, k := range trial.Kernels() {
			meta := fmt.Sprintf("v%s, %d Stellen", version.ComponentVersion(k.String()), k.Digits())
			fmt.Fprintf(out, "%s %s\n%s %s\n",
				kernelNameStyle.Render(k.String()), k.Describe(),
				kernelNameStyle.Render(""), kernelMetaStyle.Render(meta))
		}
	},
}

func init() {
	rootCmd.AddCommand(kernelsCmd)
}

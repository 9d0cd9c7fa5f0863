// Package commands implements the ulog-diag CLI commands.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "ulog-diag",
		Short:         "Inspect and analyze diagnostics log files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
}

// Execute runs the CLI.
func Execute() {
	root := newRootCmd()
	root.AddCommand(newViewCmd(), newStatsCmd(), newExportCmd(), newRunsCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// shortID abbreviates a run ID for display.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

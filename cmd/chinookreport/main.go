// Package main provides the CLI entry point for chinookreport.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chinookreport",
		Short: "Build the Chinook music-store metrics workbook",
		Long: `chinookreport reads sales and catalog metrics from a Chinook SQLite
database and writes them to an Excel workbook with a Pareto chart.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newGenerateCmd(), newInspectCmd())
	return rootCmd
}

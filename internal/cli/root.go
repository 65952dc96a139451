// Package cli implements the Stepling command-line interface using Cobra.
// Each subcommand maps to one engine capability (sync, status, shop, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stepling",
	Short: "Stepling — your steps raise a pixel pet",
	Long: `Stepling is a local-first step progression engine.
Feed it step readings and it evolves an avatar through phases, tracks
streaks, generates daily missions, and runs a cosmetic shop — all on
your machine, all in one SQLite file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

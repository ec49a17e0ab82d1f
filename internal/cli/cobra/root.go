// Package cobra provides the Cobra-based CLI command tree for relcheck.
package cobra

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/relcheck/internal/version"
)

// GlobalOpts holds global options parsed before subcommand dispatch.
type GlobalOpts struct {
	Verbose bool
	Debug   bool
}

// globalOpts stores the parsed global options for access by subcommands.
var globalOpts GlobalOpts

// GetGlobalOpts returns the parsed global options.
func GetGlobalOpts() GlobalOpts {
	return globalOpts
}

// NewRootCmd creates the root cobra command for relcheck.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "relcheck",
		Short: "Release metadata consistency checker for Rust crates",
		Long: `relcheck - release metadata consistency checker for Rust crates

Relcheck validates that the version declared in Cargo.toml agrees with the
changelog, the project description file, the local git tags, and the package
registry before a release job publishes. Findings are collected across all
checks and reported together.`,
		Version:       version.FullVersion(),
		SilenceErrors: true, // We handle error printing in main.go
		SilenceUsage:  true, // We handle usage printing manually
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Verbose, "verbose", false, "show detailed error context")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Debug, "debug", false, "enable debug logging")

	// Disable Cobra's default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add all subcommands
	rootCmd.AddCommand(
		newCheckCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

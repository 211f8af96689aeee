// Package cli provides the Cobra command structure for pyproject-fmt.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyprojectfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root pyproject-fmt command. The root command
// formats its inputs; init, env and version are subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	rootCmd := newFormatCommand()
	rootCmd.Version = info.Version
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if debug {
			logging.SetLevel("debug")
		}
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	color, _ := rootCmd.Flags().GetString("color")
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

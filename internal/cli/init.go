package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/pyprojectfmt/internal/configloader"
	"github.com/yaklabco/pyprojectfmt/internal/logging"
	"github.com/yaklabco/pyprojectfmt/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// configDirPermissions is the file mode for created configuration directories.
const configDirPermissions = 0o755

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a pyproject-fmt configuration file",
		Long: `Create a configuration file with the default settings.

The YAML template is written to the user configuration file
($XDG_CONFIG_HOME/pyproject-fmt/config.yaml) unless --output is given.
The TOML template is a [tool.pyproject-fmt] table to paste into a
pyproject.toml and is printed to standard output by default.

Examples:
  pyproject-fmt init                      Create a commented user config
  pyproject-fmt init --full               Write every setting with its value
  pyproject-fmt init --format toml        Print a [tool.pyproject-fmt] table
  pyproject-fmt init -o fmt.yaml          Write to a custom file path
  pyproject-fmt init -o -                 Print the YAML template`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting instead of a commented template")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Template format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", `Output file path, "-" for standard output`)

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWriter(cmd.ErrOrStderr(), "info")

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrUsage, flags.format)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "toml" {
			outputPath = "-"
		} else {
			outputPath = filepath.Join(configloader.UserConfigDir(), "config.yaml")
		}
	}

	if outputPath == "-" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), configDirPermissions); err != nil {
		return fmt.Errorf("%w: create directory: %w", ErrIO, err)
	}
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("%w: write file: %w", ErrIO, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/pyprojectfmt/internal/configloader"
	"github.com/yaklabco/pyprojectfmt/internal/logging"
	"github.com/yaklabco/pyprojectfmt/pkg/config"
	"github.com/yaklabco/pyprojectfmt/pkg/reporter"
	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

type formatFlags struct {
	maxPython   string
	minPython   string
	format      string
	color       string
	compact     bool
	noPyproject bool
}

func newFormatCommand() *cobra.Command {
	var cfg config.Config
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "pyproject-fmt [flags] [inputs...]",
		Short: "Format pyproject.toml files",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, &cfg, flags)
		},
	}

	addFormatFlags(cmd, &cfg, flags)

	return cmd
}

const formatLongDescription = `Format pyproject.toml files into a canonical layout.

Tables and keys are put in a fixed order, dependency specifiers are
normalized, Python classifiers are synthesized from requires-python and
arrays are sorted. Comments stay attached to the entries they describe.

Inputs are files or directories (meaning <dir>/pyproject.toml); "-" reads
standard input. Files are rewritten in place and a diff is printed for each
one that changed. The exit code is 1 when any input changed.

Settings are read from the user config, --config, the document's own
[tool.pyproject-fmt] table, PYPROJECT_FMT_* variables and flags, in
increasing order of precedence.

Examples:
  pyproject-fmt pyproject.toml          # Format in place
  pyproject-fmt .                       # Format ./pyproject.toml
  pyproject-fmt --check a b c           # Fail if any would change
  pyproject-fmt --stdout pyproject.toml # Print the result
  cat pyproject.toml | pyproject-fmt -  # Format standard input`

func addFormatFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) {
	cmd.Flags().BoolVarP(&cfg.Stdout, "stdout", "s", false, "print the formatted text instead of writing files")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "report files that would change without writing them")
	cmd.Flags().BoolVar(&cfg.NoPrintDiff, "no-print-diff", false, "do not print a diff for changed files")
	cmd.Flags().IntVar(&cfg.ColumnWidth, "column-width", 0, "line width before arrays are expanded (default 1)")
	cmd.Flags().IntVar(&cfg.Indent, "indent", 0, "spaces per indentation level (default 2)")
	cmd.Flags().BoolVar(&cfg.KeepFullVersion, "keep-full-version", false, "keep trailing .0 groups in dependency versions")
	cmd.Flags().StringVar(&flags.maxPython, "max-supported-python", "", "newest Python version for classifiers, e.g. 3.12")
	cmd.Flags().StringVar(&flags.minPython, "min-supported-python", "", "oldest Python version for classifiers, e.g. 3.8")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of files formatted in parallel (0 = auto)")
	cmd.Flags().BoolVar(&cfg.Backup, "backup", false, "keep a copy of each file before rewriting it")
	cmd.Flags().StringVar(&flags.format, "format", "", "report format: text, json")
	cmd.Flags().StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.noPyproject, "no-pyproject-config", false, "ignore [tool.pyproject-fmt] tables")
}

func runFormat(cmd *cobra.Command, args []string, cfg *config.Config, flags *formatFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if cfg.Stdout && cfg.Check {
		return fmt.Errorf("%w: --stdout and --check are mutually exclusive", ErrUsage)
	}

	if len(args) == 0 {
		if isInteractive(cmd.InOrStdin()) {
			return fmt.Errorf("%w: no inputs given; pass a file, a directory or - for standard input", ErrUsage)
		}
		args = []string{runner.StdinName}
	}

	if err := applyStringFlags(cmd, cfg, flags); err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath:    configPath,
		IgnorePyproject: flags.noPyproject,
		CLIConfig:       cfg,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn("configuration", logging.FieldWarning, warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldColumnWidth, finalCfg.ColumnWidth,
		logging.FieldMinPython, finalCfg.MinSupportedPython,
		logging.FieldMaxPython, finalCfg.MaxSupportedPython,
		logging.FieldCheck, finalCfg.Check,
		logging.FieldStdout, finalCfg.Stdout,
		logging.FieldJobs, finalCfg.Jobs,
	)

	result, err := runner.New(nil).Run(ctx, runner.Options{
		Inputs:   args,
		Stdin:    cmd.InOrStdin(),
		Config:   finalCfg,
		Settings: loadResult,
	})
	if err != nil {
		return err
	}

	repOpts := reporter.OptionsFromConfig(finalCfg)
	repOpts.Writer = cmd.OutOrStdout()
	repOpts.ErrorWriter = cmd.ErrOrStderr()
	repOpts.Compact = flags.compact
	repOpts.ShowSummary = len(result.Files) > 1 && !finalCfg.Stdout

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return fmt.Errorf("%w: %w", ErrFormatFailed, errors.Join(result.Errors()...))
	}
	if result.HasChanges() {
		return ErrFilesChanged
	}
	return nil
}

// applyStringFlags copies the explicitly set string flags into cfg.
func applyStringFlags(cmd *cobra.Command, cfg *config.Config, flags *formatFlags) error {
	versions := []struct {
		name   string
		value  string
		target *config.PythonVersion
	}{
		{name: "max-supported-python", value: flags.maxPython, target: &cfg.MaxSupportedPython},
		{name: "min-supported-python", value: flags.minPython, target: &cfg.MinSupportedPython},
	}
	for _, v := range versions {
		if !cmd.Flags().Changed(v.name) {
			continue
		}
		parsed, err := config.ParsePythonVersion(v.value)
		if err != nil {
			return fmt.Errorf("%w: --%s: %w", ErrUsage, v.name, err)
		}
		*v.target = parsed
	}

	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
		if !cfg.Format.IsValid() {
			return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, flags.format)
		}
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = config.ColorMode(flags.color)
		if !cfg.Color.IsValid() {
			return fmt.Errorf("%w: unknown color mode %q; valid modes: auto, always, never", ErrUsage, flags.color)
		}
	}
	return nil
}

// isInteractive reports whether r is a terminal. Readers that are not
// files count as piped input.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

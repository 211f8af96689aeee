// Package main is the entry point for the pyproject-fmt CLI.
package main

import (
	"context"
	"os"

	"github.com/yaklabco/pyprojectfmt/internal/cli"
	"github.com/yaklabco/pyprojectfmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	logger := logging.Default()
	ctx := logging.WithLogger(context.Background(), logger)
	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !cli.IsReported(err) {
		logger.Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}

package cli

import (
	"errors"

	"github.com/yaklabco/pyprojectfmt/internal/configloader"
	"github.com/yaklabco/pyprojectfmt/pkg/fsutil"
	"github.com/yaklabco/pyprojectfmt/pkg/normalize"
	"github.com/yaklabco/pyprojectfmt/pkg/runner"
)

// Exit codes for pyproject-fmt.
const (
	// ExitSuccess indicates every input was already formatted.
	ExitSuccess = 0

	// ExitChanged indicates at least one input was (or would be) reformatted.
	ExitChanged = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates invalid configuration or an unparsable document.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrFilesChanged is returned when at least one input was (or would
	// be) reformatted.
	ErrFilesChanged = errors.New("files changed")

	// ErrFormatFailed is returned when at least one input could not be
	// formatted. The per-file errors have already been reported.
	ErrFormatFailed = errors.New("formatting failed")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrIO marks file system failures outside the formatting run.
	ErrIO = errors.New("i/o error")
)

// ExitCode maps an error returned by the root command to a process exit
// code. When several failures are joined the most severe category wins:
// internal, then I/O, then configuration, then usage.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, normalize.ErrInternal):
		return ExitInternalError
	case errors.Is(err, ErrIO),
		errors.Is(err, runner.ErrRead),
		errors.Is(err, runner.ErrWrite),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	case errors.As(err, &validationErr),
		errors.Is(err, normalize.ErrParse),
		errors.Is(err, normalize.ErrUnsupportedPython):
		return ExitConfigError
	case errors.Is(err, ErrUsage), errors.Is(err, runner.ErrInvalidInput):
		return ExitInvalidUsage
	case errors.Is(err, ErrFilesChanged):
		return ExitChanged
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err was already shown to the user by the
// command itself.
func IsReported(err error) bool {
	return errors.Is(err, ErrFilesChanged) || errors.Is(err, ErrFormatFailed)
}

package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StdinName is the input argument and display name for standard input.
const StdinName = "-"

// DocumentName is the file looked up inside a directory input.
const DocumentName = "pyproject.toml"

// ErrInvalidInput is returned when an input argument does not name a
// readable pyproject.toml file.
var ErrInvalidInput = errors.New("invalid input")

// Input is one document to format.
type Input struct {
	// Path is the absolute file path, empty for standard input.
	Path string

	// Name is the path relative to the working directory when possible,
	// used in diffs and messages.
	Name string
}

// IsStdin reports whether the input is standard input.
func (i Input) IsStdin() bool {
	return i.Path == ""
}

// ResolveInputs maps input arguments to documents in argument order.
// Directories resolve to their pyproject.toml; repeated inputs that name
// the same file are formatted once.
func ResolveInputs(workDir string, args []string) ([]Input, error) {
	workDir, err := resolveWorkDir(workDir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(args))
	inputs := make([]Input, 0, len(args))
	for _, arg := range args {
		if arg == StdinName {
			if _, ok := seen[StdinName]; !ok {
				seen[StdinName] = struct{}{}
				inputs = append(inputs, Input{Name: StdinName})
			}
			continue
		}

		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			path = filepath.Join(path, DocumentName)
			info, err = os.Stat(path)
		}
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: %s: path does not exist", ErrInvalidInput, arg)
		case err != nil:
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, arg, err)
		case !info.Mode().IsRegular():
			return nil, fmt.Errorf("%w: %s: path is not a file", ErrInvalidInput, arg)
		}

		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		inputs = append(inputs, Input{Path: path, Name: displayName(workDir, path)})
	}
	return inputs, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// displayName returns path relative to workDir, or path itself when it lies
// outside workDir.
func displayName(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

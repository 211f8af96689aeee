// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldInputs   = "inputs"
	FieldConfig   = "config"
	FieldWarning  = "warning"
	FieldDuration = "duration"

	// Formatting fields.
	FieldChanged     = "changed"
	FieldBytesIn     = "bytes_in"
	FieldBytesOut    = "bytes_out"
	FieldCheck       = "check"
	FieldStdout      = "stdout"
	FieldJobs        = "jobs"
	FieldColumnWidth = "column_width"
	FieldMinPython   = "min_supported_python"
	FieldMaxPython   = "max_supported_python"

	// Statistics fields.
	FieldFilesProcessed = "files_processed"
	FieldFilesChanged   = "files_changed"
	FieldFilesFailed    = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

package config

import (
	"errors"
	"fmt"
)

// Configuration validation errors returned by Config.Validate.
var (
	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyInputPath is returned when the vocabulary path is empty.
	ErrEmptyInputPath = errors.New("invalid input path: must not be empty")

	// ErrEmptyOutputPath is returned when the report path is empty.
	ErrEmptyOutputPath = errors.New("invalid output path: must not be empty")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)

// UnknownFormatError is returned when the config file names a report format
// other than text, json or markdown.
type UnknownFormatError struct {
	Format string
}

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown report format %q: use %s, %s or %s", e.Format, FormatText, FormatJSON, FormatMarkdown)
}

package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/kanjikit/internal/imaging"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "kanjikit"

	// DefaultInputPath is the vocabulary dataset read by extract when no
	// input is given, relative to the working directory.
	DefaultInputPath = "src/vocabulary/words.json"

	// DefaultOutputPath is the report written by extract when no output is
	// given, relative to the working directory.
	DefaultOutputPath = "kanji_analysis.txt"

	// DefaultTolerance is the channel threshold at or above which a pixel
	// counts as background.
	DefaultTolerance = imaging.DefaultTolerance

	// DefaultConcurrency is the number of images processed at once in batch mode.
	DefaultConcurrency = 4
)

// Config holds all configuration options for kanjikit.
// It is populated from defaults, then the config file, then CLI flags, and
// passed down explicitly rather than kept in global state.
type Config struct {
	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// InputPath is the vocabulary JSON file read by extract.
	InputPath string

	// OutputPath is the report file written by extract.
	OutputPath string

	// JSONReport writes the extract report as JSON.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the extract report as Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Tolerance is the background threshold used by removebg.
	// Values outside 0-255 are accepted as-is: above 255 nothing is
	// background, at or below 0 every pixel is.
	Tolerance int

	// Concurrency is the number of images processed at once in batch mode.
	Concurrency int

	// Strict makes removebg failures exit non-zero.
	Strict bool

	// Record appends a row to the run history database after each run.
	Record bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/kanjikit on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		InputPath:   DefaultInputPath,
		OutputPath:  DefaultOutputPath,
		Tolerance:   DefaultTolerance,
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
	}
}

// ApplyFile overlays the values set in a config file onto c.
// Unset file values leave c unchanged. A nil file is a no-op.
func (c *Config) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}

	if f.Extract.Input != "" {
		c.InputPath = f.Extract.Input
	}
	if f.Extract.Output != "" {
		c.OutputPath = f.Extract.Output
	}
	switch f.Extract.Format {
	case "":
	case FormatText:
		c.JSONReport, c.MarkdownReport = false, false
	case FormatJSON:
		c.JSONReport, c.MarkdownReport = true, false
	case FormatMarkdown:
		c.JSONReport, c.MarkdownReport = false, true
	default:
		return &UnknownFormatError{Format: f.Extract.Format}
	}

	if f.RemoveBG.Tolerance != nil {
		c.Tolerance = *f.RemoveBG.Tolerance
	}
	if f.RemoveBG.Concurrency != 0 {
		c.Concurrency = f.RemoveBG.Concurrency
	}
	if f.RemoveBG.Strict {
		c.Strict = true
	}

	if f.History.Enabled {
		c.Record = true
	}
	if f.History.Dir != "" {
		c.DBDir = f.History.Dir
	}

	return nil
}

// XDGDataDir returns the XDG data directory for kanjikit.
// On Linux: ~/.local/share/kanjikit
// On macOS: ~/Library/Application Support/kanjikit
// On Windows: %LOCALAPPDATA%\kanjikit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for kanjikit.
// On Linux: ~/.config/kanjikit
// On macOS: ~/Library/Application Support/kanjikit
// On Windows: %APPDATA%\kanjikit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.InputPath == "" {
		return ErrEmptyInputPath
	}

	if c.OutputPath == "" {
		return ErrEmptyOutputPath
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}

package config

// Report format names accepted by extract.format in the config file.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// File represents the structure of the .kanjikit configuration file.
type File struct {
	// Extract holds settings for the extract command.
	Extract ExtractSection `yaml:"extract,omitempty"`

	// RemoveBG holds settings for the removebg command.
	RemoveBG RemoveBGSection `yaml:"removebg,omitempty"`

	// History holds run history settings.
	History HistorySection `yaml:"history,omitempty"`
}

// ExtractSection configures the kanji extractor.
type ExtractSection struct {
	// Input is the vocabulary JSON path.
	Input string `yaml:"input,omitempty"`

	// Output is the report path.
	Output string `yaml:"output,omitempty"`

	// Format is one of "text", "json" or "markdown".
	Format string `yaml:"format,omitempty"`
}

// RemoveBGSection configures the background remover.
type RemoveBGSection struct {
	// Tolerance is a pointer so that an explicit 0 can be told apart from unset.
	Tolerance *int `yaml:"tolerance,omitempty"`

	// Concurrency is the batch worker limit.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Strict makes failures exit non-zero.
	Strict bool `yaml:"strict,omitempty"`
}

// HistorySection configures the run history database.
type HistorySection struct {
	// Enabled records every run.
	Enabled bool `yaml:"enabled,omitempty"`

	// Dir overrides the database directory.
	Dir string `yaml:"dir,omitempty"`
}

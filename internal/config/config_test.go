package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default InputPath is src/vocabulary/words.json", func(t *testing.T) {
		t.Parallel()
		if cfg.InputPath != "src/vocabulary/words.json" {
			t.Errorf("expected InputPath to be 'src/vocabulary/words.json', got '%s'", cfg.InputPath)
		}
	})

	t.Run("default OutputPath is kanji_analysis.txt", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputPath != "kanji_analysis.txt" {
			t.Errorf("expected OutputPath to be 'kanji_analysis.txt', got '%s'", cfg.OutputPath)
		}
	})

	t.Run("default Tolerance is 240", func(t *testing.T) {
		t.Parallel()
		if cfg.Tolerance != 240 {
			t.Errorf("expected Tolerance to be 240, got %d", cfg.Tolerance)
		}
	})

	t.Run("default Concurrency is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency to be 4, got %d", cfg.Concurrency)
		}
	})

	t.Run("history is off by default", func(t *testing.T) {
		t.Parallel()
		if cfg.Record {
			t.Error("expected Record to be false")
		}
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir to be %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "json only is valid", modify: func(c *Config) { c.JSONReport = true }},
		{name: "markdown only is valid", modify: func(c *Config) { c.MarkdownReport = true }},
		{
			name:   "json and markdown both enabled returns ErrConflictingReportFormats",
			modify: func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			want:   ErrConflictingReportFormats,
		},
		{name: "empty input returns ErrEmptyInputPath", modify: func(c *Config) { c.InputPath = "" }, want: ErrEmptyInputPath},
		{name: "empty output returns ErrEmptyOutputPath", modify: func(c *Config) { c.OutputPath = "" }, want: ErrEmptyOutputPath},
		{name: "zero concurrency returns ErrInvalidConcurrency", modify: func(c *Config) { c.Concurrency = 0 }, want: ErrInvalidConcurrency},
		{name: "negative concurrency returns ErrInvalidConcurrency", modify: func(c *Config) { c.Concurrency = -1 }, want: ErrInvalidConcurrency},
		{name: "out of range tolerance is accepted", modify: func(c *Config) { c.Tolerance = 300 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestConfigApplyFile tests overlaying config file values onto defaults.
func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("nil file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := cfg.ApplyFile(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *cfg != *NewConfig() {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		t.Parallel()

		tolerance := 200
		cfg := NewConfig()
		err := cfg.ApplyFile(&File{
			Extract:  ExtractSection{Input: "words.json", Output: "out.md", Format: FormatMarkdown},
			RemoveBG: RemoveBGSection{Tolerance: &tolerance, Concurrency: 8, Strict: true},
			History:  HistorySection{Enabled: true, Dir: "/tmp/history"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.InputPath != "words.json" || cfg.OutputPath != "out.md" {
			t.Errorf("unexpected paths: %q %q", cfg.InputPath, cfg.OutputPath)
		}
		if !cfg.MarkdownReport || cfg.JSONReport {
			t.Error("expected markdown format")
		}
		if cfg.Tolerance != 200 || cfg.Concurrency != 8 || !cfg.Strict {
			t.Errorf("unexpected removebg settings: %+v", cfg)
		}
		if !cfg.Record || cfg.DBDir != "/tmp/history" {
			t.Errorf("unexpected history settings: %+v", cfg)
		}
	})

	t.Run("explicit zero tolerance is applied", func(t *testing.T) {
		t.Parallel()

		zero := 0
		cfg := NewConfig()
		if err := cfg.ApplyFile(&File{RemoveBG: RemoveBGSection{Tolerance: &zero}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Tolerance != 0 {
			t.Errorf("expected tolerance 0, got %d", cfg.Tolerance)
		}
	})

	t.Run("unset values keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := cfg.ApplyFile(&File{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Tolerance != DefaultTolerance || cfg.Concurrency != DefaultConcurrency {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("text format clears other formats", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.JSONReport = true
		if err := cfg.ApplyFile(&File{Extract: ExtractSection{Format: FormatText}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.JSONReport || cfg.MarkdownReport {
			t.Error("expected text format")
		}
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := cfg.ApplyFile(&File{Extract: ExtractSection{Format: "html"}})

		var formatErr *UnknownFormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("expected UnknownFormatError, got %v", err)
		}
		if formatErr.Format != "html" {
			t.Errorf("expected format html, got %q", formatErr.Format)
		}
		if !strings.Contains(err.Error(), "markdown") {
			t.Errorf("expected error to list valid formats, got %q", err.Error())
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.kanjikit")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".kanjikit")
		content := `extract:
  input: data/words.json
  output: report.json
  format: json
removebg:
  tolerance: 230
  concurrency: 2
history:
  enabled: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Extract.Input != "data/words.json" {
			t.Errorf("expected input data/words.json, got %q", cfg.Extract.Input)
		}
		if cfg.Extract.Format != FormatJSON {
			t.Errorf("expected json format, got %q", cfg.Extract.Format)
		}
		if cfg.RemoveBG.Tolerance == nil || *cfg.RemoveBG.Tolerance != 230 {
			t.Errorf("expected tolerance 230, got %v", cfg.RemoveBG.Tolerance)
		}
		if cfg.RemoveBG.Concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", cfg.RemoveBG.Concurrency)
		}
		if !cfg.History.Enabled {
			t.Error("expected history enabled")
		}
	})

	t.Run("empty file is valid", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".kanjikit")
		if err := os.WriteFile(configPath, nil, 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.RemoveBG.Tolerance != nil {
			t.Error("expected unset tolerance")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".kanjikit")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for unknown keys", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".kanjikit")
		content := "removebg:\n  tolerence: 200\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for misspelled key")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("extract: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("finds config in current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		configPath := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("extract: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		result := FindConfigFile("")
		if filepath.Base(result) != DefaultConfigFile || filepath.Dir(result) == "" {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir ends with app name", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(XDGDataDir()) != AppName {
			t.Errorf("unexpected data dir %q", XDGDataDir())
		}
	})

	t.Run("XDGConfigDir ends with app name", func(t *testing.T) {
		t.Parallel()
		if filepath.Base(XDGConfigDir()) != AppName {
			t.Errorf("unexpected config dir %q", XDGConfigDir())
		}
	})
}

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/kanjikit/internal/config"
	"github.com/nao1215/kanjikit/internal/kanji"
	"github.com/nao1215/kanjikit/internal/model"
	"github.com/nao1215/kanjikit/internal/report"
	"github.com/nao1215/kanjikit/internal/vocabulary"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Report the unique kanji and compounds of a vocabulary dataset",
		Long: `Extract scans the "japanese" field of every entry in a vocabulary JSON
dataset and writes a report containing:
- the number of unique kanji (U+4E00-U+9FAF)
- those kanji in ascending code-point order
- every compound of two or more consecutive kanji, with the entry's id and
  English gloss, in dataset order

The dataset has the shape {"words": [{"id": 1, "english": "...", "japanese": "..."}]}.
The report is written only when the whole dataset was analyzed, and it
overwrites any previous report.

Examples:
  # Read src/vocabulary/words.json and write kanji_analysis.txt
  kanjikit extract

  # Use other paths
  kanjikit extract -i data/words.json -o build/kanji.txt

  # Write a Markdown report
  kanjikit extract --markdown -o kanji.md

  # Also print the report to stdout
  kanjikit extract --print`,
		Args: cobra.NoArgs,
		RunE: runExtractCmd,
	}

	cmd.Flags().StringP("input", "i", config.DefaultInputPath,
		"Vocabulary JSON file to analyze")
	cmd.Flags().StringP("output", "o", config.DefaultOutputPath,
		"Report file to write (creates directories if needed)")
	cmd.Flags().BoolP("json", "j", false,
		"Write a JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write a Markdown report (mutually exclusive with --json)")
	cmd.Flags().BoolP("print", "p", false,
		"Also print the report to stdout after it was written")

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildExtractConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd, cfg)

	ctx, cancel := withSignalCancel(cmd.Context(), logger)
	defer cancel()

	printReport, err := cmd.Flags().GetBool("print")
	if err != nil {
		return err
	}
	var echo io.Writer
	if printReport {
		echo = cmd.OutOrStdout()
	}

	analysis, err := runExtract(cfg, logger, echo)
	if err != nil {
		return err
	}

	recordRuns(ctx, cfg, logger, model.Run{
		Tool:    model.ToolExtract,
		Input:   cfg.InputPath,
		Output:  cfg.OutputPath,
		Summary: extractSummary(analysis),
	})

	return nil
}

// buildExtractConfig applies the extract flags on top of the shared configuration.
// Flags only override the config file when they were set explicitly.
func buildExtractConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("input") {
		if cfg.InputPath, err = flags.GetString("input"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.OutputPath, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("json") || flags.Changed("markdown") {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return nil, err
		}
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runExtract loads the vocabulary, analyzes it and writes the report.
// Nothing is written when loading or analysis fails. When echo is not nil the
// same report is copied to it once the file was written.
func runExtract(cfg *config.Config, logger *slog.Logger, echo io.Writer) (*model.KanjiAnalysis, error) {
	logger.Debug("loading vocabulary", "input", cfg.InputPath)

	vocab, err := vocabulary.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}

	analysis, err := kanji.Analyze(vocab)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", cfg.InputPath, err)
	}
	analysis.Source = cfg.InputPath

	var buf, echoBuf bytes.Buffer
	w := newReportWriter(cfg, &buf)
	if echo != nil {
		w = report.NewMultiWriter(w, newReportWriter(cfg, &echoBuf))
	}
	if _, err := w.Write(analysis); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	if err := writeReportFile(cfg.OutputPath, buf.Bytes()); err != nil {
		return nil, err
	}
	if echo != nil {
		if _, err := echo.Write(echoBuf.Bytes()); err != nil {
			return nil, fmt.Errorf("failed to print report: %w", err)
		}
	}

	logger.Info("report written",
		"output", cfg.OutputPath,
		"words", len(vocab.Words),
		"unique_kanji", analysis.UniqueCount(),
		"compounds", len(analysis.Compounds),
	)

	return analysis, nil
}

// newReportWriter returns the report writer for the configured format.
func newReportWriter(cfg *config.Config, w io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewTextWriter(w)
	}
}

// writeReportFile creates the parent directories of path and overwrites it with data.
func writeReportFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // Reports are meant to be shared
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// extractSummary describes an analysis in one line for the run history.
func extractSummary(analysis *model.KanjiAnalysis) string {
	return fmt.Sprintf("%d kanji, %d compounds", analysis.UniqueCount(), len(analysis.Compounds))
}

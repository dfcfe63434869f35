package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/kanjikit/internal/batch"
	"github.com/nao1215/kanjikit/internal/config"
	"github.com/nao1215/kanjikit/internal/imaging"
	"github.com/nao1215/kanjikit/internal/model"
)

// Acknowledgment lines printed by removebg.
const (
	successMessage = "Success"
	errorPrefix    = "Error: "
)

// errRemovalFailed is returned in strict mode when at least one image failed.
var errRemovalFailed = errors.New("background removal failed")

// NewRemoveBGCmd creates the removebg command.
func NewRemoveBGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "removebg <input> <output>",
		Short: "Make near-white pixels transparent and crop to the content",
		Long: `Removebg decodes an image (PNG, JPEG, GIF, BMP, TIFF or WebP), replaces every
pixel whose red, green and blue values are all at or above the tolerance
with transparent white, crops the result to the bounding box of the
remaining visible pixels and writes it as PNG.

An image that ends up fully transparent is written uncropped.

On success "Success" is printed; on failure "Error: <message>" is printed
and the exit status stays 0 unless --strict is given.

The tolerance defaults to 240 and can be changed in the config file
(removebg.tolerance).

Examples:
  # Process one image
  kanjikit removebg card.jpg card.png

  # Process many images concurrently into a directory
  kanjikit removebg --out-dir assets/cards raw/*.jpg

  # Fail with a non-zero exit status
  kanjikit removebg --strict card.jpg card.png`,
		Args: removeBGArgs,
		RunE: runRemoveBGCmd,
	}

	cmd.Flags().StringP("out-dir", "d", "",
		"Write <input-name>.png for every input into this directory (batch mode)")
	cmd.Flags().IntP("concurrency", "c", config.DefaultConcurrency,
		"Number of images processed at once in batch mode")
	cmd.Flags().Bool("strict", false,
		"Exit with a non-zero status when an image fails")

	return cmd
}

// removeBGArgs accepts exactly two paths, or one or more inputs with --out-dir.
func removeBGArgs(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	if outDir != "" {
		return cobra.MinimumNArgs(1)(cmd, args)
	}
	return cobra.ExactArgs(2)(cmd, args)
}

// runRemoveBGCmd executes the removebg command.
func runRemoveBGCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildRemoveBGConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Concurrency <= 0 {
		return fmt.Errorf("configuration error: %w", config.ErrInvalidConcurrency)
	}

	logger := newLogger(cmd, cfg)

	ctx, cancel := withSignalCancel(cmd.Context(), logger)
	defer cancel()

	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}

	if outDir != "" {
		return runBatchRemoval(ctx, cmd.OutOrStdout(), cfg, logger, outDir, args)
	}
	return runSingleRemoval(ctx, cmd.OutOrStdout(), cfg, logger, args[0], args[1])
}

// buildRemoveBGConfig applies the removebg flags on top of the shared configuration.
func buildRemoveBGConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("strict") {
		if cfg.Strict, err = flags.GetBool("strict"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runSingleRemoval processes one image and prints the acknowledgment line.
func runSingleRemoval(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger, input, output string) error {
	logger.Debug("removing background", "input", input, "output", output, "tolerance", cfg.Tolerance)

	result, err := imaging.RemoveBackground(input, output, cfg.Tolerance)
	if err != nil {
		fmt.Fprintf(out, "%s%v\n", errorPrefix, err)
		logger.Debug("background removal failed", "input", input, "error", err)
		if cfg.Strict {
			return fmt.Errorf("%w: %w", errRemovalFailed, err)
		}
		return nil
	}

	fmt.Fprintln(out, successMessage)

	logger.Info("background removed",
		"input", input,
		"output", output,
		"format", result.Format,
		"cleared_pixels", result.ClearedPixels,
		"cropped", result.Cropped,
		"exif_tags", result.EXIFTags,
	)

	recordRuns(ctx, cfg, logger, removalRun(result))
	return nil
}

// runBatchRemoval processes every input concurrently into outDir and prints
// one line per input, in input order.
func runBatchRemoval(ctx context.Context, out io.Writer, cfg *config.Config, logger *slog.Logger, outDir string, inputs []string) error {
	jobs, err := batchJobs(outDir, inputs)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0750); err != nil {
		fmt.Fprintf(out, "%s%v\n", errorPrefix, err)
		if cfg.Strict {
			return fmt.Errorf("%w: %w", errRemovalFailed, err)
		}
		return nil
	}

	processor := batch.NewProcessor(cfg.Tolerance,
		batch.WithConcurrency(cfg.Concurrency),
		batch.WithLogger(logger),
	)

	results, err := processor.Process(ctx, jobs)

	var failed int
	runs := make([]model.Run, 0, len(results))
	for i, r := range results {
		if r.Succeeded() {
			fmt.Fprintf(out, "[%d/%d] %s: %s -> %s\n", i+1, len(results), successMessage, r.Input, r.Output)
			runs = append(runs, removalRun(r))
			continue
		}
		failed++
		fmt.Fprintf(out, "[%d/%d] %s%s: %v\n", i+1, len(results), errorPrefix, r.Input, r.Err)
	}

	recordRuns(ctx, cfg, logger, runs...)

	if err != nil {
		return err
	}
	if cfg.Strict && failed > 0 {
		return fmt.Errorf("%w: %d of %d images failed", errRemovalFailed, failed, len(results))
	}
	return nil
}

// batchJobs maps every input to its PNG path inside outDir. Two inputs that
// would write the same file are rejected before anything runs.
func batchJobs(outDir string, inputs []string) ([]batch.Job, error) {
	jobs := make([]batch.Job, 0, len(inputs))
	owners := make(map[string]string, len(inputs))

	for _, input := range inputs {
		output := imaging.OutputPath(outDir, input)
		if prev, ok := owners[output]; ok {
			return nil, fmt.Errorf("inputs %s and %s would both be written to %s", prev, input, output)
		}
		owners[output] = input
		jobs = append(jobs, batch.Job{Input: input, Output: output})
	}

	return jobs, nil
}

// removalRun converts a successful removal into a history row.
func removalRun(r *model.RemovalResult) model.Run {
	summary := fmt.Sprintf("%dx%d -> %dx%d", r.OriginalBounds.Dx(), r.OriginalBounds.Dy(), r.Bounds.Dx(), r.Bounds.Dy())
	if r.EXIFTags > 0 {
		summary += fmt.Sprintf(", %d EXIF tags dropped", r.EXIFTags)
	}
	return model.Run{
		Tool:    model.ToolRemoveBG,
		Input:   r.Input,
		Output:  r.Output,
		Summary: summary,
	}
}

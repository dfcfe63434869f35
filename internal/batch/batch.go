package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/kanjikit/internal/imaging"
	"github.com/nao1215/kanjikit/internal/model"
)

// DefaultConcurrency is the number of removals run at once when no
// WithConcurrency option is given.
const DefaultConcurrency = 4

// Job is one input/output pair.
type Job struct {
	// Input is the image to read.
	Input string

	// Output is the PNG path to write.
	Output string
}

// RemoveFunc performs a single background removal.
type RemoveFunc func(ctx context.Context, job Job) (*model.RemovalResult, error)

// Processor handles concurrent background removal of multiple images.
type Processor struct {
	// remove performs one removal.
	remove RemoveFunc

	// concurrency is the maximum number of concurrent removals.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a custom logger for batch processing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent removals.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithRemoveFunc replaces the function used for each removal.
func WithRemoveFunc(fn RemoveFunc) Option {
	return func(p *Processor) {
		if fn != nil {
			p.remove = fn
		}
	}
}

// NewProcessor creates a Processor that removes backgrounds with the given
// tolerance.
func NewProcessor(tolerance int, opts ...Option) *Processor {
	p := &Processor{
		remove: func(_ context.Context, job Job) (*model.RemovalResult, error) {
			return imaging.RemoveBackground(job.Input, job.Output, tolerance)
		},
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Process runs every job and returns one result per job, in job order.
// Failed jobs have their error in RemovalResult.Err.
//
// The returned error is non-nil only when ctx was cancelled; jobs that never
// started then carry the context error in their result.
func (p *Processor) Process(ctx context.Context, jobs []Job) ([]*model.RemovalResult, error) {
	results := make([]*model.RemovalResult, len(jobs))

	err := p.ProcessWithCallback(ctx, jobs, func(result *model.RemovalResult, index int) {
		results[index] = result
	})

	for i, r := range results {
		if r == nil {
			results[i] = &model.RemovalResult{
				Input:  jobs[i].Input,
				Output: jobs[i].Output,
				Err:    context.Cause(ctx),
			}
		}
	}

	return results, err
}

// ProcessWithCallback runs every job and calls callback once per finished
// job with its result and index. The callback is called from the worker
// goroutine, so it must be safe for concurrent use unless it only touches
// state owned by that index.
func (p *Processor) ProcessWithCallback(
	ctx context.Context,
	jobs []Job,
	callback func(result *model.RemovalResult, index int),
) error {
	p.logger.Info("starting batch background removal",
		"total_images", len(jobs),
		"concurrency", p.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			p.logger.Debug("removing background",
				"input", job.Input,
				"index", i+1,
				"total", len(jobs),
			)

			result, err := p.remove(ctx, job)
			if err != nil {
				p.logger.Warn("background removal failed",
					"input", job.Input,
					"error", err,
				)
				result = &model.RemovalResult{
					Input:  job.Input,
					Output: job.Output,
					Err:    err,
				}
			} else {
				p.logger.Debug("background removed",
					"input", job.Input,
					"cleared_pixels", result.ClearedPixels,
					"exif_tags", result.EXIFTags,
				)
			}

			callback(result, i)
			return nil
		})
	}

	err := g.Wait()

	p.logger.Info("batch background removal complete",
		"total_images", len(jobs),
		"elapsed", time.Since(startTime),
	)

	return err
}

package batch

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/kanjikit/internal/model"
)

// okRemover returns a successful result for every job.
func okRemover(_ context.Context, job Job) (*model.RemovalResult, error) {
	return &model.RemovalResult{Input: job.Input, Output: job.Output}, nil
}

// TestNewProcessor tests the Processor constructor.
func TestNewProcessor(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		p := NewProcessor(240)

		if p == nil {
			t.Fatal("expected non-nil processor")
		}
		if p.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, p.concurrency)
		}
		if p.remove == nil {
			t.Error("expected default remove func")
		}
		if p.logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		p := NewProcessor(240, WithConcurrency(2))
		if p.concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", p.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		p := NewProcessor(240, WithConcurrency(0), WithConcurrency(-3))
		if p.concurrency != DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, p.concurrency)
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		p := NewProcessor(240, WithLogger(nil))
		if p.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestProcessorProcess tests batch processing with a stub remover.
func TestProcessorProcess(t *testing.T) {
	t.Parallel()

	t.Run("processes all jobs in order", func(t *testing.T) {
		t.Parallel()

		jobs := []Job{
			{Input: "a.jpg", Output: "out/a.png"},
			{Input: "b.jpg", Output: "out/b.png"},
			{Input: "c.jpg", Output: "out/c.png"},
			{Input: "d.jpg", Output: "out/d.png"},
			{Input: "e.jpg", Output: "out/e.png"},
		}

		delayed := func(ctx context.Context, job Job) (*model.RemovalResult, error) {
			// The first job finishes last.
			if job.Input == "a.jpg" {
				time.Sleep(20 * time.Millisecond)
			}
			return okRemover(ctx, job)
		}

		p := NewProcessor(240, WithRemoveFunc(delayed), WithConcurrency(5))
		results, err := p.Process(context.Background(), jobs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(jobs) {
			t.Fatalf("expected %d results, got %d", len(jobs), len(results))
		}
		for i, r := range results {
			if r.Input != jobs[i].Input {
				t.Errorf("result %d: expected input %q, got %q", i, jobs[i].Input, r.Input)
			}
			if !r.Succeeded() {
				t.Errorf("result %d: unexpected error %v", i, r.Err)
			}
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		limited := func(ctx context.Context, job Job) (*model.RemovalResult, error) {
			n := current.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			current.Add(-1)
			return okRemover(ctx, job)
		}

		jobs := make([]Job, 12)
		for i := range jobs {
			jobs[i] = Job{Input: "in.png", Output: "out.png"}
		}

		p := NewProcessor(240, WithRemoveFunc(limited), WithConcurrency(3))
		if _, err := p.Process(context.Background(), jobs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := peak.Load(); got > 3 {
			t.Errorf("expected at most 3 concurrent removals, got %d", got)
		}
	})

	t.Run("failure does not stop other jobs", func(t *testing.T) {
		t.Parallel()

		errBroken := errors.New("broken image")
		flaky := func(ctx context.Context, job Job) (*model.RemovalResult, error) {
			if job.Input == "bad.jpg" {
				return nil, errBroken
			}
			return okRemover(ctx, job)
		}

		jobs := []Job{
			{Input: "good1.jpg", Output: "good1.png"},
			{Input: "bad.jpg", Output: "bad.png"},
			{Input: "good2.jpg", Output: "good2.png"},
		}

		p := NewProcessor(240, WithRemoveFunc(flaky))
		results, err := p.Process(context.Background(), jobs)
		if err != nil {
			t.Fatalf("per-job failures must not be returned, got %v", err)
		}
		if !results[0].Succeeded() || !results[2].Succeeded() {
			t.Error("expected good jobs to succeed")
		}
		if !errors.Is(results[1].Err, errBroken) {
			t.Errorf("expected errBroken, got %v", results[1].Err)
		}
		if results[1].Input != "bad.jpg" || results[1].Output != "bad.png" {
			t.Errorf("failed result lost its paths: %+v", results[1])
		}
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls atomic.Int32
		counting := func(ctx context.Context, job Job) (*model.RemovalResult, error) {
			calls.Add(1)
			return okRemover(ctx, job)
		}

		jobs := []Job{{Input: "a.jpg"}, {Input: "b.jpg"}}
		p := NewProcessor(240, WithRemoveFunc(counting))
		results, err := p.Process(ctx, jobs)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if calls.Load() != 0 {
			t.Errorf("expected no removals, got %d", calls.Load())
		}
		for i, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("result %d: expected context.Canceled, got %v", i, r.Err)
			}
		}
	})

	t.Run("empty job list", func(t *testing.T) {
		t.Parallel()

		p := NewProcessor(240, WithRemoveFunc(okRemover))
		results, err := p.Process(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})
}

// TestProcessorProcessWithCallback tests the callback variant.
func TestProcessorProcessWithCallback(t *testing.T) {
	t.Parallel()

	jobs := []Job{{Input: "a.jpg"}, {Input: "b.jpg"}, {Input: "c.jpg"}}

	var mu sync.Mutex
	seen := make(map[int]string)

	p := NewProcessor(240, WithRemoveFunc(okRemover))
	err := p.ProcessWithCallback(context.Background(), jobs, func(result *model.RemovalResult, index int) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = result.Input
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != len(jobs) {
		t.Fatalf("expected %d callbacks, got %d", len(jobs), len(seen))
	}
	for i, job := range jobs {
		if seen[i] != job.Input {
			t.Errorf("index %d: expected %q, got %q", i, job.Input, seen[i])
		}
	}
}

// TestProcessorProcessImages runs the default remover against real files.
func TestProcessorProcessImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	img.SetNRGBA(1, 1, color.NRGBA{A: 255})
	img.SetNRGBA(2, 2, color.NRGBA{A: 255})

	good := filepath.Join(dir, "good.png")
	f, err := os.Create(good)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	jobs := []Job{
		{Input: good, Output: filepath.Join(dir, "good-out.png")},
		{Input: filepath.Join(dir, "missing.png"), Output: filepath.Join(dir, "missing-out.png")},
	}

	results, err := NewProcessor(240).Process(context.Background(), jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !results[0].Succeeded() {
		t.Fatalf("expected success, got %v", results[0].Err)
	}
	if got := results[0].Bounds; got.Dx() != 2 || got.Dy() != 2 {
		t.Errorf("expected 2x2 crop, got %v", got)
	}
	if _, err := os.Stat(jobs[0].Output); err != nil {
		t.Errorf("expected output file: %v", err)
	}

	if results[1].Succeeded() {
		t.Error("expected missing input to fail")
	}
	if _, err := os.Stat(jobs[1].Output); !os.IsNotExist(err) {
		t.Error("failed job must not create an output file")
	}
}

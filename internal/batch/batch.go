// Package batch parses many receipt images concurrently with a bounded
// worker pool and aggregates the per-file outcomes.
package batch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/MeKo-Tech/receiptly/internal/pipeline"
)

// Config holds batch processing settings.
type Config struct {
	// Pipeline configures the parsing pipeline shared by all workers.
	Pipeline pipeline.Config

	// Workers bounds parse concurrency. Zero means GOMAXPROCS.
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// DefaultConfig returns batch defaults around the default pipeline.
func DefaultConfig() Config {
	return Config{
		Pipeline: pipeline.DefaultConfig(),
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// Entry is the outcome for one input file.
type Entry struct {
	Path   string          `json:"path" yaml:"path"`
	Result pipeline.Result `json:"result" yaml:"result"`
}

// Result aggregates a whole batch run.
type Result struct {
	Entries     []Entry       `json:"entries" yaml:"entries"`
	Failed      int           `json:"failed" yaml:"failed"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration_ns"`
	WorkerCount int           `json:"worker_count" yaml:"worker_count"`
}

// Process discovers receipt images under the given paths and parses them
// concurrently. Entries preserve the discovery order regardless of which
// worker finished first.
func Process(ctx context.Context, paths []string, config Config) (*Result, error) {
	files, err := discoverReceiptFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover receipt images: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no receipt images found")
	}

	pl, err := pipeline.NewBuilder().
		WithPreprocessing(config.Pipeline.Preprocess).
		WithRecognizerBinary(config.Pipeline.Recognizer.Binary).
		WithRecognizerLanguage(config.Pipeline.Recognizer.Language).
		WithRecognizerPSM(config.Pipeline.Recognizer.PSM).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	start := time.Now()
	entries := parseParallel(ctx, pl, files, workers)

	res := &Result{
		Entries:     entries,
		Duration:    time.Since(start),
		WorkerCount: workers,
	}
	for _, e := range entries {
		if !e.Result.Success {
			res.Failed++
		}
	}
	return res, nil
}

// parseParallel fans file indices out to workers and collects results in
// input order.
func parseParallel(ctx context.Context, pl *pipeline.Pipeline, files []string, workers int) []Entry {
	entries := make([]Entry, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = Entry{Path: files[i], Result: parseFile(ctx, pl, files[i])}
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(files); next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	// Files never handed to a worker fail with the cancellation cause.
	for i := next; i < len(files); i++ {
		entries[i] = Entry{Path: files[i], Result: pipeline.Result{
			Success: false,
			Error:   ctx.Err().Error(),
			Err:     ctx.Err(),
		}}
	}
	return entries
}

func parseFile(ctx context.Context, pl *pipeline.Pipeline, path string) pipeline.Result {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from CLI args
	if err != nil {
		return pipeline.Result{Success: false, Error: err.Error(), Err: err}
	}
	return pl.Parse(ctx, data, http.DetectContentType(data))
}

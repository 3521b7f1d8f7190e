package gospdx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/gospdx/gospdx/internal/types"
)

// ErrNoSources is returned when LoadAll is called without a source.
var ErrNoSources = errors.New("no SPDX document sources provided")

// Result is the outcome of reading one document in a batch.
type Result struct {
	Path     string
	Document *Document
	Err      error
}

// LoadAll reads every document listed by source in parallel. Each read is
// independent; a failed document records its error in its Result and does
// not stop the others. Results are in the order source lists them.
// Cancelling ctx stops documents that have not started and returns
// ctx.Err().
//
// Example:
//
//	results, err := gospdx.LoadAll(ctx, gospdx.MustDirTree("./sboms"),
//	    gospdx.WithLogger(slog.Default()),
//	)
func LoadAll(ctx context.Context, source Source, opts ...Option) ([]Result, error) {
	if source == nil {
		return nil, ErrNoSources
	}
	cfg := newConfig(opts)
	logger := types.Logger{L: cfg.logger}

	files, err := source.ListFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	logger.Log(slog.LevelInfo, "parallel loading", slog.Int("files", len(files)))

	results := make([]Result, len(files))
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	for i, file := range files {
		results[i].Path = file
		wg.Add(1)
		go func(r *Result) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			r.Document, r.Err = loadOne(source, r.Path, opts)
			if r.Err != nil {
				logger.Log(slog.LevelDebug, "document failed",
					slog.String("path", r.Path), slog.Any("error", r.Err))
			}
		}(&results[i])
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Log(slog.LevelInfo, "parallel loading complete",
		slog.Int("documents", len(results)-failed),
		slog.Int("failed", failed))
	return results, nil
}

func loadOne(source Source, path string, opts []Option) (*Document, error) {
	format := FormatOf(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	rc, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only
	return Read(rc, format, opts...)
}

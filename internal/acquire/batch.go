// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

// PaperFetcher downloads one paper. *Fetcher implements it.
type PaperFetcher interface {
	Fetch(ctx context.Context, paper types.Paper, targetDir, customName string) (path string, skipped bool, err error)
}

// Failure records a paper that could not be fetched.
type Failure struct {
	Paper types.Paper
	Err   error
}

// BatchResult holds the outcome of a batch download.
type BatchResult struct {
	// Paths lists every file now on disk for the batch, downloaded or
	// already present, in input order.
	Paths []string

	Downloaded int
	Skipped    int
	Failed     int
	Failures   []Failure

	// Interrupted is set when the context ended before every paper was tried.
	Interrupted bool
}

// Total returns the number of papers processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any papers failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Batch downloads a list of papers one at a time into Dir.
type Batch struct {
	Fetcher PaperFetcher
	Dir     string

	// Out receives the per-paper progress line. Nil discards it.
	Out io.Writer

	Logger *slog.Logger
}

func (b *Batch) log() *slog.Logger {
	if b.Logger == nil {
		return discardLogger
	}
	return b.Logger
}

// FetchAll downloads papers in order, truncated to limit when limit > 0.
// A failed paper is logged and counted; it never stops the batch. After
// each paper a "Progress: i/total" line is written to Out.
func (b *Batch) FetchAll(ctx context.Context, papers []types.Paper, limit int) BatchResult {
	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}
	out := b.Out
	if out == nil {
		out = io.Discard
	}

	var result BatchResult
	total := len(papers)
	b.log().Info("starting downloads", "papers", total, "dir", b.Dir)

	for i, p := range papers {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}
		b.log().Debug("fetching paper", "index", i+1, "total", total, "paper", p.ID)

		path, skipped, err := b.Fetcher.Fetch(ctx, p, b.Dir, "")
		switch {
		case err != nil && ctx.Err() != nil:
			result.Interrupted = true
		case err != nil:
			b.log().Warn("skipping paper", "paper", p.ID, "error", err)
			result.Failed++
			result.Failures = append(result.Failures, Failure{Paper: p, Err: err})
		case skipped:
			result.Skipped++
			result.Paths = append(result.Paths, path)
		default:
			result.Downloaded++
			result.Paths = append(result.Paths, path)
		}
		if result.Interrupted {
			break
		}

		fmt.Fprintf(out, "Progress: %d/%d papers processed\n", i+1, total)
	}

	b.log().Info("downloads complete",
		"downloaded", result.Downloaded, "skipped", result.Skipped, "failed", result.Failed)
	return result
}

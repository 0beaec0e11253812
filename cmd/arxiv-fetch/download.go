// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
	"github.com/pdiddy/arxiv-fetch/internal/output"
	"github.com/pdiddy/arxiv-fetch/internal/search"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

func newSearchClient() *search.Client {
	c := search.NewClient(cfg.Search, logger.With("component", "search"))
	c.Delay = cfg.Search.RequestDelay
	return c
}

func newFetcher(cmd *cobra.Command) *acquire.Fetcher {
	f := acquire.NewFetcher(cfg.Download, logger.With("component", "acquire"))
	f.Delay = cfg.Download.RequestDelay
	f.Progress = output.NewProgress(cmd.ErrOrStderr(), printer.Colors()).Func()
	return f
}

// confirmDownload asks before downloading unless yes is set.
func confirmDownload(cmd *cobra.Command, yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	return newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm(cmd.Context(), "\n"+question)
}

// downloadPapers runs a batch into the folder for topic and prints the
// summary. An interrupted batch returns context.Canceled.
func downloadPapers(cmd *cobra.Command, papers []types.Paper, topic string, limit int) error {
	dir := acquire.TopicDir(cfg.Download.Dir, topic)
	batch := &acquire.Batch{
		Fetcher: newFetcher(cmd),
		Dir:     dir,
		Out:     printer.Out(),
		Logger:  logger.With("component", "batch"),
	}

	printer.Info("\nStarting downloads...")
	res := batch.FetchAll(cmd.Context(), papers, limit)
	reportBatch(res, dir)

	if res.Interrupted {
		return fmt.Errorf("download stopped after %d of %d papers: %w", res.Total(), downloadCount(len(papers), limit), context.Canceled)
	}
	return nil
}

// downloadCount is the number of papers a batch of n works through when
// capped at limit. A limit of zero or less means no cap.
func downloadCount(n, limit int) int {
	if limit > 0 {
		return min(n, limit)
	}
	return n
}

func reportBatch(res acquire.BatchResult, dir string) {
	printer.Block(acquire.DownloadSummary(res.Paths, dir))
	if res.HasFailures() {
		printer.Warning("%d paper(s) could not be downloaded", res.Failed)
		for _, f := range res.Failures {
			printer.Warning("  %s: %v", f.Paper.ID, f.Err)
		}
	}
	if len(res.Paths) > 0 {
		printer.Success("Download completed successfully!")
	} else {
		printer.Print("No papers were downloaded.")
	}
}

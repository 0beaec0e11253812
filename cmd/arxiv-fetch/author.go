// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
	"github.com/pdiddy/arxiv-fetch/internal/search"
)

const authorTopicPrefix = "author_"

var authorCmd = &cobra.Command{
	Use:   "search-by-author NAME",
	Short: "Find and download papers by an author",
	Long: `Search-by-author lists papers whose author field matches NAME and
downloads them into a folder named author_<name> after confirmation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthor,
}

func init() {
	authorCmd.Flags().IntP("max-results", "n", 0, "maximum number of papers to find (default 10)")
	authorCmd.Flags().StringP("download-dir", "d", "", "directory to download papers into (default ./downloads)")
	authorCmd.Flags().BoolP("preview-only", "p", false, "only preview results without downloading")
	authorCmd.Flags().BoolP("yes", "y", false, "download without asking for confirmation")
	authorCmd.Flags().String("save", "", "write results to a YAML file")

	rootCmd.AddCommand(authorCmd)
}

func runAuthor(cmd *cobra.Command, args []string) error {
	name := args[0]
	preview, _ := cmd.Flags().GetBool("preview-only")
	yes, _ := cmd.Flags().GetBool("yes")
	savePath, _ := cmd.Flags().GetString("save")

	printer.Info("Searching papers by author: %s", name)
	papers, err := newSearchClient().SearchByAuthor(cmd.Context(), name, cfg.Search.MaxResults)
	if err != nil {
		return err
	}

	if savePath != "" {
		params := search.RequestParams{Author: name, MaxResults: cfg.Search.MaxResults}
		if err := search.WriteResultFile(savePath, params, papers); err != nil {
			return err
		}
		printer.Success("Saved %d results to %s", len(papers), savePath)
	}

	if len(papers) == 0 {
		printer.Print("No papers found for author '%s'.", name)
		return nil
	}

	printer.Block(acquire.PreviewSummary(papers))
	if preview {
		printer.Print("Preview mode - no papers downloaded.")
		return nil
	}

	ok, err := confirmDownload(cmd, yes, fmt.Sprintf("Download %d papers?", len(papers)))
	if err != nil {
		return err
	}
	if !ok {
		printer.Print("Download cancelled.")
		return nil
	}
	return downloadPapers(cmd, papers, authorTopicPrefix+name, 0)
}

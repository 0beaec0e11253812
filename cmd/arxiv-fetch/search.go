// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
	"github.com/pdiddy/arxiv-fetch/internal/search"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search arXiv and download the matching papers",
	Long: `Search matches QUERY against paper titles and abstracts, optionally
restricted to categories, and previews the results. Unless --preview-only is
set, the papers are downloaded into a folder named after the query once you
confirm (or immediately with --yes).

Use --save to write the results to a YAML file and --from-file to download
from such a file later without searching again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntP("max-results", "n", 0, "maximum number of papers to find (default 10)")
	searchCmd.Flags().StringP("download-dir", "d", "", "directory to download papers into (default ./downloads)")
	searchCmd.Flags().StringSliceP("categories", "c", nil, "arXiv categories to search in, repeatable (e.g. -c cs.AI -c cs.LG)")
	searchCmd.Flags().String("sort-by", "", "sort by relevance, lastUpdatedDate, or submittedDate")
	searchCmd.Flags().String("sort-order", "", "ascending or descending")
	searchCmd.Flags().BoolP("preview-only", "p", false, "only preview results without downloading")
	searchCmd.Flags().BoolP("yes", "y", false, "download without asking for confirmation")
	searchCmd.Flags().Int("recent-days", 0, "only keep papers submitted in the last N days")
	searchCmd.Flags().Bool("json", false, "print results as JSON instead of downloading")
	searchCmd.Flags().String("save", "", "write results to a YAML file")
	searchCmd.Flags().String("from-file", "", "load results from a file written by --save instead of searching")
	searchCmd.Flags().Int("limit", 0, "download at most N of the results")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	categories, _ := cmd.Flags().GetStringSlice("categories")
	preview, _ := cmd.Flags().GetBool("preview-only")
	yes, _ := cmd.Flags().GetBool("yes")
	recentDays, _ := cmd.Flags().GetInt("recent-days")
	asJSON, _ := cmd.Flags().GetBool("json")
	savePath, _ := cmd.Flags().GetString("save")
	fromFile, _ := cmd.Flags().GetString("from-file")
	limit, _ := cmd.Flags().GetInt("limit")

	var (
		query  string
		papers []types.Paper
		err    error
	)
	switch {
	case fromFile != "":
		query, papers, err = loadResults(fromFile)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			query = args[0]
		}
	case len(args) == 1:
		query = args[0]
		papers, err = searchPapers(cmd, query, categories, recentDays)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("provide a search query or --from-file")
	}

	if savePath != "" {
		params := search.RequestParams{
			Query:      query,
			Categories: categories,
			MaxResults: cfg.Search.MaxResults,
			SortBy:     string(cfg.Search.SortBy),
			SortOrder:  string(cfg.Search.SortOrder),
			RecentDays: recentDays,
		}
		if err := search.WriteResultFile(savePath, params, papers); err != nil {
			return err
		}
		printer.Success("Saved %d results to %s", len(papers), savePath)
	}

	if asJSON {
		return search.FormatJSON(papers, printer.Out())
	}

	if len(papers) == 0 {
		printer.Print("No papers found matching your query.")
		return nil
	}

	printer.Block(acquire.PreviewSummary(papers))
	if preview {
		printer.Print("Preview mode - no papers downloaded.")
		return nil
	}

	ok, err := confirmDownload(cmd, yes, fmt.Sprintf("Download %d papers?", downloadCount(len(papers), limit)))
	if err != nil {
		return err
	}
	if !ok {
		printer.Print("Download cancelled.")
		return nil
	}
	return downloadPapers(cmd, papers, query, limit)
}

func searchPapers(cmd *cobra.Command, query string, categories []string, recentDays int) ([]types.Paper, error) {
	printer.Info("Searching arXiv for: '%s'", query)
	if len(categories) > 0 {
		printer.Info("Categories: %s", strings.Join(categories, ", "))
	}
	valid, invalid := search.SplitCategories(categories)
	if len(invalid) > 0 {
		printer.Warning("Invalid categories: %s", strings.Join(invalid, ", "))
	}

	client := newSearchClient()
	if recentDays > 0 {
		printer.Info("Filtering for papers from last %d days", recentDays)
		if ignored := ignoredWithRecent(cmd); len(ignored) > 0 {
			printer.Warning("%s ignored with --recent-days; results are sorted by submission date", strings.Join(ignored, ", "))
		}
		return client.SearchRecent(cmd.Context(), query, recentDays, cfg.Search.MaxResults)
	}
	return client.Search(cmd.Context(), types.SearchRequest{
		Query:      query,
		MaxResults: cfg.Search.MaxResults,
		SortBy:     cfg.Search.SortBy,
		SortOrder:  cfg.Search.SortOrder,
		Categories: valid,
	})
}

// ignoredWithRecent lists the set flags that a --recent-days search does
// not apply.
func ignoredWithRecent(cmd *cobra.Command) []string {
	var ignored []string
	for _, name := range []string{"categories", "sort-by", "sort-order"} {
		if cmd.Flags().Changed(name) {
			ignored = append(ignored, "--"+name)
		}
	}
	return ignored
}

// loadResults reads a saved result file and returns its query and papers.
func loadResults(path string) (string, []types.Paper, error) {
	rf, err := search.ReadResultFile(path)
	if err != nil {
		return "", nil, err
	}
	query := rf.Request.Query
	if query == "" && rf.Request.Author != "" {
		query = authorTopicPrefix + rf.Request.Author
	}
	printer.Info("Loaded %d results from %s", len(rf.Results), path)
	return query, rf.Results, nil
}

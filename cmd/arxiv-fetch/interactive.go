// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
	"github.com/pdiddy/arxiv-fetch/internal/session"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Search and pick papers to download in a prompt loop",
	Long: `Interactive runs a search, lists the results, and asks which papers to
download: all, none, a list of numbers such as 1,3,5, or new for another
query. Papers go into a folder named interactive_<query>. Press Ctrl-C to
leave at any prompt.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	interactiveCmd.Flags().StringP("query", "q", "", "initial search query (prompted when empty)")
	interactiveCmd.Flags().IntP("max-results", "n", 0, "maximum number of papers per search (default 10)")
	interactiveCmd.Flags().StringP("download-dir", "d", "", "directory to download papers into (default ./downloads)")

	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	err := interactiveLoop(cmd)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		printer.Print("\nGoodbye!")
		return nil
	case errors.Is(err, context.Canceled):
		printer.Print("\n\nGoodbye!")
		return nil
	default:
		return err
	}
}

func interactiveLoop(cmd *cobra.Command) error {
	ctx := cmd.Context()
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	m := &session.Machine{
		Searcher: newSearchClient(),
		Downloader: &session.BatchDownloader{
			Fetcher: newFetcher(cmd),
			Out:     printer.Out(),
			Logger:  logger.With("component", "batch"),
		},
		MaxResults: cfg.Search.MaxResults,
		Root:       cfg.Download.Dir,
		Logger:     logger.With("component", "session"),
	}

	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		var err error
		if query, err = askQuery(ctx, p, "Search query"); err != nil {
			return err
		}
	}

	var state session.State
	for !state.Done {
		printer.Info("\nSearching for: '%s'", query)
		next, _, err := m.Step(ctx, state, session.NewSearch{Query: query})
		if err != nil {
			return err
		}
		state = next

		if len(state.Results) == 0 {
			printer.Print("No papers found.")
			again, err := p.Confirm(ctx, "Try a different search?")
			if err != nil {
				return err
			}
			if !again {
				break
			}
			if query, err = askQuery(ctx, p, "Enter new search query"); err != nil {
				return err
			}
			continue
		}

		listResults(state.Results)

		choice, err := p.Ask(ctx, "What would you like to do?", "none")
		if err != nil {
			return err
		}
		_, out, err := m.Step(ctx, state, session.SelectAndDownload{Selection: choice})
		switch {
		case errors.Is(err, session.ErrInvalidChoice):
			printer.Warning("Invalid format. Use numbers separated by commas (e.g., '1,3,5')")
		case errors.Is(err, session.ErrNoSelection):
			printer.Warning("Invalid paper numbers.")
		case err != nil:
			return err
		case out.WantsQuery:
			if query, err = askQuery(ctx, p, "Enter new search query"); err != nil {
				return err
			}
			continue
		case out.Download != nil:
			reportBatch(*out.Download, out.Dir)
			if out.Download.Interrupted {
				return context.Canceled
			}
		default:
			printer.Print("No downloads.")
		}

		more, err := p.Confirm(ctx, "\nContinue searching?")
		if err != nil {
			return err
		}
		if !more {
			state, _, _ = m.Step(ctx, state, session.Exit{})
		}
	}
	return nil
}

func askQuery(ctx context.Context, p *prompter, label string) (string, error) {
	for {
		q, err := p.Ask(ctx, label, "")
		if err != nil {
			return "", err
		}
		if q != "" {
			return q, nil
		}
	}
}

func listResults(papers []types.Paper) {
	printer.Print("\nFound %d papers:", len(papers))
	for i, paper := range papers {
		printer.Print("\n%d. %s", i+1, printer.Bold(paper.Title))
		printer.Print("   Authors: %s", acquire.FormatAuthors(paper.Authors, 2))
		printer.Print("   ID: %s | Published: %s", paper.ID, paper.Published.Format("2006-01-02"))
	}

	printer.Print("\nOptions:")
	printer.Print("  'all' - Download all papers")
	printer.Print("  '1,3,5' - Download specific papers by number")
	printer.Print("  'none' - Don't download anything")
	printer.Print("  'new' - New search")
}

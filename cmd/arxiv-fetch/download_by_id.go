// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
	"github.com/pdiddy/arxiv-fetch/internal/search"
)

var downloadByIDCmd = &cobra.Command{
	Use:   "download-by-id ARXIV_ID",
	Short: "Download a single paper by its arXiv ID",
	Long: `Download-by-id looks up one paper (e.g. 2301.07041 or 2301.07041v2),
shows its details, and saves the PDF into a folder named paper_<id>.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownloadByID,
}

func init() {
	downloadByIDCmd.Flags().StringP("download-dir", "d", "", "directory to download the paper into (default ./downloads)")
	downloadByIDCmd.Flags().StringP("filename", "f", "", "custom filename for the download, without extension")
	downloadByIDCmd.Flags().BoolP("yes", "y", false, "download without asking for confirmation")

	rootCmd.AddCommand(downloadByIDCmd)
}

func runDownloadByID(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	filename, _ := cmd.Flags().GetString("filename")
	yes, _ := cmd.Flags().GetBool("yes")

	printer.Info("Looking up arXiv paper: %s", id)
	paper, err := newSearchClient().GetByID(cmd.Context(), id)
	if errors.Is(err, search.ErrNotFound) {
		printer.Print("Paper with ID '%s' not found.", id)
		return nil
	}
	if err != nil {
		return err
	}

	printer.Print("\nFound paper:")
	printer.Print("   Title: %s", paper.Title)
	printer.Print("   Authors: %s", strings.Join(paper.Authors, ", "))
	printer.Print("   Published: %s", paper.Published.Format("2006-01-02"))
	printer.Print("   Categories: %s", strings.Join(paper.Categories, ", "))

	ok, err := confirmDownload(cmd, yes, "Download this paper?")
	if err != nil {
		return err
	}
	if !ok {
		printer.Print("Download cancelled.")
		return nil
	}

	printer.Info("\nStarting download...")
	dir := acquire.TopicDir(cfg.Download.Dir, "paper_"+id)
	path, skipped, err := newFetcher(cmd).Fetch(cmd.Context(), paper, dir, filename)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if skipped {
		printer.Success("Already downloaded: %s", path)
		return nil
	}
	printer.Success("Downloaded successfully: %s", path)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

const (
	dateFmt        = "2006-01-02"
	maxListAuthors = 3
)

var (
	heavyRule = strings.Repeat("=", 50)
	lightRule = strings.Repeat("-", 50)
)

// PreviewSummary lists papers before download: title, up to three
// authors, ID, publish date, and categories.
func PreviewSummary(papers []types.Paper) string {
	if len(papers) == 0 {
		return "No papers found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nFound %d papers:\n", len(papers))
	b.WriteString(heavyRule + "\n")
	for i, p := range papers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "   Authors: %s\n", FormatAuthors(p.Authors, maxListAuthors))
		fmt.Fprintf(&b, "   arXiv ID: %s\n", p.ID)
		fmt.Fprintf(&b, "   Published: %s\n", p.Published.Format(dateFmt))
		fmt.Fprintf(&b, "   Categories: %s\n", strings.Join(p.Categories, ", "))
		b.WriteString(lightRule + "\n")
	}
	return b.String()
}

// DownloadSummary lists downloaded files with their size in MB and the
// directory they were saved to.
func DownloadSummary(paths []string, dir string) string {
	if len(paths) == 0 {
		return "No files were downloaded."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nSuccessfully downloaded %d papers:\n", len(paths))
	b.WriteString(heavyRule + "\n")
	for i, path := range paths {
		name := filepath.Base(path)
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(&b, "%d. %s (size unknown)\n", i+1, name)
			continue
		}
		fmt.Fprintf(&b, "%d. %s (%.1f MB)\n", i+1, name, float64(info.Size())/(1024*1024))
	}
	fmt.Fprintf(&b, "\nAll files saved to: %s\n", dir)
	return b.String()
}

// FormatAuthors joins up to max authors and appends "and N others" when
// the list is longer.
func FormatAuthors(authors []string, max int) string {
	if len(authors) <= max {
		return strings.Join(authors, ", ")
	}
	return fmt.Sprintf("%s and %d others", strings.Join(authors[:max], ", "), len(authors)-max)
}

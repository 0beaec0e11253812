// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// Paper holds the metadata decoded from one arXiv feed entry. A Paper is
// built once per search call and never modified afterwards.
type Paper struct {
	// ID is the last path segment of the entry identifier (e.g. "2301.07041v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with newlines collapsed to spaces.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Summary is the abstract, normalized like Title.
	Summary string `json:"summary" yaml:"summary"`

	// Published is the first submission time.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the time of the latest revision.
	Updated time.Time `json:"updated" yaml:"updated"`

	// Categories lists the category terms attached to the entry.
	Categories []string `json:"categories" yaml:"categories"`

	// PDFURL is the link of type application/pdf. Empty when the entry has none.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// AbsURL is the canonical entry identifier URI. Always set.
	AbsURL string `json:"abs_url" yaml:"abs_url"`
}

// HasPDF reports whether the paper carries a downloadable PDF link.
func (p Paper) HasPDF() bool {
	return p.PDFURL != ""
}

// String returns "title (id) - first three authors".
func (p Paper) String() string {
	authors := p.Authors
	if len(authors) > 3 {
		authors = authors[:3]
	}
	return fmt.Sprintf("%s (%s) - %s", p.Title, p.ID, strings.Join(authors, ", "))
}

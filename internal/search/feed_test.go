// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed/atom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedEntry describes one entry in a generated test feed.
type feedEntry struct {
	id        string
	title     string
	published string
	pdf       bool
}

func entryXML(e feedEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  <entry>\n")
	fmt.Fprintf(&b, "    <id>http://arxiv.org/abs/%s</id>\n", e.id)
	fmt.Fprintf(&b, "    <updated>%s</updated>\n", e.published)
	fmt.Fprintf(&b, "    <published>%s</published>\n", e.published)
	fmt.Fprintf(&b, "    <title>%s</title>\n", e.title)
	fmt.Fprintf(&b, "    <summary>  Abstract of\n  %s.\n  </summary>\n", e.id)
	fmt.Fprintf(&b, "    <author><name>Alice Smith</name></author>\n")
	fmt.Fprintf(&b, "    <author><name>Bob Jones</name></author>\n")
	fmt.Fprintf(&b, "    <link href=\"http://arxiv.org/abs/%s\" rel=\"alternate\" type=\"text/html\"/>\n", e.id)
	if e.pdf {
		fmt.Fprintf(&b, "    <link title=\"pdf\" href=\"http://arxiv.org/pdf/%s\" rel=\"related\" type=\"application/pdf\"/>\n", e.id)
	}
	fmt.Fprintf(&b, "    <category term=\"cs.LG\" scheme=\"http://arxiv.org/schemas/atom\"/>\n")
	fmt.Fprintf(&b, "    <category term=\"cs.AI\" scheme=\"http://arxiv.org/schemas/atom\"/>\n")
	fmt.Fprintf(&b, "  </entry>\n")
	return b.String()
}

func feedXML(entries ...feedEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("  <title>ArXiv Query</title>\n")
	for _, e := range entries {
		b.WriteString(entryXML(e))
	}
	b.WriteString("</feed>\n")
	return b.String()
}

func TestParseEntriesWellFormed(t *testing.T) {
	body := feedXML(
		feedEntry{id: "2301.07041v1", title: "First", published: "2023-01-17T18:58:28Z", pdf: true},
		feedEntry{id: "2301.07042v2", title: "Second", published: "2023-01-18T10:00:00Z"},
	)

	entries, err := parseEntries([]byte(body))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "http://arxiv.org/abs/2301.07041v1", entries[0].ID)
}

func TestParseEntriesSalvagesTruncatedFeed(t *testing.T) {
	full := feedXML(
		feedEntry{id: "2301.00001v1", title: "One", published: "2023-01-17T18:58:28Z"},
		feedEntry{id: "2301.00002v1", title: "Two", published: "2023-01-17T18:58:28Z"},
		feedEntry{id: "2301.00003v1", title: "Three", published: "2023-01-17T18:58:28Z"},
	)
	// Cut the document inside the third entry.
	cut := strings.Index(full, "2301.00003v1</id>")
	require.Positive(t, cut)

	entries, err := parseEntries([]byte(full[:cut]))
	require.Error(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "http://arxiv.org/abs/2301.00002v1", entries[1].ID)
	assert.Len(t, entries[0].Authors, 2)
	assert.Len(t, entries[0].Categories, 2)
}

func TestParseEntriesGarbage(t *testing.T) {
	entries, err := parseEntries([]byte("this is not xml"))
	assert.Error(t, err)
	assert.Empty(t, entries)
}

func TestPaperFromEntry(t *testing.T) {
	entries, err := parseEntries([]byte(feedXML(
		feedEntry{id: "2301.07041v1", title: "Attention\n  Is All\n You Need", published: "2023-01-17T18:58:28Z", pdf: true},
	)))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	p, err := paperFromEntry(entries[0])
	require.NoError(t, err)

	assert.Equal(t, "2301.07041v1", p.ID)
	assert.Equal(t, "Attention Is All You Need", p.Title)
	assert.Equal(t, "Abstract of 2301.07041v1.", p.Summary)
	assert.Equal(t, []string{"Alice Smith", "Bob Jones"}, p.Authors)
	assert.Equal(t, []string{"cs.LG", "cs.AI"}, p.Categories)
	assert.Equal(t, "http://arxiv.org/pdf/2301.07041v1", p.PDFURL)
	assert.Equal(t, "http://arxiv.org/abs/2301.07041v1", p.AbsURL)
	assert.Equal(t, time.Date(2023, 1, 17, 18, 58, 28, 0, time.UTC), p.Published)
	assert.True(t, p.HasPDF())
}

func TestPaperFromEntryWithoutPDF(t *testing.T) {
	p, err := paperFromEntry(&atom.Entry{
		ID:        "http://arxiv.org/abs/2301.07041v1",
		Title:     "No PDF",
		Published: "2023-01-17T18:58:28Z",
		Updated:   "2023-01-17T18:58:28Z",
		Links:     []*atom.Link{{Href: "http://arxiv.org/abs/2301.07041v1", Type: "text/html"}},
	})
	require.NoError(t, err)
	assert.Empty(t, p.PDFURL)
	assert.False(t, p.HasPDF())
	assert.NotEmpty(t, p.AbsURL)
}

func TestPaperFromEntryRejects(t *testing.T) {
	valid := func() *atom.Entry {
		return &atom.Entry{
			ID:        "http://arxiv.org/abs/2301.07041v1",
			Title:     "Title",
			Published: "2023-01-17T18:58:28Z",
			Updated:   "2023-01-17T18:58:28Z",
		}
	}
	tests := []struct {
		name   string
		mutate func(e *atom.Entry)
	}{
		{"missing id", func(e *atom.Entry) { e.ID = "" }},
		{"id without segment", func(e *atom.Entry) { e.ID = "http://arxiv.org/abs/" }},
		{"missing title", func(e *atom.Entry) { e.Title = "  \n " }},
		{"missing published", func(e *atom.Entry) { e.Published = "" }},
		{"offset instead of Z", func(e *atom.Entry) { e.Published = "2023-01-17T18:58:28+01:00" }},
		{"fractional seconds", func(e *atom.Entry) { e.Updated = "2023-01-17T18:58:28.5Z" }},
		{"comma fractional seconds", func(e *atom.Entry) { e.Published = "2023-01-17T18:58:28,123Z" }},
		{"date only", func(e *atom.Entry) { e.Updated = "2023-01-17" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			_, err := paperFromEntry(e)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c", normalizeText("\n  a\n b   c \n"))
	assert.Equal(t, "", normalizeText(" \n "))
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "2301.07041v1", lastSegment("http://arxiv.org/abs/2301.07041v1"))
	assert.Equal(t, "hep-th", lastSegment("http://arxiv.org/abs/hep-th"))
	assert.Equal(t, "plain", lastSegment("plain"))
}

func TestParseTimestampExact(t *testing.T) {
	got, err := parseTimestamp("published", " 2023-01-17T18:58:28Z\n")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 17, 18, 58, 28, 0, time.UTC), got)

	for _, raw := range []string{"2023-01-17T18:58:28.5Z", "2023-01-17T18:58:28,123Z"} {
		_, err := parseTimestamp("published", raw)
		assert.ErrorContains(t, err, "want "+timestampLayout, raw)
	}
}

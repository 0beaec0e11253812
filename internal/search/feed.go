// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"

	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

// timestampLayout is the only accepted form of published and updated.
const timestampLayout = "2006-01-02T15:04:05Z"

const pdfMediaType = "application/pdf"

// parseEntries decodes the Atom document in body. When the parser rejects
// the document, the returned error is non-nil and the entries are those
// recovered by salvageEntries.
func parseEntries(body []byte) ([]*atom.Entry, error) {
	fp := &atom.Parser{}
	feed, err := fp.Parse(bytes.NewReader(body))
	if err == nil {
		return feed.Entries, nil
	}
	return salvageEntries(body), err
}

// xmlEntry mirrors the subset of an Atom entry that salvageEntries reads.
type xmlEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Updated   string `xml:"updated"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Categories []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
	Links []struct {
		Href string `xml:"href,attr"`
		Rel  string `xml:"rel,attr"`
		Type string `xml:"type,attr"`
	} `xml:"link"`
}

// salvageEntries walks a malformed document token by token and returns
// every <entry> element that decodes completely before the first fault.
func salvageEntries(body []byte) []*atom.Entry {
	dec := xml.NewDecoder(bytes.NewReader(body))
	var entries []*atom.Entry
	for {
		tok, err := dec.Token()
		if err != nil {
			return entries
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "entry" {
			continue
		}
		var e xmlEntry
		if err := dec.DecodeElement(&e, &start); err != nil {
			return entries
		}
		entries = append(entries, e.toAtom())
	}
}

func (e xmlEntry) toAtom() *atom.Entry {
	out := &atom.Entry{
		ID:        e.ID,
		Title:     e.Title,
		Summary:   e.Summary,
		Published: e.Published,
		Updated:   e.Updated,
	}
	for _, a := range e.Authors {
		out.Authors = append(out.Authors, &atom.Person{Name: a.Name})
	}
	for _, c := range e.Categories {
		out.Categories = append(out.Categories, &atom.Category{Term: c.Term})
	}
	for _, l := range e.Links {
		out.Links = append(out.Links, &atom.Link{Href: l.Href, Rel: l.Rel, Type: l.Type})
	}
	return out
}

var (
	errMissingID    = errors.New("missing id")
	errMissingTitle = errors.New("missing title")
)

// paperFromEntry validates one entry and converts it into a Paper. The
// identifier, title, and both timestamps are required.
func paperFromEntry(e *atom.Entry) (types.Paper, error) {
	absURL := strings.TrimSpace(e.ID)
	if absURL == "" {
		return types.Paper{}, errMissingID
	}
	id := lastSegment(absURL)
	if id == "" {
		return types.Paper{}, fmt.Errorf("%w: no path segment in %q", errMissingID, absURL)
	}

	title := normalizeText(e.Title)
	if title == "" {
		return types.Paper{}, errMissingTitle
	}

	published, err := parseTimestamp("published", e.Published)
	if err != nil {
		return types.Paper{}, err
	}
	updated, err := parseTimestamp("updated", e.Updated)
	if err != nil {
		return types.Paper{}, err
	}

	p := types.Paper{
		ID:        id,
		Title:     title,
		Summary:   normalizeText(e.Summary),
		Published: published,
		Updated:   updated,
		AbsURL:    absURL,
	}
	for _, a := range e.Authors {
		if a == nil {
			continue
		}
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range e.Categories {
		if c == nil || c.Term == "" {
			continue
		}
		p.Categories = append(p.Categories, c.Term)
	}
	for _, l := range e.Links {
		if l != nil && l.Type == pdfMediaType {
			p.PDFURL = l.Href
			break
		}
	}
	return p, nil
}

func parseTimestamp(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing %s", field)
	}
	t, err := time.Parse(timestampLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	// time.Parse tolerates fractional seconds the layout does not name.
	if t.Format(timestampLayout) != raw {
		return time.Time{}, fmt.Errorf("invalid %s %q: want %s", field, raw, timestampLayout)
	}
	return t, nil
}

// lastSegment returns the text after the final "/" of uri.
func lastSegment(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// normalizeText collapses line breaks and surrounding whitespace runs
// into single spaces and trims the result.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

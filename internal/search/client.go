// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the arXiv API and decodes its Atom feed into
// paper records. It also builds the boolean search_query string and holds
// the table of recognized category codes.
package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-fetch/internal/httputil"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

// DefaultAPIURL is the arXiv search endpoint.
const DefaultAPIURL = "http://export.arxiv.org/api/query"

var discardLogger = slog.New(slog.DiscardHandler)

// Client issues paced requests against the search endpoint. The zero value
// is usable and talks to DefaultAPIURL without delay; NewClient applies
// configured defaults.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	UserAgent string

	// Delay is applied before every request.
	Delay time.Duration

	Logger *slog.Logger

	// Now returns the current time; SearchRecent uses it for the cutoff.
	Now func() time.Time
}

// NewClient builds a Client from cfg. A nil logger discards output.
func NewClient(cfg types.SearchConfig, logger *slog.Logger) *Client {
	delay := cfg.RequestDelay
	if delay == 0 {
		delay = httputil.DefaultDelay
	}
	if delay < 0 {
		delay = 0
	}
	return &Client{
		BaseURL:   cfg.APIURL,
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
		Delay:     delay,
		Logger:    logger,
	}
}

func (c *Client) log() *slog.Logger {
	if c.Logger == nil {
		return discardLogger
	}
	return c.Logger
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultAPIURL
	}
	return c.BaseURL
}

// Search runs a keyword search: the query text is matched against titles
// and abstracts, optionally restricted to req.Categories. Zero matches
// yield an empty slice and a nil error.
func (c *Client) Search(ctx context.Context, req types.SearchRequest) ([]types.Paper, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, &QueryError{Query: req.Query, Reason: "query is empty"}
	}
	req = req.WithDefaults()
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, invalid := SplitCategories(req.Categories); len(invalid) > 0 {
		c.log().Warn("ignoring unrecognized categories", "categories", invalid)
	}

	return c.run(ctx, BuildQuery(req.Query, req.Categories), req)
}

// GetByID looks up a single paper by its arXiv identifier. It returns
// ErrNotFound when the API has no entry for id.
func (c *Client) GetByID(ctx context.Context, id string) (types.Paper, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Paper{}, &QueryError{Query: id, Reason: "identifier is empty"}
	}
	papers, err := c.run(ctx, idQuery(id), types.SearchRequest{MaxResults: 1}.WithDefaults())
	if err != nil {
		return types.Paper{}, err
	}
	if len(papers) == 0 {
		return types.Paper{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return papers[0], nil
}

// SearchByAuthor returns papers whose author list matches name.
func (c *Client) SearchByAuthor(ctx context.Context, name string, maxResults int) ([]types.Paper, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &QueryError{Query: name, Reason: "author name is empty"}
	}
	req := types.SearchRequest{Query: name, MaxResults: maxResults}.WithDefaults()
	return c.run(ctx, authorQuery(name), req)
}

// SearchRecent runs a keyword search sorted by submission date and keeps
// only papers published within the last days days. The window is applied
// to the single page the API returns, so fewer than maxResults papers may
// come back even when more recent matches exist beyond that page.
func (c *Client) SearchRecent(ctx context.Context, query string, days, maxResults int) ([]types.Paper, error) {
	if days < 0 {
		return nil, &QueryError{Query: query, Reason: "days must not be negative"}
	}
	papers, err := c.Search(ctx, types.SearchRequest{
		Query:      query,
		MaxResults: maxResults,
		SortBy:     types.SortSubmittedDate,
		SortOrder:  types.SortDescending,
	})
	if err != nil {
		return nil, err
	}

	cutoff := c.now().Add(-time.Duration(days) * 24 * time.Hour)
	recent := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if !p.Published.Before(cutoff) {
			recent = append(recent, p)
		}
	}
	c.log().Debug("filtered by publish date", "days", days, "kept", len(recent), "fetched", len(papers))
	return recent, nil
}

func validateRequest(req types.SearchRequest) error {
	if !req.SortBy.Valid() {
		return &QueryError{Query: req.Query, Reason: fmt.Sprintf("unsupported sort key %q", req.SortBy)}
	}
	if !req.SortOrder.Valid() {
		return &QueryError{Query: req.Query, Reason: fmt.Sprintf("unsupported sort order %q", req.SortOrder)}
	}
	return nil
}

// run issues one request for searchQuery and decodes the response.
func (c *Client) run(ctx context.Context, searchQuery string, req types.SearchRequest) ([]types.Paper, error) {
	params := url.Values{}
	params.Set("search_query", searchQuery)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(req.MaxResults))
	params.Set("sortBy", string(req.SortBy))
	params.Set("sortOrder", string(req.SortOrder))
	reqURL := c.baseURL() + "?" + params.Encode()

	c.log().Info("searching arXiv", "query", searchQuery)
	c.log().Debug("search request", "url", reqURL)

	resp, err := httputil.PacedGet(ctx, c.HTTP, reqURL, c.UserAgent, c.Delay)
	if err != nil {
		c.log().Error("search request failed", "query", searchQuery, "error", err)
		return nil, &SearchError{Query: searchQuery, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		serr := &SearchError{Query: searchQuery, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %s", resp.Status)}
		c.log().Error("search request failed", "query", searchQuery, "status", resp.StatusCode)
		return nil, serr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log().Error("reading search response failed", "query", searchQuery, "error", err)
		return nil, &SearchError{Query: searchQuery, Err: fmt.Errorf("reading response: %w", err)}
	}

	papers := c.decode(body)
	c.log().Info("search complete", "found", len(papers))
	return papers, nil
}

// decode converts the feed into papers. A malformed feed and individual
// bad entries are logged and skipped; they never fail the whole search.
func (c *Client) decode(body []byte) []types.Paper {
	entries, err := parseEntries(body)
	if err != nil {
		c.log().Warn("feed parsing had issues, continuing with decoded entries",
			"error", err, "entries", len(entries))
	}

	papers := make([]types.Paper, 0, len(entries))
	for i, e := range entries {
		p, perr := paperFromEntry(e)
		if perr != nil {
			pe := &ParseError{Index: i, ID: strings.TrimSpace(e.ID), Err: perr}
			c.log().Warn("skipping feed entry", "error", pe)
			continue
		}
		papers = append(papers, p)
	}
	return papers
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for arxiv-fetch: the paper
// record decoded from the search feed, the search request, and the
// configuration handed to the search and download stages.
package types

import "fmt"

// SortBy selects the ordering the arXiv API applies to results.
type SortBy string

const (
	SortRelevance       SortBy = "relevance"
	SortLastUpdatedDate SortBy = "lastUpdatedDate"
	SortSubmittedDate   SortBy = "submittedDate"
)

// Valid reports whether s is one of the sort keys the API accepts.
func (s SortBy) Valid() bool {
	switch s {
	case SortRelevance, SortLastUpdatedDate, SortSubmittedDate:
		return true
	}
	return false
}

// ParseSortBy converts a flag or config value into a SortBy.
func ParseSortBy(s string) (SortBy, error) {
	v := SortBy(s)
	if !v.Valid() {
		return "", fmt.Errorf("invalid sort key %q: must be relevance, lastUpdatedDate, or submittedDate", s)
	}
	return v, nil
}

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// Valid reports whether o is ascending or descending.
func (o SortOrder) Valid() bool {
	return o == SortAscending || o == SortDescending
}

// ParseSortOrder converts a flag or config value into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	v := SortOrder(s)
	if !v.Valid() {
		return "", fmt.Errorf("invalid sort order %q: must be ascending or descending", s)
	}
	return v, nil
}

// Defaults applied when a SearchRequest leaves a field unset.
const (
	DefaultMaxResults = 10
	DefaultSortBy     = SortRelevance
	DefaultSortOrder  = SortDescending
)

// SearchRequest describes one query against the search endpoint. It is
// transient and never persisted.
type SearchRequest struct {
	// Query is the free-text query matched against titles and abstracts.
	Query string

	// MaxResults bounds the number of entries requested (must be > 0).
	MaxResults int

	// SortBy and SortOrder control result ordering.
	SortBy    SortBy
	SortOrder SortOrder

	// Categories optionally restricts results to these category codes.
	// Unrecognized codes are dropped by the query builder.
	Categories []string
}

// WithDefaults returns a copy of r with zero-valued fields filled in.
func (r SearchRequest) WithDefaults() SearchRequest {
	if r.MaxResults <= 0 {
		r.MaxResults = DefaultMaxResults
	}
	if r.SortBy == "" {
		r.SortBy = DefaultSortBy
	}
	if r.SortOrder == "" {
		r.SortOrder = DefaultSortOrder
	}
	return r
}

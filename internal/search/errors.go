// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by GetByID when the API has no matching entry.
var ErrNotFound = errors.New("paper not found")

// QueryError reports input the client refuses to send.
type QueryError struct {
	Query  string
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Query, e.Reason)
}

// SearchError reports a failed search request: a transport error, a
// non-2xx status, or an unreadable body. StatusCode is zero when no
// response was received.
type SearchError struct {
	Query      string
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("arXiv API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("arXiv API request: %v", e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// ParseError reports a feed entry that could not be decoded into a Paper.
// Index is the zero-based position of the entry in the feed.
type ParseError struct {
	Index int
	ID    string
	Err   error
}

func (e *ParseError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("entry %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

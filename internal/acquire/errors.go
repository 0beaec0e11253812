// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"errors"
	"fmt"
)

// ErrNoPDFURL is returned when a paper has no PDF link. No request is made.
var ErrNoPDFURL = errors.New("no PDF URL")

// Sentinels matched by errors.Is against a *FetchError of the same kind.
var (
	ErrForbidden   = errors.New("access forbidden")
	ErrHTTPFailure = errors.New("HTTP failure")
	ErrTransport   = errors.New("transport failure")
	ErrDisk        = errors.New("disk failure")
)

// FetchErrorKind classifies a failed download.
type FetchErrorKind int

const (
	// KindForbidden is an HTTP 403; the paper is likely access-restricted.
	KindForbidden FetchErrorKind = iota + 1
	// KindHTTPFailure is any other non-2xx status.
	KindHTTPFailure
	// KindTransport covers DNS, connection, and body read failures.
	KindTransport
	// KindDisk covers directory creation and file writes.
	KindDisk
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindForbidden:
		return "forbidden"
	case KindHTTPFailure:
		return "http"
	case KindTransport:
		return "transport"
	case KindDisk:
		return "disk"
	default:
		return "unknown"
	}
}

func (k FetchErrorKind) sentinel() error {
	switch k {
	case KindForbidden:
		return ErrForbidden
	case KindHTTPFailure:
		return ErrHTTPFailure
	case KindTransport:
		return ErrTransport
	case KindDisk:
		return ErrDisk
	default:
		return nil
	}
}

// FetchError reports a failed artifact download. Any partial file has
// already been removed when a FetchError is returned.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindForbidden:
		return fmt.Sprintf("access forbidden for %s (paper may not be available)", e.URL)
	case KindHTTPFailure:
		return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
	case KindTransport:
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("saving %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *FetchError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

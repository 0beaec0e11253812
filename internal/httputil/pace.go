// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the search and download stages.
package httputil

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultDelay is the pause applied before every request when the caller
// does not configure one.
const DefaultDelay = 1 * time.Second

// Pause blocks for d or until ctx is done. A non-positive d returns
// immediately. It returns ctx.Err() when the context ends first.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// PacedGet waits for delay, then issues a GET for url with the given
// User-Agent. The delay is applied unconditionally on every call; there is
// no adaptation to server responses and no retry. The caller closes the
// response body.
func PacedGet(ctx context.Context, client *http.Client, url, userAgent string, delay time.Duration) (*http.Response, error) {
	if err := Pause(ctx, delay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

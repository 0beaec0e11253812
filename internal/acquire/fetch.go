// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads paper PDFs into topic folders and summarizes
// what was fetched. Downloads are sequential, skip files already on disk,
// and never leave a partial file at the target path.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/arxiv-fetch/internal/httputil"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

// DefaultUserAgent is sent with artifact requests when none is configured.
const DefaultUserAgent = "Mozilla/5.0 (compatible; arxiv-fetch/1.0)"

// chunkSize is the read size used when streaming a body with a known length.
const chunkSize = 8 * 1024

var discardLogger = slog.New(slog.DiscardHandler)

// ProgressFunc receives the cumulative bytes written for a file out of the
// advertised total. It is only called when the response has a Content-Length.
type ProgressFunc func(name string, written, total int64)

// Fetcher downloads the PDF for a single paper.
type Fetcher struct {
	HTTP      *http.Client
	UserAgent string

	// Delay is applied before every artifact request.
	Delay time.Duration

	Logger   *slog.Logger
	Progress ProgressFunc
}

// NewFetcher builds a Fetcher from cfg. A nil logger discards output.
func NewFetcher(cfg types.DownloadConfig, logger *slog.Logger) *Fetcher {
	delay := cfg.RequestDelay
	if delay == 0 {
		delay = httputil.DefaultDelay
	}
	if delay < 0 {
		delay = 0
	}
	return &Fetcher{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
		Delay:     delay,
		Logger:    logger,
	}
}

func (f *Fetcher) log() *slog.Logger {
	if f.Logger == nil {
		return discardLogger
	}
	return f.Logger
}

func (f *Fetcher) userAgent() string {
	if f.UserAgent == "" {
		return DefaultUserAgent
	}
	return f.UserAgent
}

// Fetch downloads paper's PDF into targetDir and returns the file path.
// customName, when set, replaces the title-and-ID filename. If the file
// already exists Fetch returns its path with skipped=true and makes no
// request. A paper without a PDF link fails with ErrNoPDFURL; download
// failures are *FetchError values.
func (f *Fetcher) Fetch(ctx context.Context, paper types.Paper, targetDir, customName string) (path string, skipped bool, err error) {
	if !paper.HasPDF() {
		f.log().Error("no PDF URL found", "paper", paper.ID)
		return "", false, fmt.Errorf("paper %s: %w", paper.ID, ErrNoPDFURL)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", false, &FetchError{Kind: KindDisk, URL: paper.PDFURL, Err: fmt.Errorf("creating directory %s: %w", targetDir, err)}
	}

	name := Filename(paper.Title, paper.ID, customName)
	path = filepath.Join(targetDir, name)

	if _, err := os.Stat(path); err == nil {
		f.log().Info("file already exists", "file", name)
		return path, true, nil
	}

	f.log().Info("downloading", "title", paper.Title, "url", paper.PDFURL)
	if err := f.download(ctx, paper.PDFURL, path); err != nil {
		f.logFailure(paper, err)
		return "", false, err
	}

	f.log().Info("downloaded", "file", name)
	return path, false, nil
}

func (f *Fetcher) logFailure(paper types.Paper, err error) {
	var fe *FetchError
	if !errors.As(err, &fe) {
		f.log().Error("download failed", "paper", paper.ID, "error", err)
		return
	}
	switch fe.Kind {
	case KindForbidden:
		f.log().Error("access forbidden, paper may not be available", "paper", paper.ID, "url", fe.URL)
	case KindHTTPFailure:
		f.log().Error("HTTP error", "paper", paper.ID, "status", fe.StatusCode, "url", fe.URL)
	default:
		f.log().Error("download failed", "paper", paper.ID, "kind", fe.Kind.String(), "error", fe.Err)
	}
}

// download fetches url into destPath through a temporary file in the same
// directory, renamed into place only after the whole body is written.
func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	resp, err := httputil.PacedGet(ctx, f.HTTP, url, f.userAgent(), f.Delay)
	if err != nil {
		return &FetchError{Kind: KindTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return &FetchError{Kind: KindForbidden, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %s", resp.Status)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &FetchError{Kind: KindHTTPFailure, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %s", resp.Status)}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".arxiv-fetch-*.tmp")
	if err != nil {
		return &FetchError{Kind: KindDisk, URL: url, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmpFile.Name()

	copyErr := f.copyBody(tmpFile, resp.Body, resp.ContentLength, filepath.Base(destPath), url)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return copyErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return &FetchError{Kind: KindDisk, URL: url, Err: fmt.Errorf("closing temp file: %w", closeErr)}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &FetchError{Kind: KindDisk, URL: url, Err: fmt.Errorf("renaming temp file: %w", err)}
	}
	return nil
}

// copyBody streams src into dst. With a positive total it reads in
// chunkSize pieces and reports progress; otherwise it reads the whole body
// at once without progress.
func (f *Fetcher) copyBody(dst io.Writer, src io.Reader, total int64, name, url string) error {
	if total <= 0 {
		data, err := io.ReadAll(src)
		if err != nil {
			return &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("reading body: %w", err)}
		}
		if _, err := dst.Write(data); err != nil {
			return &FetchError{Kind: KindDisk, URL: url, Err: fmt.Errorf("writing download: %w", err)}
		}
		return nil
	}

	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return &FetchError{Kind: KindDisk, URL: url, Err: fmt.Errorf("writing download: %w", err)}
			}
			written += int64(n)
			if f.Progress != nil {
				f.Progress(name, written, total)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("reading body: %w", readErr)}
		}
	}
}

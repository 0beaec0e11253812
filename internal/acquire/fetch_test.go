// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), buf
}

// pdfServer answers every request with handler and counts the hits.
type pdfServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newPDFServer(t *testing.T, handler http.HandlerFunc) *pdfServer {
	t.Helper()
	ps := &pdfServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(ps.Close)
	return ps
}

func servePDF(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	}
}

func testPaper(id, pdfURL string) types.Paper {
	return types.Paper{
		ID:        id,
		Title:     "Paper " + id,
		Authors:   []string{"Alice Smith"},
		Published: time.Date(2023, 1, 17, 0, 0, 0, 0, time.UTC),
		PDFURL:    pdfURL,
	}
}

func testFetcher(srv *httptest.Server) *Fetcher {
	return &Fetcher{HTTP: srv.Client()}
}

func TestFetchWritesFile(t *testing.T) {
	body := []byte("%PDF-1.4 test content")
	srv := newPDFServer(t, servePDF(body))
	dir := t.TempDir()

	path, skipped, err := testFetcher(srv.Server).Fetch(context.Background(), testPaper("2301.07041v1", srv.URL+"/pdf/2301.07041v1"), dir, "")
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, filepath.Join(dir, "Paper 2301.07041v1_2301.07041v1.pdf"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetchCreatesTargetDir(t *testing.T) {
	srv := newPDFServer(t, servePDF([]byte("pdf")))
	dir := filepath.Join(t.TempDir(), "nested", "topic")

	path, _, err := testFetcher(srv.Server).Fetch(context.Background(), testPaper("1", srv.URL), dir, "")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFetchSkipsExistingFile(t *testing.T) {
	srv := newPDFServer(t, servePDF([]byte("pdf")))
	dir := t.TempDir()
	f := testFetcher(srv.Server)
	paper := testPaper("2301.07041v1", srv.URL)

	first, skipped, err := f.Fetch(context.Background(), paper, dir, "")
	require.NoError(t, err)
	assert.False(t, skipped)

	second, skipped, err := f.Fetch(context.Background(), paper, dir, "")
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestFetchNoPDFURL(t *testing.T) {
	srv := newPDFServer(t, servePDF([]byte("pdf")))
	logger, logs := bufferLogger()
	f := testFetcher(srv.Server)
	f.Logger = logger
	dir := t.TempDir()

	path, skipped, err := f.Fetch(context.Background(), testPaper("2301.07041v1", ""), dir, "")
	require.ErrorIs(t, err, ErrNoPDFURL)
	assert.Empty(t, path)
	assert.False(t, skipped)
	assert.Equal(t, int32(0), srv.hits.Load())
	assert.Contains(t, logs.String(), "no PDF URL found")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		want     error
		wantKind FetchErrorKind
	}{
		{"forbidden", http.StatusForbidden, ErrForbidden, KindForbidden},
		{"server error", http.StatusInternalServerError, ErrHTTPFailure, KindHTTPFailure},
		{"not found", http.StatusNotFound, ErrHTTPFailure, KindHTTPFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newPDFServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			dir := t.TempDir()

			_, _, err := testFetcher(srv.Server).Fetch(context.Background(), testPaper("1", srv.URL), dir, "")
			require.ErrorIs(t, err, tt.want)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantKind, fe.Kind)
			assert.Equal(t, tt.status, fe.StatusCode)

			entries, _ := os.ReadDir(dir)
			assert.Empty(t, entries)
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, _, err := (&Fetcher{}).Fetch(context.Background(), testPaper("1", url), t.TempDir(), "")
	require.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrHTTPFailure)
}

func TestFetchMidStreamFailureLeavesNoFile(t *testing.T) {
	srv := newPDFServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100000")
		w.Write(bytes.Repeat([]byte("x"), 1000))
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	})
	dir := t.TempDir()
	paper := testPaper("2301.07041v1", srv.URL)

	_, _, err := testFetcher(srv.Server).Fetch(context.Background(), paper, dir, "")
	require.ErrorIs(t, err, ErrTransport)

	assert.NoFileExists(t, filepath.Join(dir, Filename(paper.Title, paper.ID, "")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files left behind")
}

func TestFetchReportsProgress(t *testing.T) {
	body := bytes.Repeat([]byte("p"), 3*chunkSize+100)
	srv := newPDFServer(t, servePDF(body))

	var last, total int64
	var calls int
	f := testFetcher(srv.Server)
	f.Progress = func(name string, written, size int64) {
		calls++
		assert.GreaterOrEqual(t, written, last)
		last, total = written, size
	}

	_, _, err := f.Fetch(context.Background(), testPaper("1", srv.URL), t.TempDir(), "")
	require.NoError(t, err)
	assert.Positive(t, calls)
	assert.Equal(t, int64(len(body)), last)
	assert.Equal(t, int64(len(body)), total)
}

func TestFetchCustomName(t *testing.T) {
	srv := newPDFServer(t, servePDF([]byte("pdf")))
	dir := t.TempDir()

	path, _, err := testFetcher(srv.Server).Fetch(context.Background(), testPaper("1706.03762v7", srv.URL), dir, "attention")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "attention.pdf"), path)
}

func TestFetchSendsUserAgent(t *testing.T) {
	var got atomic.Value
	srv := newPDFServer(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.UserAgent())
		w.Write([]byte("pdf"))
	})

	_, _, err := testFetcher(srv.Server).Fetch(context.Background(), testPaper("1", srv.URL), t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, got.Load())
}

func TestNewFetcherDefaults(t *testing.T) {
	f := NewFetcher(types.DownloadConfig{}, nil)
	assert.Equal(t, time.Second, f.Delay)

	f = NewFetcher(types.DownloadConfig{HTTPConfig: types.HTTPConfig{RequestDelay: -1, UserAgent: "ua"}}, nil)
	assert.Zero(t, f.Delay)
	assert.Equal(t, "ua", f.userAgent())
}

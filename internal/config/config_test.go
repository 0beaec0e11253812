// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
	"github.com/pdiddy/arxiv-fetch/internal/search"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, search.DefaultAPIURL, cfg.Search.APIURL)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.Equal(t, types.SortRelevance, cfg.Search.SortBy)
	assert.Equal(t, types.SortDescending, cfg.Search.SortOrder)
	assert.Equal(t, time.Second, cfg.Search.RequestDelay)
	assert.Equal(t, 60*time.Second, cfg.Search.Timeout)
	assert.Equal(t, acquire.DefaultUserAgent, cfg.Search.UserAgent)
	assert.Equal(t, "downloads", cfg.Download.Dir)
	assert.Equal(t, time.Second, cfg.Download.RequestDelay)
	assert.Equal(t, "info", cfg.Output.LogLevel)
	assert.Equal(t, "auto", cfg.Output.Color)
}

func TestLoadFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
download_dir: papers
max_results: 25
sort_by: submittedDate
request_delay: 3s
color: never
`), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "papers", cfg.Download.Dir)
	assert.Equal(t, 25, cfg.Search.MaxResults)
	assert.Equal(t, types.SortSubmittedDate, cfg.Search.SortBy)
	assert.Equal(t, 3*time.Second, cfg.Search.RequestDelay)
	assert.Equal(t, 3*time.Second, cfg.Download.RequestDelay)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoadFindsFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arxiv-fetch.yaml"), []byte("max_results: 7\n"), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.MaxResults)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvAndOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ARXIV_FETCH_DOWNLOAD_DIR", "from-env")
	t.Setenv("ARXIV_FETCH_MAX_RESULTS", "40")

	v := viper.New()
	v.Set(KeyMaxResults, 5)

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Download.Dir)
	assert.Equal(t, 5, cfg.Search.MaxResults, "explicit value beats env")
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	v := viper.New()
	v.Set(KeyMaxResults, 0)
	v.Set(KeySortBy, "popularity")

	_, err := Load(v, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results")
	assert.Contains(t, err.Error(), "popularity")
}

func TestValidateColor(t *testing.T) {
	t.Chdir(t.TempDir())
	v := viper.New()
	v.Set(KeyColor, "rainbow")

	_, err := Load(v, "")
	assert.ErrorContains(t, err, "rainbow")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads arxiv-fetch settings from a YAML file, ARXIV_FETCH_*
// environment variables, and bound command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
	"github.com/pdiddy/arxiv-fetch/internal/httputil"
	"github.com/pdiddy/arxiv-fetch/internal/search"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

const (
	// ConfigName is the config file base name searched in . and ~/.config/arxiv-fetch.
	ConfigName = "arxiv-fetch"

	// EnvPrefix prefixes environment overrides, e.g. ARXIV_FETCH_DOWNLOAD_DIR.
	EnvPrefix = "ARXIV_FETCH"
)

// Keys.
const (
	KeyAPIURL       = "api_url"
	KeyDownloadDir  = "download_dir"
	KeyMaxResults   = "max_results"
	KeySortBy       = "sort_by"
	KeySortOrder    = "sort_order"
	KeyRequestDelay = "request_delay"
	KeyTimeout      = "timeout"
	KeyUserAgent    = "user_agent"
	KeyLogLevel     = "log_level"
	KeyColor        = "color"
)

// Defaults.
const (
	DefaultDownloadDir = "downloads"
	DefaultTimeout     = 60 * time.Second
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, search.DefaultAPIURL)
	v.SetDefault(KeyDownloadDir, DefaultDownloadDir)
	v.SetDefault(KeyMaxResults, types.DefaultMaxResults)
	v.SetDefault(KeySortBy, string(types.DefaultSortBy))
	v.SetDefault(KeySortOrder, string(types.DefaultSortOrder))
	v.SetDefault(KeyRequestDelay, httputil.DefaultDelay)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyUserAgent, acquire.DefaultUserAgent)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyColor, "auto")
}

// Load reads configuration into v and returns the validated result. Flags
// should already be bound to v. cfgFile, when set, must exist; otherwise a
// missing config file is not an error.
func Load(v *viper.Viper, cfgFile string) (types.Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg.Search); err != nil {
		return types.Config{}, fmt.Errorf("unmarshaling search config: %w", err)
	}
	if err := v.Unmarshal(&cfg.Download); err != nil {
		return types.Config{}, fmt.Errorf("unmarshaling download config: %w", err)
	}
	if err := v.Unmarshal(&cfg.Output); err != nil {
		return types.Config{}, fmt.Errorf("unmarshaling output config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return types.Config{}, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func Validate(cfg types.Config) error {
	var errs []error
	if cfg.Search.APIURL == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", KeyAPIURL))
	}
	if cfg.Search.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyMaxResults, cfg.Search.MaxResults))
	}
	if !cfg.Search.SortBy.Valid() {
		errs = append(errs, fmt.Errorf("invalid %s %q", KeySortBy, cfg.Search.SortBy))
	}
	if !cfg.Search.SortOrder.Valid() {
		errs = append(errs, fmt.Errorf("invalid %s %q", KeySortOrder, cfg.Search.SortOrder))
	}
	if cfg.Search.RequestDelay < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyRequestDelay))
	}
	if cfg.Search.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyTimeout))
	}
	if cfg.Download.Dir == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", KeyDownloadDir))
	}
	if _, err := ParseLogLevel(cfg.Output.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(cfg.Output.Color) {
	case "", "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("invalid %s %q: must be auto, always, or never", KeyColor, cfg.Output.Color))
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps debug, info, warn, or error to a slog level. Empty
// means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid %s %q: must be debug, info, warn, or error", KeyLogLevel, s)
	}
}

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RequestDelay is the fixed pause applied before every network call
	// (default 1s). It is not adaptive.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay" mapstructure:"request_delay"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIURL is the arXiv query endpoint.
	APIURL string `json:"api_url" yaml:"api_url" mapstructure:"api_url"`

	// MaxResults is the default number of results per search (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// SortBy and SortOrder are the default ordering for keyword searches.
	SortBy    SortBy    `json:"sort_by" yaml:"sort_by" mapstructure:"sort_by"`
	SortOrder SortOrder `json:"sort_order" yaml:"sort_order" mapstructure:"sort_order"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Dir is the root download directory; topic folders are created below it
	// (default "downloads").
	Dir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`
}

// OutputConfig holds terminal output settings.
type OutputConfig struct {
	// Color selects colored output: auto, always, or never.
	Color string `json:"color" yaml:"color" mapstructure:"color"`

	// LogLevel is the minimum slog level: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// Config groups all settings loaded from the config file, environment, and flags.
type Config struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Download DownloadConfig `json:"download" yaml:"download"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}

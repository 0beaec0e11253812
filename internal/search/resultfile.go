// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

// ResultFile is the on-disk representation of a search and its results.
// A saved listing can be reloaded and downloaded later without querying
// the API again.
type ResultFile struct {
	Request RequestParams `yaml:"request"`
	Results []types.Paper `yaml:"results"`
	Summary ResultSummary `yaml:"summary"`
}

// RequestParams stores the search request in a serializable form.
type RequestParams struct {
	Query      string   `yaml:"query,omitempty"`
	Author     string   `yaml:"author,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	MaxResults int      `yaml:"max_results"`
	SortBy     string   `yaml:"sort_by,omitempty"`
	SortOrder  string   `yaml:"sort_order,omitempty"`
	RecentDays int      `yaml:"recent_days,omitempty"`
}

// ResultSummary stores result statistics and a timestamp.
type ResultSummary struct {
	Total     int       `yaml:"total"`
	WithPDF   int       `yaml:"with_pdf"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResultFile saves the request and its results to a YAML file.
func WriteResultFile(path string, params RequestParams, papers []types.Paper) error {
	rf := ResultFile{
		Request: params,
		Results: papers,
		Summary: ResultSummary{
			Total:     len(papers),
			Timestamp: time.Now().UTC(),
		},
	}
	for _, p := range papers {
		if p.HasPDF() {
			rf.Summary.WithPDF++
		}
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}

// FormatJSON writes papers as indented JSON to w.
func FormatJSON(papers []types.Paper, w io.Writer) error {
	if papers == nil {
		papers = []types.Paper{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

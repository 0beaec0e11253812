// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session implements the interactive search loop as a state
// machine. Each Step takes the current State and a user Action and returns
// the next State; prompting and printing stay with the caller.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pdiddy/arxiv-fetch/internal/acquire"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

// TopicPrefix is prepended to the query to name the download folder.
const TopicPrefix = "interactive_"

var (
	// ErrInvalidChoice is returned for selections that are not all, none,
	// new, or a comma-separated list of numbers.
	ErrInvalidChoice = errors.New("invalid format, use numbers separated by commas (e.g. 1,3,5)")

	// ErrNoSelection is returned when every number in a selection is out of range.
	ErrNoSelection = errors.New("invalid paper numbers")

	// ErrEmptyQuery is returned when a search is requested with a blank query.
	ErrEmptyQuery = errors.New("empty search query")

	// ErrDone is returned by Step once the session has exited.
	ErrDone = errors.New("session has ended")
)

// State is an immutable snapshot of the session.
type State struct {
	Topic   string
	Query   string
	Results []types.Paper
	Done    bool
}

// Action is a user request applied to a State.
type Action interface {
	action()
}

// NewSearch runs Query and replaces the current results.
type NewSearch struct {
	Query string
}

// SelectAndDownload applies a selection ("all", "none", "new", or "1,3,5")
// to the current results.
type SelectAndDownload struct {
	Selection string
}

// Exit ends the session.
type Exit struct{}

func (NewSearch) action()         {}
func (SelectAndDownload) action() {}
func (Exit) action()              {}

// ChoiceKind is the parsed form of a selection.
type ChoiceKind int

const (
	ChoiceNone ChoiceKind = iota
	ChoiceAll
	ChoiceNew
	ChoiceSelect
)

// Choice is a parsed selection. Indices are zero-based and only set for
// ChoiceSelect.
type Choice struct {
	Kind    ChoiceKind
	Indices []int
}

// ParseChoice parses a selection against n results. Input is trimmed and
// case-insensitive; empty input means none. Numbers are 1-based and those
// outside 1..n are dropped; repeats are kept once in first-seen order.
func ParseChoice(input string, n int) (Choice, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "", "none":
		return Choice{Kind: ChoiceNone}, nil
	case "all":
		return Choice{Kind: ChoiceAll}, nil
	case "new":
		return Choice{Kind: ChoiceNew}, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, field := range strings.Split(s, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return Choice{}, fmt.Errorf("%q: %w", input, ErrInvalidChoice)
		}
		i := num - 1
		if i < 0 || i >= n || seen[i] {
			continue
		}
		seen[i] = true
		indices = append(indices, i)
	}
	if len(indices) == 0 {
		return Choice{}, fmt.Errorf("%q: %w", input, ErrNoSelection)
	}
	return Choice{Kind: ChoiceSelect, Indices: indices}, nil
}

// Searcher runs a keyword search. *search.Client implements it.
type Searcher interface {
	Search(ctx context.Context, req types.SearchRequest) ([]types.Paper, error)
}

// Downloader fetches papers into dir.
type Downloader interface {
	Download(ctx context.Context, dir string, papers []types.Paper) acquire.BatchResult
}

// BatchDownloader adapts an acquire.PaperFetcher to Downloader by running
// an acquire.Batch per call.
type BatchDownloader struct {
	Fetcher acquire.PaperFetcher
	Out     io.Writer
	Logger  *slog.Logger
}

// Download runs a batch over papers into dir.
func (d *BatchDownloader) Download(ctx context.Context, dir string, papers []types.Paper) acquire.BatchResult {
	b := &acquire.Batch{Fetcher: d.Fetcher, Dir: dir, Out: d.Out, Logger: d.Logger}
	return b.FetchAll(ctx, papers, 0)
}

// Outcome describes what a Step did, for the caller to report.
type Outcome struct {
	// Searched is set after a NewSearch.
	Searched bool

	// WantsQuery is set when the user chose "new"; the caller should prompt
	// for a query and send a NewSearch.
	WantsQuery bool

	// Download holds the batch result when papers were downloaded.
	Download *acquire.BatchResult

	// Dir is the folder papers were downloaded into.
	Dir string
}

// Machine applies actions to session state.
type Machine struct {
	Searcher   Searcher
	Downloader Downloader

	// MaxResults is the page size for each search.
	MaxResults int

	// Root is the download root; each query gets its own folder below it.
	Root string

	Logger *slog.Logger
}

func (m *Machine) log() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.Logger
}

// Step applies a to s. On error the returned State equals s.
func (m *Machine) Step(ctx context.Context, s State, a Action) (State, Outcome, error) {
	if s.Done {
		return s, Outcome{}, ErrDone
	}

	switch a := a.(type) {
	case NewSearch:
		return m.search(ctx, s, a.Query)
	case SelectAndDownload:
		return m.selectAndDownload(ctx, s, a.Selection)
	case Exit:
		next := s
		next.Done = true
		return next, Outcome{}, nil
	default:
		return s, Outcome{}, fmt.Errorf("unknown action %T", a)
	}
}

func (m *Machine) search(ctx context.Context, s State, query string) (State, Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s, Outcome{}, ErrEmptyQuery
	}

	m.log().Debug("interactive search", "query", query)
	papers, err := m.Searcher.Search(ctx, types.SearchRequest{Query: query, MaxResults: m.MaxResults})
	if err != nil {
		return s, Outcome{}, fmt.Errorf("searching %q: %w", query, err)
	}

	return State{
		Topic:   TopicPrefix + query,
		Query:   query,
		Results: papers,
	}, Outcome{Searched: true}, nil
}

func (m *Machine) selectAndDownload(ctx context.Context, s State, selection string) (State, Outcome, error) {
	choice, err := ParseChoice(selection, len(s.Results))
	if err != nil {
		return s, Outcome{}, err
	}

	var picked []types.Paper
	switch choice.Kind {
	case ChoiceNone:
		return s, Outcome{}, nil
	case ChoiceNew:
		return s, Outcome{WantsQuery: true}, nil
	case ChoiceAll:
		picked = s.Results
	case ChoiceSelect:
		picked = make([]types.Paper, len(choice.Indices))
		for i, idx := range choice.Indices {
			picked[i] = s.Results[idx]
		}
	}
	if len(picked) == 0 {
		return s, Outcome{}, nil
	}

	dir := acquire.TopicDir(m.Root, s.Topic)
	res := m.Downloader.Download(ctx, dir, picked)
	return s, Outcome{Download: &res, Dir: dir}, nil
}

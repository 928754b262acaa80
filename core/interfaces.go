// Package core defines the pipeline interfaces for worldometer.
// Each stage of the pipeline (fetch, render, script evaluation, output
// rendering) is a small interface so the extraction core never depends on a
// concrete transport.
package core

import (
	"context"
	"time"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
	FetchedAt  time.Time
}

// Table is a flattened, render-ready view of one typed sub-table.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Document is everything a renderer needs to write out one topic snapshot.
type Document struct {
	Topic     string    `json:"topic"`
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
	Tables    []Table   `json:"tables"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ScriptRunner executes page scripts in a real browser.
type ScriptRunner interface {
	// Render loads the page, lets its scripts run and returns the resulting markup.
	Render(ctx context.Context, page *FetchResult) (*FetchResult, error)
	// RunScript evaluates script against the loaded page and returns the
	// JSON encoding of its result.
	RunScript(ctx context.Context, page *FetchResult, script string) ([]byte, error)
}

// Renderer converts a Document into a final output format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

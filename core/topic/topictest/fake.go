// Package topictest provides in-memory fetch collaborators for tests of
// topic loaders and holders.
package topictest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gaurav-prasanna/worldometer/core"
)

// FetchedAt is the timestamp stamped on every fake page.
var FetchedAt = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// Fetcher serves pages from memory, keyed by URL.
type Fetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls map[string]int
}

// NewFetcher creates a Fetcher serving pages.
func NewFetcher(pages map[string]string) *Fetcher {
	f := &Fetcher{pages: map[string]string{}, errs: map[string]error{}, calls: map[string]int{}}
	for url, html := range pages {
		f.pages[url] = html
	}
	return f
}

// Set replaces the page served at url and clears any injected error.
func (f *Fetcher) Set(url, html string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[url] = html
	delete(f.errs, url)
}

// Fail makes every fetch of url return err.
func (f *Fetcher) Fail(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[url] = err
}

// Calls returns how often url was fetched.
func (f *Fetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *Fetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no fake page for %s", url)
	}
	return &core.FetchResult{URL: url, StatusCode: 200, HTML: html, FetchedAt: FetchedAt}, nil
}

// Runner answers scripts from memory. Rendered pages are served from
// Rendered when present, otherwise the fetched markup is returned as is.
type Runner struct {
	mu       sync.Mutex
	Rendered map[string]string
	// Scripts maps a script to its JSON result.
	Scripts  map[string][]byte
	Err      error
	renders  int
}

// Renders returns how many pages were rendered.
func (r *Runner) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

func (r *Runner) Render(_ context.Context, page *core.FetchResult) (*core.FetchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.renders++
	out := *page
	if html, ok := r.Rendered[page.URL]; ok {
		out.HTML = html
	}
	return &out, nil
}

func (r *Runner) RunScript(_ context.Context, _ *core.FetchResult, script string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	data, ok := r.Scripts[script]
	if !ok {
		return nil, fmt.Errorf("no fake result for script %q", script)
	}
	return data, nil
}

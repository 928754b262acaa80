// Package topic loads statistical topics through the extraction pipeline.
// It:
//  1. Resolves a topic's source path against the site's base URL
//  2. Fetches the page, rendering it in a browser when the topic needs it
//  3. Extracts the topic's tables, or evaluates the live counter script
//  4. Keeps the resulting typed snapshot in a Holder
package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/counters"
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/fetch"
)

var tracer = otel.Tracer("worldometer/core/topic")

// DefaultBaseURL is the statistics site every topic path is resolved against.
const DefaultBaseURL = "https://www.worldometers.info"

// CountersScript is the page expression holding the live counter object.
const CountersScript = "rts_counters"

// ErrNoScriptRunner is returned when a page must be rendered or a script
// evaluated but the Loader has no ScriptRunner.
var ErrNoScriptRunner = errors.New("no script runner configured")

// Source declares where a topic lives and the shape of its tables.
type Source struct {
	Name   string
	Path   string
	// Tables holds one schema per expected table, in document order.
	Tables []extract.Schema
	Filter extract.Filter
	// Render asks for the page's scripts to run before extraction.
	Render bool
}

// Page is the outcome of loading a Source.
type Page struct {
	URL       string
	FetchedAt time.Time
	Tables    []extract.Table
}

// Loader runs the fetch and extraction steps for topics.
type Loader struct {
	BaseURL string
	Fetcher core.Fetcher
	Runner  core.ScriptRunner
	Logger  *slog.Logger
}

// NewLoader creates a Loader against the default site.
func NewLoader(fetcher core.Fetcher, runner core.ScriptRunner) *Loader {
	return &Loader{
		BaseURL: DefaultBaseURL,
		Fetcher: fetcher,
		Runner:  runner,
		Logger:  slog.Default(),
	}
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l *Loader) url(path string) string {
	base := l.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fetch.MakeURL(base, path)
}

// Tables fetches the source page and extracts its tables.
func (l *Loader) Tables(ctx context.Context, src Source) (*Page, error) {
	ctx, span := tracer.Start(ctx, "Tables")
	defer span.End()

	url := l.url(src.Path)
	span.SetAttributes(attribute.String("topic", src.Name), attribute.String("url", url))
	log := l.logger().With("topic", src.Name, "url", url)

	page, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		log.ErrorContext(ctx, "fetch failed", "err", err)
		return nil, fmt.Errorf("fetch: %w", err)
	}

	if src.Render {
		if l.Runner == nil {
			return nil, fmt.Errorf("render %s: %w", url, ErrNoScriptRunner)
		}
		page, err = l.Runner.Render(ctx, page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "render failed")
			log.ErrorContext(ctx, "render failed", "err", err)
			return nil, fmt.Errorf("render: %w", err)
		}
	}

	tables, err := extract.Extract(page.HTML, src.Tables, src.Filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract failed")
		log.ErrorContext(ctx, "extract failed", "err", err)
		return nil, fmt.Errorf("extract: %w", err)
	}
	log.DebugContext(ctx, "extracted tables", "tables", len(tables))

	fetchedAt := page.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	return &Page{URL: url, FetchedAt: fetchedAt, Tables: tables}, nil
}

// Counters loads the page at path and returns its sanitized live counters.
func (l *Loader) Counters(ctx context.Context, path string) (counters.Sanitized, error) {
	ctx, span := tracer.Start(ctx, "Counters")
	defer span.End()

	url := l.url(path)
	span.SetAttributes(attribute.String("url", url))
	log := l.logger().With("url", url)

	if l.Runner == nil {
		return nil, fmt.Errorf("counters %s: %w", url, ErrNoScriptRunner)
	}

	page, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		log.ErrorContext(ctx, "fetch failed", "err", err)
		return nil, fmt.Errorf("fetch: %w", err)
	}

	data, err := l.Runner.RunScript(ctx, page, CountersScript)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "script failed")
		log.ErrorContext(ctx, "script failed", "err", err)
		return nil, fmt.Errorf("script: %w", err)
	}

	raw, err := counters.DecodeRaw(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("decode counters: %w", err)
	}

	sanitized := counters.Sanitize(raw)
	log.DebugContext(ctx, "sanitized counters", "counters", len(sanitized))
	return sanitized, nil
}

// Live returns one counter of the page at path. A key the page does not
// publish yields an absent Value.
func (l *Loader) Live(ctx context.Context, path, key string) (counters.Value, error) {
	sanitized, err := l.Counters(ctx, path)
	if err != nil {
		return counters.Absent(), err
	}
	return sanitized.Get(key), nil
}

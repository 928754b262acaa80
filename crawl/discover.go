// Package crawl finds the pages of the statistics site that publish tables.
// It:
//  1. Seeds the crawl from sitemap.xml when the site serves one, then walks links breadth first
//  2. Keeps to the configured sections of the same host
//  3. Parses every page it visits and records the shape of each table
//
// The result is used to spot pages the topic catalog does not cover yet and
// tables whose width no longer matches a declared schema.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/extract"
	"github.com/gaurav-prasanna/worldometer/core/fetch"
)

var tracer = otel.Tracer("worldometer/crawl")

// DefaultMaxPages bounds a crawl when Options.MaxPages is zero.
const DefaultMaxPages = 100

// DefaultSections are the parts of the site that hold table topics.
var DefaultSections = []string{"/world-population/", "/population/", "/geography/", "/country-codes/"}

// Options configures Discover.
type Options struct {
	BaseURL  string
	Sections []string
	MaxPages int
	Logger   *slog.Logger
}

// TableShape is the size of one table on a page.
type TableShape struct {
	Width int
	Rows  int
}

// Page is a visited page and the tables found on it.
type Page struct {
	URL    string
	Path   string
	Tables []TableShape
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// Discover visits up to MaxPages pages in scope, starting from the base
// URL, and returns those that hold at least one table. Pages that fail to
// fetch are logged and skipped.
func Discover(ctx context.Context, fetcher core.Fetcher, opts Options) ([]Page, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", opts.BaseURL)
	}
	if opts.Sections == nil {
		opts.Sections = DefaultSections
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	scope := Scope{Host: base.Host, Sections: opts.Sections}

	ctx, span := tracer.Start(ctx, "Discover", trace.WithAttributes(
		attribute.String("base_url", opts.BaseURL),
		attribute.Int("max_pages", opts.MaxPages),
	))
	defer span.End()

	visited := map[string]bool{}
	var queue []string
	enqueue := func(u string) {
		u = NormalizeURL(u)
		if !visited[u] {
			visited[u] = true
			queue = append(queue, u)
		}
	}

	for _, u := range fromSitemap(ctx, fetcher, opts.BaseURL, scope) {
		enqueue(u)
	}
	start := fetch.MakeURL(opts.BaseURL, "/")
	enqueue(start)
	for _, section := range opts.Sections {
		enqueue(fetch.MakeURL(opts.BaseURL, section))
	}

	var pages []Page
	for fetched := 0; len(queue) > 0 && fetched < opts.MaxPages; fetched++ {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		current := queue[0]
		queue = queue[1:]

		result, err := fetcher.Fetch(ctx, current)
		if err != nil {
			opts.Logger.WarnContext(ctx, "skipping page", "url", current, "err", err)
			continue
		}

		page, links, err := inspect(result.HTML, current)
		if err != nil {
			opts.Logger.WarnContext(ctx, "skipping page", "url", current, "err", err)
			continue
		}
		if len(page.Tables) > 0 {
			pages = append(pages, page)
			span.AddEvent("tables", trace.WithAttributes(
				attribute.String("path", page.Path),
				attribute.Int("count", len(page.Tables)),
			))
		}
		for _, link := range links {
			if scope.Allows(link) {
				enqueue(link)
			}
		}
	}
	span.SetAttributes(attribute.Int("visited", len(visited)), attribute.Int("with_tables", len(pages)))
	opts.Logger.DebugContext(ctx, "crawl finished", "visited", len(visited), "with_tables", len(pages))
	return pages, nil
}

// fromSitemap returns the in-scope URLs of the site's sitemap, or nothing
// when there is no usable sitemap.
func fromSitemap(ctx context.Context, fetcher core.Fetcher, baseURL string, scope Scope) []string {
	result, err := fetcher.Fetch(ctx, fetch.MakeURL(baseURL, "/sitemap.xml"))
	if err != nil {
		return nil
	}
	var sitemap sitemapIndex
	if err := xml.Unmarshal([]byte(result.HTML), &sitemap); err != nil {
		return nil
	}
	var urls []string
	for _, u := range sitemap.URLs {
		loc := strings.TrimSpace(u.Loc)
		if scope.Allows(loc) {
			urls = append(urls, loc)
		}
	}
	return urls
}

// inspect returns a page's table shapes and the links it holds.
func inspect(html, pageURL string) (Page, []string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return Page{}, nil, err
	}

	grids, err := extract.ParseGrids(html, nil)
	if err != nil {
		return Page{}, nil, err
	}
	page := Page{URL: pageURL, Path: base.Path}
	for _, g := range grids {
		page.Tables = append(page.Tables, TableShape{Width: g.Width, Rows: len(g.Rows)})
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Page{}, nil, err
	}
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if resolved := resolveURL(s.AttrOr("href", ""), base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return page, links, nil
}

// Package fetch implements the Fetcher and ScriptRunner interfaces.
// It performs HTTP GET requests with browser-like defaults for scraping, and
// drives a headless browser when a page needs its scripts executed.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gaurav-prasanna/worldometer/core"
)

var tracer = otel.Tracer("worldometer/core/fetch")

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

// ErrUnexpectedStatus is returned for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Options configures an HTTPFetcher. Zero values select the defaults.
type Options struct {
	Timeout          time.Duration
	UserAgent        string
	BypassCloudflare bool
	Logger           *slog.Logger
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client *resty.Client
	logger *slog.Logger
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client := resty.New()
	if opts.BypassCloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml")
	client.SetTimeout(opts.Timeout)

	return &HTTPFetcher{client: client, logger: opts.Logger}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	start := time.Now()
	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	f.logger.DebugContext(ctx, "fetched page",
		"url", url,
		"status", res.StatusCode(),
		"bytes", len(res.Body()),
		"elapsed", time.Since(start),
	)

	if !res.IsSuccess() {
		err := fmt.Errorf("%w %d for %s", ErrUnexpectedStatus, res.StatusCode(), url)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: res.StatusCode(),
		HTML:       string(res.Body()),
		FetchedAt:  time.Now().UTC(),
	}, nil
}

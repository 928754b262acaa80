package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gaurav-prasanna/worldometer/core"
)

// ErrScriptRunner is returned when a page could not be rendered or a script
// could not be evaluated against it.
var ErrScriptRunner = errors.New("could not evaluate script in page")

// BrowserOptions configures a Browser. Zero values select the defaults.
type BrowserOptions struct {
	Timeout   time.Duration
	UserAgent string
	// ExecPath overrides the Chrome binary chromedp would discover.
	ExecPath  string
	Logger    *slog.Logger
}

// Browser runs pages in headless Chrome. Each call starts a fresh browser
// tab that is torn down before returning.
type Browser struct {
	opts BrowserOptions
}

// NewBrowser creates a Browser.
func NewBrowser(opts BrowserOptions) *Browser {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Browser{opts: opts}
}

// Render loads the page and returns the markup after its scripts have run.
func (b *Browser) Render(ctx context.Context, page *core.FetchResult) (*core.FetchResult, error) {
	ctx, span := tracer.Start(ctx, "Render")
	defer span.End()
	span.SetAttributes(attribute.String("url", page.URL))

	var html string
	err := b.run(ctx, page.URL,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, err
	}

	return &core.FetchResult{
		URL:        page.URL,
		StatusCode: page.StatusCode,
		HTML:       html,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// RunScript evaluates script in the loaded page and returns the JSON
// encoding of its result.
func (b *Browser) RunScript(ctx context.Context, page *core.FetchResult, script string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "RunScript")
	defer span.End()
	span.SetAttributes(attribute.String("url", page.URL), attribute.String("script", script))

	var raw []byte
	if err := b.run(ctx, page.URL, chromedp.Evaluate(script, &raw)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "script failed")
		return nil, err
	}
	return raw, nil
}

func (b *Browser) run(ctx context.Context, url string, actions ...chromedp.Action) error {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(b.opts.UserAgent))
	if b.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(b.opts.ExecPath))
	}

	ctx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	start := time.Now()
	tasks := append(chromedp.Tasks{chromedp.Navigate(url)}, actions...)
	if err := chromedp.Run(tabCtx, tasks); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptRunner, url, err)
	}
	b.opts.Logger.DebugContext(ctx, "browser run finished", "url", url, "elapsed", time.Since(start))
	return nil
}

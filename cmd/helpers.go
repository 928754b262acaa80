package cmd

import (
	"log/slog"

	"github.com/gaurav-prasanna/worldometer/core/archive"
	"github.com/gaurav-prasanna/worldometer/core/fetch"
	"github.com/gaurav-prasanna/worldometer/core/topic"
)

// newLoader wires the HTTP fetcher and the headless browser from cfg.
func newLoader() *topic.Loader {
	logger := slog.Default()
	fetcher := fetch.New(fetch.Options{
		Timeout:          cfg.Timeout,
		UserAgent:        cfg.UserAgent,
		BypassCloudflare: cfg.BypassCloudflare,
		Logger:           logger,
	})
	browser := fetch.NewBrowser(fetch.BrowserOptions{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		ExecPath:  cfg.ChromePath,
		Logger:    logger,
	})

	loader := topic.NewLoader(fetcher, browser)
	loader.BaseURL = cfg.BaseURL
	loader.Logger = logger
	return loader
}

// openArchive opens the configured archive, or returns nil when archiving
// is off.
func openArchive() (*archive.Archive, error) {
	if cfg.Archive == "" {
		return nil, nil
	}
	return archive.Open(cfg.Archive)
}

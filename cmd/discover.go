package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/fetch"
	"github.com/gaurav-prasanna/worldometer/core/render"
	"github.com/gaurav-prasanna/worldometer/crawl"
	"github.com/gaurav-prasanna/worldometer/world"
)

var flagMaxPages int

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Crawl the site for pages that publish tables",
	Long: `Crawl the statistics sections of the site and list every page holding
tables, with the width of each table and the topic that reads it.

Pages marked "-" are not covered by any topic yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := fetch.New(fetch.Options{
			Timeout:          cfg.Timeout,
			UserAgent:        cfg.UserAgent,
			BypassCloudflare: cfg.BypassCloudflare,
			Logger:           slog.Default(),
		})
		pages, err := crawl.Discover(cmd.Context(), fetcher, crawl.Options{
			BaseURL:  cfg.BaseURL,
			MaxPages: flagMaxPages,
			Logger:   slog.Default(),
		})
		if err != nil {
			return fmt.Errorf("discovering pages: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), render.TextTable(discoveryTable(pages)))
		return nil
	},
}

// discoveryTable lists pages with their table widths and covering topic.
func discoveryTable(pages []crawl.Page) core.Table {
	covered := map[string]string{}
	for _, e := range world.Catalog() {
		covered[strings.TrimSuffix(e.Path, "/")] = e.Name
	}

	t := core.Table{Name: "discovered pages", Columns: []string{"path", "tables", "topic"}}
	for _, p := range pages {
		widths := make([]string, len(p.Tables))
		for i, shape := range p.Tables {
			widths[i] = strconv.Itoa(shape.Width)
		}
		name, ok := covered[strings.TrimSuffix(p.Path, "/")]
		if !ok {
			name = "-"
		}
		t.Rows = append(t.Rows, []any{p.Path, strings.Join(widths, ","), name})
	}
	return t
}

func init() {
	discoverCmd.Flags().IntVar(&flagMaxPages, "max-pages", crawl.DefaultMaxPages, "stop after visiting this many pages")
	rootCmd.AddCommand(discoverCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/archive"
	"github.com/gaurav-prasanna/worldometer/core/counters"
	"github.com/gaurav-prasanna/worldometer/core/render"
	"github.com/gaurav-prasanna/worldometer/world"
)

var (
	flagCategory     string
	flagCountersJSON bool
	flagArchived     bool
)

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Read the live world counters",
	Long: `Counters renders the home page in a headless browser, reads its live
counter object and prints every labelled counter by category.

Examples:
  worldometer counters
  worldometer counters --category energy --json
  worldometer counters --archive ./worldometer.db
  worldometer counters --archive ./worldometer.db --archived`,
	Args: cobra.NoArgs,
	RunE: runCounters,
}

func init() {
	rootCmd.AddCommand(countersCmd)

	countersCmd.Flags().StringVar(&flagCategory, "category", "", "Only print this category")
	countersCmd.Flags().BoolVar(&flagCountersJSON, "json", false, "Output JSON")
	countersCmd.Flags().String("archive", "", "SQLite archive to store the reading in")
	countersCmd.Flags().BoolVar(&flagArchived, "archived", false, "Print the latest archived reading instead of reading the site")
}

func runCounters(cmd *cobra.Command, args []string) error {
	if flagCategory != "" && !slices.Contains(world.Categories(), flagCategory) {
		return fmt.Errorf("unknown category %q (one of %v)", flagCategory, world.Categories())
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	var (
		reading counters.Sanitized
		takenAt time.Time
	)
	if flagArchived {
		if store == nil {
			return fmt.Errorf("--archived needs an archive (--archive or archive in config)")
		}
		reading, takenAt, err = store.LatestCounters(cmd.Context())
		if err != nil {
			return err
		}
	} else {
		w := world.NewWorldCounters(newLoader())
		if err := w.Reload(cmd.Context()); err != nil {
			return err
		}
		reading, takenAt = w.Raw(), w.TakenAt()
		if err := saveReading(cmd, store, takenAt, reading); err != nil {
			return err
		}
	}

	byCategory := world.NewCounters(reading).MetricsByCategory()
	if flagCategory != "" {
		byCategory = map[string]map[string]counters.Value{flagCategory: byCategory[flagCategory]}
	}

	out := cmd.OutOrStdout()
	if flagCountersJSON {
		data, err := json.MarshalIndent(map[string]any{
			"taken_at": takenAt,
			"counters": byCategory,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, category := range world.Categories() {
		metrics, ok := byCategory[category]
		if !ok {
			continue
		}
		t := core.Table{Name: category, Columns: []string{"counter", "value"}}
		for _, label := range world.Labels(category) {
			t.Rows = append(t.Rows, []any{label, metrics[label].String()})
		}
		fmt.Fprintln(out, render.TextTable(t))
	}
	fmt.Fprintf(out, "Taken at %s\n", takenAt.Format(time.RFC3339))
	return nil
}

func saveReading(cmd *cobra.Command, store *archive.Archive, takenAt time.Time, reading counters.Sanitized) error {
	if store == nil {
		return nil
	}
	id, err := store.SaveCounters(cmd.Context(), takenAt, reading)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Archived reading %s\n", id)
	return nil
}

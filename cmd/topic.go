// Topic command: the main pipeline
// fetch -> extract -> materialize -> render -> write.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/output"
	"github.com/gaurav-prasanna/worldometer/core/render"
	"github.com/gaurav-prasanna/worldometer/world"
)

// Output format flags.
var (
	flagPDF      bool
	flagMarkdown bool
	flagJSON     bool
	flagText     bool
)

var topicCmd = &cobra.Command{
	Use:   "topic <name>",
	Short: "Load a statistics topic and render it",
	Long: `Topic fetches a statistics page, extracts its tables, checks them against
the topic's columns and renders the typed rows.

Without a format flag the tables are printed to the terminal. --pdf,
--markdown and --json write a file named after the topic instead.

Examples:
  worldometer topic largest-cities
  worldometer topic asia-population --markdown --output_dir ./out
  worldometer topic country-codes --json --archive ./worldometer.db`,
	Args: cobra.ExactArgs(1),
	RunE: runTopic,
}

func init() {
	rootCmd.AddCommand(topicCmd)

	topicCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	topicCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	topicCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	topicCmd.Flags().BoolVar(&flagText, "text", false, "Output a text table file")

	topicCmd.Flags().String("output_dir", "", "Output directory (default: current directory)")
	topicCmd.Flags().String("archive", "", "SQLite archive to store the document in")
}

func runTopic(cmd *cobra.Command, args []string) error {
	entry, err := world.Lookup(args[0])
	if err != nil {
		return err
	}

	format, err := selectFormat()
	if err != nil {
		return err
	}
	renderer, err := render.New(format)
	if err != nil {
		return err
	}

	t := entry.New(newLoader())
	if err := t.Load(cmd.Context()); err != nil {
		return fmt.Errorf("%s: %w", entry.Name, err)
	}
	doc := t.Document()

	if err := saveDocument(cmd, doc); err != nil {
		return err
	}

	data, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// Terminal output unless a file format was asked for.
	if format == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(entry.Name, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// selectFormat checks that at most one output format is chosen and returns
// it, or "" for terminal output.
func selectFormat() (string, error) {
	formats := map[string]bool{
		"pdf":      flagPDF,
		"markdown": flagMarkdown,
		"json":     flagJSON,
		"text":     flagText,
	}
	var chosen []string
	for _, name := range render.Formats {
		if formats[name] {
			chosen = append(chosen, name)
		}
	}
	switch len(chosen) {
	case 0:
		return "", nil
	case 1:
		return chosen[0], nil
	}
	return "", fmt.Errorf("only one output format allowed per run (got %v)", chosen)
}

func saveDocument(cmd *cobra.Command, doc core.Document) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	defer store.Close()

	id, err := store.SaveDocument(cmd.Context(), doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Archived %s as %s\n", doc.Topic, id)
	return nil
}

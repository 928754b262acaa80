package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/fetch"
	"github.com/gaurav-prasanna/worldometer/core/render"
	"github.com/gaurav-prasanna/worldometer/world"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the statistics topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := core.Table{Columns: []string{"topic", "description", "url"}}
		for _, e := range world.Catalog() {
			t.Rows = append(t.Rows, []any{e.Name, e.Description, fetch.MakeURL(cfg.BaseURL, e.Path)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.TextTable(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}

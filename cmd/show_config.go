package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := core.Table{
			Name:    "config",
			Columns: []string{"key", "value"},
			Rows: [][]any{
				{cfgKeyBaseURL, cfg.BaseURL},
				{cfgKeyTimeout, cfg.Timeout.String()},
				{cfgKeyUserAgent, cfg.UserAgent},
				{cfgKeyBypassCloudflare, fmt.Sprint(cfg.BypassCloudflare)},
				{cfgKeyChromePath, cfg.ChromePath},
				{cfgKeyOutputDir, cfg.OutputDir},
				{cfgKeyArchive, cfg.Archive},
				{cfgKeyLogLevel, cfg.LogLevel},
			},
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.TextTable(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

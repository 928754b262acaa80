// Package cmd implements the CLI commands for worldometer using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Global flag values.
var (
	flagConfigDir string
	flagVerbose   bool
)

// cfg is the effective configuration, resolved by PersistentPreRunE.
var cfg Config

// flagKeys binds config keys to the flags that override them. Flags a
// command does not define are skipped.
var flagKeys = map[string]string{
	cfgKeyBaseURL:   "base-url",
	cfgKeyTimeout:   "timeout",
	cfgKeyOutputDir: "output_dir",
	cfgKeyArchive:   "archive",
}

var rootCmd = &cobra.Command{
	Use:   "worldometer",
	Short: "worldometer reads live counters and statistics tables",
	Long: `worldometer reads the live world counters and the statistics tables
published on worldometers.info and turns them into typed records.

Usage:
  worldometer counters [flags]
  worldometer topics
  worldometer topic <name> [flags]
  worldometer live <region>
  worldometer discover [--max-pages n]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := newViper()
		for key, name := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}

		loaded, err := loadConfig(v, flagConfigDir)
		if err != nil {
			return err
		}
		if flagVerbose {
			loaded.LogLevel = "debug"
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		level, _ := cfg.Level()
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", ".", "directory holding worldometer.yaml")
	rootCmd.PersistentFlags().String("base-url", "", "site to read from (default https://www.worldometers.info)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "fetch and render timeout (default 30s)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log pipeline steps")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package cli implements the "org" command-line front end: config
// management plus every read-only query the engine exposes, rendered as
// either human-readable plain text or JSON (spec.md §6).
package cli

import (
	"fmt"
	"os"

	"github.com/jra3/orgmind/internal/config"
	"github.com/jra3/orgmind/internal/engine"
	"github.com/jra3/orgmind/internal/logging"
	"github.com/jra3/orgmind/internal/orgerr"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "org",
	Short:         "Query an org-mode notes directory",
	Long:          `org reads a directory of .org files: listing, outlining, searching, and computing agenda views, with no mutation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to configuration file")
	rootCmd.PersistentFlags().StringP("root-directory", "r", "", "root directory containing org-mode files (overrides config)")
}

// Execute runs the CLI, printing "{kind}: {detail}" for a core error and
// exiting non-zero, per spec.md §6/§7.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// loadConfig resolves the config file and root-directory overrides shared by
// every subcommand except `config`, which works against the config file
// directly and must not fail just because no org directory is configured
// yet.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	rootDirectory, _ := cmd.Flags().GetString("root-directory")

	cfg, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return nil, err
	}
	if rootDirectory != "" {
		if err := cfg.ApplyOverrides(rootDirectory); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newEngine loads the config and builds the engine every query subcommand
// drives. Logging is routed to stderr (plus the configured log file, if
// any), at the configured level, so it never corrupts a command's stdout
// output.
func newEngine(cmd *cobra.Command) (*engine.OrgMode, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, orgerr.NewConfigError("initialising logger: " + err.Error())
	}
	return engine.New(cfg, logger), nil
}

// resolvedFormat returns the explicit --format flag value if the caller set
// one, else the config's default_format.
func resolvedFormat(cmd *cobra.Command, cfg *config.Config) string {
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		return v
	}
	return cfg.CLI.DefaultFormat
}

// Package main provides the kv CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/kv/internal/config"
	"github.com/matsen/kv/internal/kvstore"
	"github.com/matsen/kv/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// cfg is resolved once per invocation in PersistentPreRunE.
var cfg *config.Config

// errNoCommand is returned when kv is run without a verb.
var errNoCommand = errors.New("requires a command: get, set, or delete\nRun 'kv --help' for usage.")

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so argument errors are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kv",
	Short: "Persistent key-value store backed by a JSON file",
	Long: `kv stores string keys and string values in a single JSON file.

Every command loads the whole file, applies at most one change, and writes
the whole file back. A missing file is created empty on first use.

Examples:
  kv set --key user --value alice
  kv get --key user
  kv get
  kv delete --value alice

The database path and backend come from ~/.config/kv/config.yml or the
KV_DB_PATH and KV_BACKEND environment variables (a .env file is honored).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errNoCommand
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// setup loads .env and configuration and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if !cmd.HasParent() {
		return nil
	}

	loaded, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg = loaded

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	return nil
}

// mustOpenStore opens the configured repository, exits on error.
// The caller is responsible for calling Close() on the returned Repository.
func mustOpenStore() (*kvstore.Store, kvstore.Repository) {
	repo, err := kvstore.Open(cfg.Backend, cfg.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return kvstore.New(repo), repo
}

// optionalFlag returns a pointer to the flag value, or nil if the flag was not given.
func optionalFlag(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

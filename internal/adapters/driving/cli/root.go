// Package cli wires the cobra command tree. Commands talk to the core
// through the driving ports; package-level service factories let tests
// swap the wiring for fakes.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgfile "github.com/atticware/ghattic/internal/adapters/driven/config/file"
	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/logger"
)

// Build metadata, overridden via ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Persistent flags shared by all commands.
var (
	flagLogLevel  string
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "ghattic",
	Short: "Incremental GitHub issue and pull request backup",
	Long: `ghattic mirrors a repository's issues and pull requests into a local
directory of diff-friendly JSON files, one file per item.

The first run fetches everything; later runs only fetch items updated
since the last run, using per-kind cursors stored next to the records.
Interrupted runs are safe to re-run: the backup resumes from the last
checkpoint and record files are only ever replaced whole.

Examples:
  # Store a token once
  ghattic auth

  # Full backup, then incremental on every later run
  ghattic backup golang/go --dest ~/backups/golang-go

  # Inspect or discard the stored cursors
  ghattic state show --dest ~/backups/golang-go
  ghattic state reset --dest ~/backups/golang-go`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&flagLogLevel, "log-level", "", "Log verbosity: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(
		&flagConfigDir, "config-dir", "", "Configuration directory (default ~/.ghattic)")

	// Flag parse failures are usage errors, not internal ones.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrConfig, err)
	})
}

// Execute runs the command tree. The caller maps the returned error
// onto an exit code.
func Execute() error {
	return rootCmd.Execute()
}

// exactArgs wraps cobra's count check so wrong argument counts map
// onto the usage exit code like every other usage mistake.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrConfig, err)
		}
		return nil
	}
}

// settings loads the persisted defaults from the config directory.
// A missing config file is not an error, the settings are just empty.
func settings() (cfgfile.Settings, error) {
	store, err := cfgfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return cfgfile.Settings{}, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	return store.Settings(), nil
}

// newLogger builds the run logger. The --log-level flag wins over the
// configured default, which wins over info.
func newLogger(cfg cfgfile.Settings) (*zap.Logger, error) {
	level := flagLogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	if level == "" {
		level = "info"
	}

	log, err := logger.New(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	return log, nil
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	storefile "github.com/atticware/ghattic/internal/adapters/driven/storage/file"
	"github.com/atticware/ghattic/internal/core/domain"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the stored backup state",
	Long: `The backup state is a small JSON document at the destination root. It
records, per item kind, how far the last successful backup got, which
is what makes later runs incremental.

Examples:
  ghattic state show --dest ~/backups/golang-go
  ghattic state reset --dest ~/backups/golang-go --yes`,
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored cursors",
	RunE:  runStateShow,
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the backup state to force a full re-backup",
	Long: `Deletes state.json at the destination. Record files stay in place; the
next backup run re-fetches everything and rewrites only the files whose
content actually changed.

This is the recovery path for a corrupt state document.`,
	RunE: runStateReset,
}

// Flags for state.
var (
	stateDest     string
	stateResetYes bool
)

func init() {
	stateCmd.PersistentFlags().StringVarP(
		&stateDest, "dest", "d", "", "Destination directory of the backup")
	stateResetCmd.Flags().BoolVar(
		&stateResetYes, "yes", false, "Skip the confirmation prompt")

	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)
	rootCmd.AddCommand(stateCmd)
}

// stateStore resolves the destination directory and opens its state
// store. The --dest flag wins over the configured default.
func stateStore() (*storefile.StateStore, error) {
	dest := stateDest
	if dest == "" {
		cfg, err := settings()
		if err != nil {
			return nil, err
		}
		dest = cfg.Destination
	}
	if dest == "" {
		return nil, fmt.Errorf("%w: no destination directory, pass --dest or store one in the config file", domain.ErrConfig)
	}
	return storefile.NewStateStore(dest), nil
}

func runStateShow(cmd *cobra.Command, _ []string) error {
	store, err := stateStore()
	if err != nil {
		return err
	}

	state, err := store.Load(context.Background())
	if errors.Is(err, domain.ErrStateNotFound) {
		cmd.Printf("No backup state at %s.\n", store.Path())
		cmd.Println("The next backup run will be a full backup.")
		return nil
	}
	if err != nil {
		return err
	}

	cmd.Printf("Backup state %s (version %d)\n", store.Path(), state.Version)
	for _, kind := range domain.AllItemKinds() {
		if cursor, ok := state.Cursor(kind); ok {
			cmd.Printf("  %-7s cursor %s\n", kind.String()+":", cursor.UTC().Format(time.RFC3339))
		} else {
			cmd.Printf("  %-7s never completed a full pass\n", kind.String()+":")
		}
	}

	// Cursors of kinds this build does not walk are carried through
	// untouched; surface them rather than hiding them.
	var extra []domain.ItemKind
	for kind := range state.Cursors {
		if !kind.Valid() {
			extra = append(extra, kind)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, kind := range extra {
		cmd.Printf("  %-7s cursor %s (unknown kind, preserved)\n",
			kind.String()+":", state.Cursors[kind].UTC().Format(time.RFC3339))
	}

	return nil
}

func runStateReset(cmd *cobra.Command, _ []string) error {
	store, err := stateStore()
	if err != nil {
		return err
	}

	if !stateResetYes {
		cmd.Printf("Delete %s? The next run will re-fetch everything. [y/N]: ", store.Path())

		reader := bufio.NewReader(cmd.InOrStdin())
		input, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
		default:
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := store.Delete(context.Background()); err != nil {
		return err
	}

	cmd.Println("Backup state deleted. The next run will be a full backup.")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atticware/ghattic/internal/adapters/driven/auth"
	cfgfile "github.com/atticware/ghattic/internal/adapters/driven/config/file"
	storefile "github.com/atticware/ghattic/internal/adapters/driven/storage/file"
	"github.com/atticware/ghattic/internal/connectors/github"
	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
	"github.com/atticware/ghattic/internal/core/ports/driving"
	"github.com/atticware/ghattic/internal/core/services"
)

var backupCmd = &cobra.Command{
	Use:   "backup <owner>/<repo>",
	Short: "Mirror a repository's issues and pull requests to disk",
	Long: `Fetches every issue and pull request of the repository and writes each
one to its own JSON file under the destination directory:

  <dest>/issues/<number>.json
  <dest>/pulls/<number>.json
  <dest>/state.json

With existing state the run is incremental: only items updated since
the stored cursors are fetched, and files whose content is unchanged
are left untouched.

Examples:
  ghattic backup golang/go --dest ~/backups/golang-go
  ghattic backup https://github.com/golang/go -d ~/backups/golang-go
  ghattic backup golang/go -d ~/backups/golang-go --token ghp_xxx`,
	Args: exactArgs(1),
	RunE: runBackup,
}

// Flags for backup.
var (
	backupDest      string
	backupToken     string
	backupTokenFile string
)

// newBackup builds the backup service for one repository and
// destination. Tests swap it out.
var newBackup = func(repo *github.Config, dest string, tokens driven.TokenProvider, log *zap.Logger) driving.Backup {
	client := github.NewClient(tokens, log)
	source := github.NewSource(client, repo, log)
	records := storefile.NewRecordStore(dest)
	state := storefile.NewStateStore(dest)
	return services.NewBackup(source, records, state, log)
}

func init() {
	backupCmd.Flags().StringVarP(
		&backupDest, "dest", "d", "", "Destination directory for the backup")
	backupCmd.Flags().StringVar(
		&backupToken, "token", "", "Personal access token, overrides config and environment")
	backupCmd.Flags().StringVar(
		&backupTokenFile, "token-file", "", "File containing the personal access token")
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	repo, err := github.ParseRepo(args[0])
	if err != nil {
		return err
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	dest := backupDest
	if dest == "" {
		dest = cfg.Destination
	}
	if dest == "" {
		return fmt.Errorf("%w: no destination directory, pass --dest or store one in the config file", domain.ErrConfig)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is unactionable

	backup := newBackup(repo, dest, tokenChain(cfg), log)

	cmd.Printf("Backing up %s to %s\n", repo, dest)

	// Deliberately not cancellable by anything short of process
	// termination: a rate limit reset can be most of an hour away,
	// and an aborted run simply resumes from the last checkpoint.
	summary, err := backup.Run(context.Background())
	if err != nil {
		return err
	}

	printSummary(cmd, summary)
	return nil
}

// tokenChain builds the token resolution order: explicit flags first,
// then the config file, then the environment. File sources are only
// consulted when a path was actually configured, because an unreadable
// configured file is a hard error rather than a source to skip.
func tokenChain(cfg cfgfile.Settings) *auth.Chain {
	providers := []driven.TokenProvider{
		auth.NewStaticProvider(backupToken, "--token flag"),
	}
	if backupTokenFile != "" {
		providers = append(providers, auth.NewFileProvider(backupTokenFile, "--token-file flag"))
	}
	providers = append(providers, auth.NewStaticProvider(cfg.Token, "config file"))
	if cfg.TokenFile != "" {
		providers = append(providers, auth.NewFileProvider(cfg.TokenFile, "config token_file"))
	}
	providers = append(providers,
		auth.NewEnvProvider(auth.EnvToken),
		auth.NewEnvProvider(auth.EnvGitHubToken),
	)
	return auth.NewChain(providers...)
}

// printSummary writes the per-kind outcome of a finished run.
func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	cmd.Println("Backup complete.")
	for _, kind := range domain.AllItemKinds() {
		ks, ok := summary.Kinds[kind]
		if !ok {
			continue
		}

		cursor := "none"
		if !ks.Cursor.IsZero() {
			cursor = ks.Cursor.UTC().Format(time.RFC3339)
		}
		cmd.Printf("  %-7s %d fetched (%d new, %d updated), cursor %s\n",
			kind.String()+":", ks.Fetched, ks.Created, ks.Updated, cursor)
	}
	cmd.Printf("Took %s.\n", summary.Duration.Round(time.Millisecond))
}

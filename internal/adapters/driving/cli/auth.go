package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/atticware/ghattic/internal/adapters/driven/auth"
	cfgfile "github.com/atticware/ghattic/internal/adapters/driven/config/file"
	"github.com/atticware/ghattic/internal/connectors/github"
	"github.com/atticware/ghattic/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store the access token used to authenticate API calls",
	Long: `Prompts for a GitHub personal access token and stores it in the config
file, so backup runs no longer need --token or an environment variable.

The token is read without echo when run from a terminal. By default it
is verified against the API before being saved; --no-verify skips that,
for air-gapped setups or fine-grained tokens scoped away from the user
endpoint.

Examples:
  ghattic auth
  ghattic auth --token ghp_xxx --no-verify`,
	RunE: runAuth,
}

// Flags for auth.
var (
	authToken    string
	authNoVerify bool
)

// verifyToken checks the token against the API. Tests swap it out.
var verifyToken = func(ctx context.Context, token string, log *zap.Logger) error {
	client := github.NewClient(auth.NewStaticProvider(token, "auth command"), log)
	return client.ValidateCredentials(ctx)
}

func init() {
	authCmd.Flags().StringVar(
		&authToken, "token", "", "Personal access token, prompted for when omitted")
	authCmd.Flags().BoolVar(
		&authNoVerify, "no-verify", false, "Skip verifying the token against the API")
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, _ []string) error {
	store, err := cfgfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}

	token := strings.TrimSpace(authToken)
	if token == "" {
		token, err = promptToken(cmd)
		if err != nil {
			return err
		}
	}
	if token == "" {
		return fmt.Errorf("%w: nothing entered", domain.ErrTokenMissing)
	}

	if !looksLikeToken(token) {
		cmd.Println("Warning: this does not look like a GitHub token, storing it anyway.")
	}

	if !authNoVerify {
		log, err := newLogger(store.Settings())
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck // stderr sync failure is unactionable

		cmd.Println("Verifying token...")
		if err := verifyToken(context.Background(), token, log); err != nil {
			return fmt.Errorf("token verification failed: %w", err)
		}
		cmd.Println("Token accepted.")
	}

	cfg := store.Settings()
	cfg.Token = token
	cfg.TokenFile = ""
	if err := store.Store(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	cmd.Printf("Token saved to %s\n", store.Path())
	return nil
}

// promptToken reads the token from the command's input, without echo
// when that input is a terminal.
func promptToken(cmd *cobra.Command) (string, error) {
	cmd.Print("GitHub personal access token (input hidden): ")

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	// Piped input, plain line read.
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// looksLikeToken reports whether s has one of the shapes GitHub
// issues: a prefixed token (ghp_, github_pat_, ...) or the legacy 40
// character hex form. Only used for a warning, never to reject.
func looksLikeToken(s string) bool {
	for _, prefix := range []string{"ghp_", "gho_", "ghu_", "ghs_", "ghr_", "github_pat_"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

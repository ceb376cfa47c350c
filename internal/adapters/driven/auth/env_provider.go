package auth

import (
	"context"
	"os"
	"strings"

	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// Environment variables consulted for the access token, in chain order.
const (
	// EnvToken is the tool's own token variable.
	EnvToken = "GHATTIC_TOKEN"

	// EnvGitHubToken is the conventional variable shared with other
	// GitHub tooling.
	EnvGitHubToken = "GITHUB_TOKEN"
)

// Ensure EnvProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvProvider)(nil)

// EnvProvider reads the token from an environment variable. An unset
// or blank variable yields an empty token, letting a chain move on to
// the next source.
type EnvProvider struct {
	variable string
}

// NewEnvProvider creates a provider reading the named variable.
func NewEnvProvider(variable string) *EnvProvider {
	return &EnvProvider{variable: variable}
}

// Token returns the trimmed variable value, empty when unset.
func (p *EnvProvider) Token(_ context.Context) (string, error) {
	return strings.TrimSpace(os.Getenv(p.variable)), nil
}

// Source returns the provider's source label.
func (p *EnvProvider) Source() string {
	return "$" + p.variable
}

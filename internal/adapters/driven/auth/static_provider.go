package auth

import (
	"context"
	"strings"

	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// Ensure StaticProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticProvider)(nil)

// StaticProvider holds a token handed over directly, from a command
// line flag or the configuration file.
type StaticProvider struct {
	token  string
	source string
}

// NewStaticProvider creates a provider for an in-memory token. The
// source label says where the token came from, for logging.
func NewStaticProvider(token, source string) *StaticProvider {
	return &StaticProvider{
		token:  strings.TrimSpace(token),
		source: source,
	}
}

// Token returns the stored token.
func (p *StaticProvider) Token(_ context.Context) (string, error) {
	return p.token, nil
}

// Source returns the provider's source label.
func (p *StaticProvider) Source() string {
	return p.source
}

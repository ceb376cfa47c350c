package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// Ensure Chain implements the TokenProvider interface.
var _ driven.TokenProvider = (*Chain)(nil)

// Chain resolves the token from an ordered list of providers: the
// first one yielding a non-empty token wins. A provider error stops
// the chain immediately, since it means a source the user configured
// cannot deliver.
type Chain struct {
	providers []driven.TokenProvider

	mu     sync.Mutex
	winner string
}

// NewChain creates a chain over the given providers, consulted in order.
func NewChain(providers ...driven.TokenProvider) *Chain {
	return &Chain{providers: providers}
}

// Token walks the chain and returns the first non-empty token.
// Returns domain.ErrTokenMissing when every source comes up empty.
func (c *Chain) Token(ctx context.Context) (string, error) {
	for _, p := range c.providers {
		token, err := p.Token(ctx)
		if err != nil {
			return "", err
		}
		if token == "" {
			continue
		}

		c.mu.Lock()
		c.winner = p.Source()
		c.mu.Unlock()
		return token, nil
	}

	return "", fmt.Errorf("%w: pass --token, set %s or %s, or run \"ghattic auth\"",
		domain.ErrTokenMissing, EnvToken, EnvGitHubToken)
}

// Source returns the label of the provider that supplied the token,
// or "unresolved" before the first successful lookup.
func (c *Chain) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.winner == "" {
		return "unresolved"
	}
	return c.winner
}

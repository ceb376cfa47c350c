package github

import (
	"fmt"
	"strings"

	"github.com/atticware/ghattic/internal/core/domain"
)

// Config identifies the repository a Source mirrors.
type Config struct {
	// Owner is the user or organisation owning the repository.
	Owner string

	// Repo is the repository name.
	Repo string
}

// Repository argument prefixes stripped by ParseRepo, so a pasted
// browser URL works as well as the plain owner/repo form.
var repoPrefixes = []string{
	"https://github.com/",
	"http://github.com/",
	"github.com/",
	"github://",
}

// ParseRepo parses a repository argument into a Config. It accepts
// the plain "owner/repo" form and GitHub web URLs, with or without a
// trailing slash or .git suffix.
func ParseRepo(arg string) (*Config, error) {
	spec := strings.TrimSpace(arg)
	for _, prefix := range repoPrefixes {
		if strings.HasPrefix(spec, prefix) {
			spec = strings.TrimPrefix(spec, prefix)
			break
		}
	}
	spec = strings.TrimSuffix(spec, "/")
	spec = strings.TrimSuffix(spec, ".git")

	parts := strings.Split(spec, "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q is not of the form owner/repo", domain.ErrInvalidRepo, arg)
	}

	cfg := &Config{
		Owner: strings.TrimSpace(parts[0]),
		Repo:  strings.TrimSpace(parts[1]),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the owner and repository names are usable.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("%w: owner is empty", domain.ErrInvalidRepo)
	}
	if c.Repo == "" {
		return fmt.Errorf("%w: repository name is empty", domain.ErrInvalidRepo)
	}
	for _, part := range []string{c.Owner, c.Repo} {
		if strings.ContainsAny(part, " \t/") {
			return fmt.Errorf("%w: %q contains invalid characters", domain.ErrInvalidRepo, part)
		}
	}
	return nil
}

// String returns the owner/repo form.
func (c *Config) String() string {
	return c.Owner + "/" + c.Repo
}

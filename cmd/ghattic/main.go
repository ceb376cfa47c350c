package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atticware/ghattic/internal/adapters/driving/cli"
	"github.com/atticware/ghattic/internal/connectors/github"
	"github.com/atticware/ghattic/internal/core/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy onto the documented exit codes, so
// scripts and cron jobs can tell a bad invocation from a flaky API or
// a full disk.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfig), errors.Is(err, domain.ErrInvalidRepo):
		return 1
	case errors.Is(err, domain.ErrTokenMissing), github.IsUnauthorized(err):
		return 2
	case errors.Is(err, domain.ErrTransport),
		errors.Is(err, domain.ErrRateLimited),
		errors.Is(err, domain.ErrParse):
		return 3
	case errors.Is(err, domain.ErrStorage):
		return 4
	case errors.Is(err, domain.ErrStateCorrupt):
		return 5
	default:
		return 6
	}
}

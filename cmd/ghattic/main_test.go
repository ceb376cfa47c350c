package main

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/atticware/ghattic/internal/connectors/github"
	"github.com/atticware/ghattic/internal/core/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "config error",
			err:  fmt.Errorf("%w: no destination", domain.ErrConfig),
			want: 1,
		},
		{
			name: "invalid repo",
			err:  fmt.Errorf("%w: %q", domain.ErrInvalidRepo, "nope"),
			want: 1,
		},
		{
			name: "token missing",
			err:  domain.ErrTokenMissing,
			want: 2,
		},
		{
			name: "token rejected",
			err:  &github.APIError{StatusCode: 401, Message: "bad credentials"},
			want: 2,
		},
		{
			name: "transport",
			err:  &github.APIError{StatusCode: 502, Message: "bad gateway"},
			want: 3,
		},
		{
			name: "rate limited",
			err:  &github.RateLimitError{ResetAt: time.Now()},
			want: 3,
		},
		{
			name: "parse",
			err:  fmt.Errorf("backup issues: %w", domain.ErrParse),
			want: 3,
		},
		{
			name: "storage",
			err:  fmt.Errorf("%w: disk full", domain.ErrStorage),
			want: 4,
		},
		{
			name: "state corrupt",
			err:  fmt.Errorf("%w: version 99", domain.ErrStateCorrupt),
			want: 5,
		},
		{
			name: "unclassified",
			err:  errors.New("something else"),
			want: 6,
		},
		{
			name: "wrapped deep",
			err:  fmt.Errorf("backup pulls: %w", fmt.Errorf("store record: %w", domain.ErrStorage)),
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v68/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	// Waiting for a rate-limit reset happens between requests and is
	// not bounded by this.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of attempts for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries; it doubles on
	// each attempt.
	RetryDelay = time.Second

	// PerPage is the page size requested from list endpoints.
	PerPage = 100
)

// Client wraps the go-github client with the rate-limited transport
// used by the pager: every request waits on the rate budget, survives
// transient failures with bounded backoff, and absorbs one rate-limit
// exhaustion per call by suspending until the advertised reset.
type Client struct {
	gh            *gh.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	retryDelay    time.Duration
	log           *zap.Logger
}

// NewClient creates a GitHub API client with a token provider.
// The token is resolved lazily on first use.
func NewClient(tokenProvider driven.TokenProvider, log *zap.Logger) *Client {
	return &Client{
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
		retryDelay:    RetryDelay,
		log:           log,
	}
}

// NewClientWithHTTPClient creates a GitHub client with a custom
// http.Client, skipping token resolution. Used by tests.
func NewClientWithHTTPClient(httpClient *http.Client, log *zap.Logger) *Client {
	return &Client{
		gh:          gh.NewClient(httpClient),
		rateLimiter: NewRateLimiter(),
		retryDelay:  RetryDelay,
		log:         log,
	}
}

// ensureClient initialises the go-github client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.gh != nil {
		return nil
	}

	token, err := c.tokenProvider.Token(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	c.gh = gh.NewClient(tc)

	return nil
}

// GitHub returns the underlying go-github client.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// ListPage fetches one page of a list endpoint and returns the raw
// item bodies plus the next page number (0 when the response carries
// no further page link).
//
// The call blocks on the rate budget before sending. A rate-limit
// denial suspends until the advertised reset and retries the same
// request once, transparently; a second consecutive denial returns a
// RateLimitError. Transient failures (network errors, 5xx) are retried
// up to MaxRetries with doubling delay.
func (c *Client) ListPage(ctx context.Context, path string, query url.Values) ([]json.RawMessage, int, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, 0, err
	}

	u := path
	if len(query) > 0 {
		u = path + "?" + query.Encode()
	}

	var (
		waitedForReset bool
		attempt        int
		delay          = c.retryDelay
	)

	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := c.gh.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("build request %s: %w", path, err)
		}

		var items []json.RawMessage
		resp, err := c.gh.Do(ctx, req, &items)
		c.updateRateLimitFromResponse(resp)

		if err == nil {
			return items, resp.NextPage, nil
		}

		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}

		if isRateLimit(err) {
			if waitedForReset {
				// Reset instant passed but the server still says no.
				// Surface it instead of looping on a skewed clock.
				return nil, 0, c.wrapError(err, "list "+path)
			}
			waitedForReset = true
			if waitErr := c.waitRateLimit(ctx, err); waitErr != nil {
				return nil, 0, waitErr
			}
			continue
		}

		if isTransient(err) && attempt < MaxRetries-1 {
			attempt++
			c.log.Debug("transient failure, retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			continue
		}

		return nil, 0, c.wrapError(err, "list "+path)
	}
}

// waitRateLimit suspends until the server will accept requests again:
// the Retry-After duration for secondary limits, the advertised reset
// instant for the primary budget.
func (c *Client) waitRateLimit(ctx context.Context, cause error) error {
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(cause, &abuseErr) && abuseErr.RetryAfter != nil {
		c.log.Warn("secondary rate limit hit, waiting",
			zap.Duration("retry_after", *abuseErr.RetryAfter))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(*abuseErr.RetryAfter):
			return nil
		}
	}

	resetAt := c.rateLimiter.ResetTime()
	c.log.Warn("rate budget exhausted, waiting for reset",
		zap.Time("reset_at", resetAt),
		zap.Duration("wait", time.Until(resetAt)))
	return c.rateLimiter.WaitForReset(ctx)
}

// ValidateCredentials checks if the provided token is valid by making an API call.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return c.wrapError(err, "validate credentials")
	}

	c.updateRateLimitFromResponse(resp)
	return nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(cause error, operation string) error {
	if cause == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(cause, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(cause, &abuseErr) {
		resetAt := c.rateLimiter.ResetTime()
		if abuseErr.RetryAfter != nil {
			resetAt = time.Now().Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{
			ResetAt:   resetAt,
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(cause, &ghErr) {
		apiErr := &APIError{Message: ghErr.Message}
		if ghErr.Response != nil {
			apiErr.StatusCode = ghErr.Response.StatusCode
			if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
				apiErr.URL = ghErr.Response.Request.URL.String()
			}
		}
		return apiErr
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(cause, &syntaxErr) || errors.As(cause, &typeErr) || errors.Is(cause, io.ErrUnexpectedEOF) {
		// Truncated bodies decode to ErrUnexpectedEOF rather than a
		// syntax error; either way the payload is unusable.
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrParse, cause)
	}

	return fmt.Errorf("%s: %w: %w", operation, domain.ErrTransport, cause)
}

// isRateLimit reports whether the error is a primary or secondary
// rate-limit denial.
func isRateLimit(cause error) bool {
	var rateLimitErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	return errors.As(cause, &rateLimitErr) || errors.As(cause, &abuseErr)
}

// isTransient reports whether the error is worth a bounded retry:
// network-level failures and 5xx responses.
func isTransient(cause error) bool {
	var ghErr *gh.ErrorResponse
	if errors.As(cause, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode >= 500
	}

	var netErr net.Error
	return errors.As(cause, &netErr)
}

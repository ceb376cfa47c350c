package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// GitHubRateLimit is the authenticated rate limit (5000/hour).
	GitHubRateLimit = 5000

	// ProactiveRate is the proactive throttle rate (~1.2 req/sec = 4320/hr).
	ProactiveRate = 1.2

	// ResetSettleDelay is added after the advertised reset instant.
	// The server occasionally still reports an exhausted budget for a
	// second or two after the instant passes.
	ResetSettleDelay = 2 * time.Second

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter implements dual-strategy rate limiting for the GitHub API:
// a proactive token bucket paces requests below the hourly budget, and
// reactive tracking of the X-RateLimit-* headers suspends the caller
// when the server reports the budget exhausted.
//
// Each client owns its own RateLimiter; the rate budget is deliberately
// not process-global, so independent engines (and tests) never share
// state. The budget is transient, recomputed from live headers every
// run, never persisted.
type RateLimiter struct {
	mu          sync.Mutex
	remaining   int           // From API header
	limit       int           // From API header
	resetTime   time.Time     // From API header
	bucket      *rate.Limiter // Proactive throttling
	settleDelay time.Duration
}

// NewRateLimiter creates a new rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining:   GitHubRateLimit, // Assume full quota initially
		limit:       GitHubRateLimit,
		bucket:      rate.NewLimiter(rate.Limit(ProactiveRate), 1),
		settleDelay: ResetSettleDelay,
	}
}

// Wait blocks until it's safe to make a request.
// It uses both proactive throttling and reactive API limit checking:
// when the last response reported an exhausted budget, Wait suspends
// until the advertised reset instant has passed.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// 1. Token bucket (proactive throttling)
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	// 2. API budget (reactive)
	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining <= 0 && time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime) + r.settleDelay):
		}
	}

	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	// Unix timestamp
	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// Remaining returns the current remaining requests.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the rate limit.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the rate limit reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}

// WaitForReset waits until the rate limit resets, plus a short settle
// delay. Returns immediately when the reset instant has already passed.
func (r *RateLimiter) WaitForReset(ctx context.Context) error {
	r.mu.Lock()
	resetTime := r.resetTime
	r.mu.Unlock()

	if time.Now().After(resetTime) {
		return nil // Already reset
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Until(resetTime) + r.settleDelay):
		return nil
	}
}

package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func rateLimitResponse(remaining, limit int, reset time.Time) *http.Response {
	header := http.Header{}
	header.Set(HeaderRateRemaining, strconv.Itoa(remaining))
	header.Set(HeaderRateLimit, strconv.Itoa(limit))
	header.Set(HeaderRateReset, strconv.FormatInt(reset.Unix(), 10))
	return &http.Response{StatusCode: http.StatusOK, Header: header}
}

// TestRateLimiter_UpdateFromResponse tests header parsing
func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	limiter := NewRateLimiter()
	reset := time.Now().Add(30 * time.Minute)

	limiter.UpdateFromResponse(rateLimitResponse(42, 5000, reset))

	assert.Equal(t, 42, limiter.Remaining())
	assert.Equal(t, 5000, limiter.Limit())
	assert.Equal(t, reset.Unix(), limiter.ResetTime().Unix())
}

// TestRateLimiter_UpdateFromResponse_NilResponse tests nil safety
func TestRateLimiter_UpdateFromResponse_NilResponse(t *testing.T) {
	limiter := NewRateLimiter()

	limiter.UpdateFromResponse(nil)

	assert.Equal(t, GitHubRateLimit, limiter.Remaining())
	assert.Equal(t, GitHubRateLimit, limiter.Limit())
}

// TestRateLimiter_UpdateFromResponse_MalformedHeaders tests that garbage headers are ignored
func TestRateLimiter_UpdateFromResponse_MalformedHeaders(t *testing.T) {
	limiter := NewRateLimiter()
	header := http.Header{}
	header.Set(HeaderRateRemaining, "plenty")
	header.Set(HeaderRateLimit, "")
	header.Set(HeaderRateReset, "soon")

	limiter.UpdateFromResponse(&http.Response{StatusCode: http.StatusOK, Header: header})

	assert.Equal(t, GitHubRateLimit, limiter.Remaining())
	assert.Equal(t, GitHubRateLimit, limiter.Limit())
	assert.True(t, limiter.ResetTime().IsZero())
}

// TestRateLimiter_Wait_BudgetAvailable tests that Wait does not block with budget left
func TestRateLimiter_Wait_BudgetAvailable(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.bucket = rate.NewLimiter(rate.Inf, 1)
	limiter.UpdateFromResponse(rateLimitResponse(4000, 5000, time.Now().Add(time.Hour)))

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

// TestRateLimiter_Wait_SuspendsUntilReset tests suspension on an exhausted budget
func TestRateLimiter_Wait_SuspendsUntilReset(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.bucket = rate.NewLimiter(rate.Inf, 1)
	limiter.settleDelay = 0

	reset := time.Now().Add(1200 * time.Millisecond)
	limiter.UpdateFromResponse(rateLimitResponse(0, 5000, reset))

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))

	// Reset header granularity is whole seconds; resume must not be
	// early relative to the truncated instant.
	assert.False(t, time.Now().Before(time.Unix(reset.Unix(), 0)))
	assert.Greater(t, time.Since(start), 100*time.Millisecond)
}

// TestRateLimiter_Wait_ExhaustedButResetPassed tests no suspension once reset has passed
func TestRateLimiter_Wait_ExhaustedButResetPassed(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.bucket = rate.NewLimiter(rate.Inf, 1)
	limiter.settleDelay = 0
	limiter.UpdateFromResponse(rateLimitResponse(0, 5000, time.Now().Add(-time.Minute)))

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

// TestRateLimiter_Wait_ContextCancelled tests cancellation during suspension
func TestRateLimiter_Wait_ContextCancelled(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.bucket = rate.NewLimiter(rate.Inf, 1)
	limiter.settleDelay = 0
	limiter.UpdateFromResponse(rateLimitResponse(0, 5000, time.Now().Add(time.Hour)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestRateLimiter_WaitForReset tests the reset wait primitive
func TestRateLimiter_WaitForReset(t *testing.T) {
	t.Run("already reset", func(t *testing.T) {
		limiter := NewRateLimiter()
		limiter.settleDelay = 0
		limiter.UpdateFromResponse(rateLimitResponse(0, 5000, time.Now().Add(-time.Second)))

		start := time.Now()
		require.NoError(t, limiter.WaitForReset(context.Background()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("waits out the window", func(t *testing.T) {
		limiter := NewRateLimiter()
		limiter.settleDelay = 0
		reset := time.Now().Add(1200 * time.Millisecond)
		limiter.UpdateFromResponse(rateLimitResponse(0, 5000, reset))

		require.NoError(t, limiter.WaitForReset(context.Background()))
		assert.False(t, time.Now().Before(time.Unix(reset.Unix(), 0)))
	})

	t.Run("cancellable", func(t *testing.T) {
		limiter := NewRateLimiter()
		limiter.UpdateFromResponse(rateLimitResponse(0, 5000, time.Now().Add(time.Hour)))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, limiter.WaitForReset(ctx), context.Canceled)
	})
}

// Package github implements the rate-limited transport and pager for
// the GitHub REST API.
//
// The package streams the issues and pull requests of one repository
// as opaque JSON bodies: ghattic mirrors whatever fields the API
// provides and never re-shapes them.
//
// # Architecture
//
// The package comprises the following components:
//
//   - Client: the rate-limited transport; one authenticated GET at a
//     time with retry and suspension semantics
//   - RateLimiter: dual-strategy budget tracking shared by one client
//   - Source: the pager; implements [driven.ItemSource] by walking a
//     list endpoint page by page
//   - Config: identifies the mirrored repository
//
// # Authentication
//
// A personal access token (classic or fine-grained, created at
// github.com/settings/tokens) is attached to every request as a bearer
// token. Private repositories require the 'repo' scope. Authenticated
// requests get 5,000 API requests per hour; unauthenticated access is
// limited to 60 per hour and is not supported.
//
// # Rate Limiting
//
// The transport implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket limits requests to
//     approximately 1.2 requests per second, staying well under the
//     5,000/hour budget whilst maximising throughput.
//
//  2. Reactive handling: the transport monitors X-RateLimit-Remaining
//     and X-RateLimit-Reset on every response. When the budget is
//     exhausted it suspends until the reset instant, then retries the
//     request once, transparently. A second consecutive denial surfaces
//     a RateLimitError instead of looping.
//
// Secondary rate limits (abuse detection) honour the Retry-After header
// under the same once-per-call rule.
//
// # Pagination
//
// The Source walks list endpoints from page 1, following the parsed
// Link header until no next page remains or a page comes back empty.
// Items are streamed to the consumer in pagination order; the next
// page is fetched only after the previous one has been drained.
//
// # Incremental Sync
//
// Both endpoints are requested in ascending update order. The issues
// endpoint filters server-side via the since parameter; the pulls
// endpoint does not support since, so the Source discards items whose
// updated_at is strictly before the cursor. Items exactly at the
// cursor boundary are re-fetched on purpose: overwriting an unchanged
// record is byte-identical, losing one is not recoverable.
//
// The issues listing embeds pull requests as stub entries; the Source
// skips them there (they carry a pull_request marker) and mirrors them
// through the pulls walk instead.
//
// # Error Handling
//
// Failures surface through the backup taxonomy in the domain package:
//
//   - Rate limit denials beyond the single transparent retry:
//     RateLimitError, wrapping [domain.ErrRateLimited]
//   - Network errors and 5xx responses beyond MaxRetries, and any
//     other API error response: APIError or a wrapped
//     [domain.ErrTransport]
//   - Undecodable pages and items missing number/updated_at: a wrapped
//     [domain.ErrParse]; the walk never skips a malformed item
//
// # Limitations
//
//   - One repository per Source; multi-repository runs are a caller
//     concern
//   - Issue and pull-request comment threads are not fetched
//   - No webhook integration; every run is an explicit pull
//
// # Example Usage
//
//	cfg, _ := github.ParseRepo("golang/go")
//	client := github.NewClient(tokenProvider, log)
//	source := github.NewSource(client, cfg, log)
//
//	items, errs := source.Items(ctx, domain.KindIssues, since)
//	for item := range items {
//	    // Persist item
//	}
//	if err := <-errs; err != nil {
//	    return err
//	}
package github

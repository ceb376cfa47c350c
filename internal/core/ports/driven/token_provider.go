package driven

import "context"

// TokenProvider resolves the personal access token used to
// authenticate API calls. The transport attaches the token per
// request and never caches it beyond that.
type TokenProvider interface {
	// Token returns the access token.
	// Returns domain.ErrTokenMissing when none can be resolved.
	Token(ctx context.Context) (string, error)

	// Source describes where the token came from (flag, file, env,
	// config), for logging. Never includes the token itself.
	Source() string
}

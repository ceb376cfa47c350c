package domain

import "errors"

// The backup error taxonomy. These sentinels form a closed set the
// caller can exhaustively classify with errors.Is; richer detail types
// in the adapters unwrap to them. New failure kinds are deliberate
// additions here, not ad-hoc error strings.
var (
	// ErrTransport indicates a network or server failure that
	// survived the bounded retries. Aborts the current kind's walk;
	// cursors already checkpointed stay valid.
	ErrTransport = errors.New("transport failed")

	// ErrRateLimited indicates the API rate budget was exhausted
	// twice in a row for one request: the transport waited for the
	// advertised reset, retried once, and was denied again.
	ErrRateLimited = errors.New("rate limited")

	// ErrParse indicates a malformed API payload. The walk stops
	// rather than writing guessed records.
	ErrParse = errors.New("malformed API response")

	// ErrStorage indicates the destination is unwritable. The run
	// aborts entirely since the destination itself is compromised.
	ErrStorage = errors.New("destination storage failed")

	// ErrStateCorrupt indicates the state document exists but cannot
	// be used. The engine never guesses a cursor from a corrupt
	// document: a silent full re-backup could take hours and a
	// silently skipped one would mask data loss.
	ErrStateCorrupt = errors.New("backup state corrupt")

	// ErrStateNotFound indicates no state document exists yet.
	// Not a failure: the engine performs a full backup.
	ErrStateNotFound = errors.New("backup state not found")

	// ErrTokenMissing indicates no access token could be resolved
	// from flags, config, or environment.
	ErrTokenMissing = errors.New("no access token configured")

	// ErrInvalidRepo indicates the owner/repository argument is
	// malformed.
	ErrInvalidRepo = errors.New("invalid repository")

	// ErrConfig indicates the invocation itself is unusable: a flag
	// value that cannot be parsed, or required configuration that is
	// neither passed nor stored.
	ErrConfig = errors.New("invalid configuration")
)

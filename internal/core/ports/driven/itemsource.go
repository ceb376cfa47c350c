package driven

import (
	"context"
	"time"

	"github.com/atticware/ghattic/internal/core/domain"
)

// ItemSource streams items of one kind from the hosting API.
//
// Items returns a lazy, finite, forward-only sequence: each call starts
// a fresh pagination walk from the first page. Items arrive on the item
// channel in pagination order. The error channel delivers exactly one
// value when the walk ends: nil for clean exhaustion, otherwise the
// terminal error. Both channels are closed afterwards.
//
// A non-zero since restricts the walk to items whose last-modified
// timestamp is at or after the cursor. Implementations use server-side
// filtering where the endpoint supports it and filter client-side
// otherwise; either way, items strictly older than the cursor are never
// delivered.
type ItemSource interface {
	Items(ctx context.Context, kind domain.ItemKind, since time.Time) (<-chan domain.Item, <-chan error)
}

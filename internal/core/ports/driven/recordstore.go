package driven

import (
	"context"

	"github.com/atticware/ghattic/internal/core/domain"
)

// RecordStore persists one JSON file per item.
// Writes are atomic and idempotent: upserting an unchanged item leaves
// the file byte-identical.
type RecordStore interface {
	// Upsert writes the item's record file, replacing any previous
	// content for the same kind and number.
	Upsert(ctx context.Context, item domain.Item) error

	// Exists reports whether a record file exists for the item.
	Exists(ctx context.Context, kind domain.ItemKind, number int) (bool, error)
}

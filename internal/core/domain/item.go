package domain

import (
	"encoding/json"
	"time"
)

// ItemKind identifies one of the mirrored item types.
// The value doubles as the storage subdirectory name and as the
// cursor key inside the backup state document.
type ItemKind string

const (
	// KindIssues covers issue records from the issues listing.
	KindIssues ItemKind = "issues"
	// KindPulls covers pull-request records from the pulls listing.
	KindPulls ItemKind = "pulls"
)

// AllItemKinds returns the mirrored kinds in backup order:
// issues first, then pull requests.
func AllItemKinds() []ItemKind {
	return []ItemKind{KindIssues, KindPulls}
}

// Valid reports whether k is one of the known item kinds.
func (k ItemKind) Valid() bool {
	return k == KindIssues || k == KindPulls
}

// String returns the kind name.
func (k ItemKind) String() string {
	return string(k)
}

// Item is one issue or pull request fetched from the API.
// The body is kept opaque: ghattic mirrors whatever fields the API
// provides and never re-shapes them.
type Item struct {
	// Kind identifies which listing the item came from.
	Kind ItemKind

	// Number is the stable numeric identifier, unique within its
	// kind and repository and immutable once assigned by the API.
	Number int

	// UpdatedAt is the server-reported last-modified timestamp.
	// Non-decreasing across successive fetches of the same number,
	// though the API's time resolution may make it repeat exactly.
	UpdatedAt time.Time

	// Body is the item's full API representation.
	Body json.RawMessage
}

package driven

import (
	"context"

	"github.com/atticware/ghattic/internal/core/domain"
)

// StateStore persists the backup state document.
type StateStore interface {
	// Load reads the state document.
	// Returns domain.ErrStateNotFound when none exists yet, and an
	// error wrapping domain.ErrStateCorrupt when one exists but
	// cannot be used.
	Load(ctx context.Context) (*domain.BackupState, error)

	// Save writes the state document atomically.
	Save(ctx context.Context, state *domain.BackupState) error

	// Delete removes the state document. Deleting an absent document
	// is not an error: the next run simply starts from scratch.
	Delete(ctx context.Context) error
}

package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
// Load and Save exchange deep copies, so a caller mutating its state
// after a save cannot reach the stored document, the same isolation
// the file-backed store gets for free from serialisation.
type StateStore struct {
	mu    sync.Mutex
	state *domain.BackupState
}

// NewStateStore creates a new in-memory state store with no document.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Load returns a copy of the stored state document.
// Returns domain.ErrStateNotFound when none has been saved yet.
func (s *StateStore) Load(_ context.Context) (*domain.BackupState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil, fmt.Errorf("%w: nothing stored", domain.ErrStateNotFound)
	}
	return copyState(s.state), nil
}

// Save stores a copy of the state document.
func (s *StateStore) Save(_ context.Context, state *domain.BackupState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = copyState(state)
	return nil
}

// Delete removes the state document. Deleting an absent document is
// not an error.
func (s *StateStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}

// Cursor returns the stored cursor for kind, if a document exists and
// carries one.
func (s *StateStore) Cursor(kind domain.ItemKind) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return time.Time{}, false
	}
	return s.state.Cursor(kind)
}

// Seed replaces the stored document with one holding the given
// cursors, for test setup.
func (s *StateStore) Seed(cursors map[domain.ItemKind]time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.NewBackupState()
	for kind, at := range cursors {
		s.state.Cursors[kind] = at
	}
}

// copyState deep-copies a state document.
func copyState(state *domain.BackupState) *domain.BackupState {
	copied := domain.NewBackupState()
	copied.Version = state.Version
	for kind, at := range state.Cursors {
		copied.Cursors[kind] = at
	}
	return copied
}

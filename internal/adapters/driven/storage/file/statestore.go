package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// stateFileName is the checkpoint document at the destination root.
const stateFileName = "state.json"

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is a file-based implementation of driven.StateStore.
// The state lives in a single JSON document next to the record
// directories, versioned so older documents can be migrated and newer
// ones rejected instead of misread.
type StateStore struct {
	path string
}

// NewStateStore creates a state store for the destination directory.
func NewStateStore(root string) *StateStore {
	return &StateStore{path: filepath.Join(root, stateFileName)}
}

// stateDocument is the on-disk schema. Unknown top-level fields are
// ignored on load; cursor entries for kinds this build does not walk
// are carried through a load/save round trip untouched.
type stateDocument struct {
	Version int                           `json:"version"`
	Cursors map[domain.ItemKind]time.Time `json:"cursors"`

	// LastBackup is the single timestamp of the legacy version 1 and 2
	// documents. Never written by this release.
	LastBackup *time.Time `json:"last_backup,omitempty"`
}

// Load reads and, when necessary, migrates the state document.
func (s *StateStore) Load(_ context.Context) (*domain.BackupState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrStateNotFound, s.path)
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorage, s.path, err)
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrStateCorrupt, s.path, err)
	}
	if doc.Version > domain.StateVersion {
		return nil, fmt.Errorf("%w: %s has schema version %d, this build understands up to %d",
			domain.ErrStateCorrupt, s.path, doc.Version, domain.StateVersion)
	}

	state := domain.NewBackupState()
	switch {
	case doc.Version == domain.StateVersion:
		for kind, at := range doc.Cursors {
			state.Cursors[kind] = at.UTC()
		}
	case doc.LastBackup != nil:
		// Legacy documents tracked one timestamp for everything; seed
		// every kind's cursor from it.
		for _, kind := range domain.AllItemKinds() {
			state.Cursors[kind] = doc.LastBackup.UTC()
		}
	}
	return state, nil
}

// Save writes the state document atomically at the current schema
// version, whatever version was loaded.
func (s *StateStore) Save(_ context.Context, state *domain.BackupState) error {
	doc := stateDocument{
		Version: domain.StateVersion,
		Cursors: state.Cursors,
	}
	if doc.Cursors == nil {
		doc.Cursors = map[domain.ItemKind]time.Time{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: encode state: %w", domain.ErrStorage, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: create destination directory: %w", domain.ErrStorage, err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorage, s.path, err)
	}
	return nil
}

// Delete removes the state document if present.
func (s *StateStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %w", domain.ErrStorage, s.path, err)
	}
	return nil
}

// Path returns the state document's location.
func (s *StateStore) Path() string {
	return s.path
}

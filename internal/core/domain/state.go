package domain

import "time"

// StateVersion is the schema version written to new backup state
// documents. Versions 1 and 2 are legacy single-timestamp documents
// and are migrated on load; versions above StateVersion are rejected
// rather than guessed at.
const StateVersion = 3

// BackupState records, per item kind, the last successful sync point.
// It is exclusively owned by the backup engine: read once at startup,
// written only after a kind's full walk completes. It deliberately
// tracks no per-item bookkeeping: which items exist is answered by
// the record files themselves, the state only answers where to resume.
type BackupState struct {
	// Version is the schema marker for forward compatibility.
	Version int

	// Cursors maps each item kind to its sync cursor: fetch items
	// with last-modified at or after this instant. A missing entry
	// means the kind has never completed a full pass.
	Cursors map[ItemKind]time.Time
}

// NewBackupState returns an empty state at the current schema version.
func NewBackupState() *BackupState {
	return &BackupState{
		Version: StateVersion,
		Cursors: make(map[ItemKind]time.Time),
	}
}

// Cursor returns the stored cursor for kind and whether one exists.
func (s *BackupState) Cursor(kind ItemKind) (time.Time, bool) {
	t, ok := s.Cursors[kind]
	return t, ok
}

// Advance moves the cursor for kind forward to at. Cursors are
// monotonic: a value at or before the current cursor is ignored.
// Returns true when the cursor actually moved.
func (s *BackupState) Advance(kind ItemKind, at time.Time) bool {
	if at.IsZero() {
		return false
	}
	if cur, ok := s.Cursors[kind]; ok && !at.After(cur) {
		return false
	}
	if s.Cursors == nil {
		s.Cursors = make(map[ItemKind]time.Time)
	}
	s.Cursors[kind] = at
	return true
}

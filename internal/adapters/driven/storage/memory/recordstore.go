package memory

import (
	"context"
	"sync"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordKey identifies one stored record.
type RecordKey struct {
	Kind   domain.ItemKind
	Number int
}

// RecordStore is an in-memory implementation of driven.RecordStore.
// It backs tests that need a record sink without touching the
// filesystem; bodies are stored verbatim, not canonicalised.
type RecordStore struct {
	mu      sync.RWMutex
	records map[RecordKey][]byte
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[RecordKey][]byte),
	}
}

// Upsert stores a copy of the item's body under its kind and number.
func (s *RecordStore) Upsert(_ context.Context, item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[RecordKey{Kind: item.Kind, Number: item.Number}] = append([]byte(nil), item.Body...)
	return nil
}

// Exists reports whether a record is stored for the item.
func (s *RecordStore) Exists(_ context.Context, kind domain.ItemKind, number int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[RecordKey{Kind: kind, Number: number}]
	return ok, nil
}

// Body returns the stored body for one record, if any.
func (s *RecordStore) Body(kind domain.ItemKind, number int) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.records[RecordKey{Kind: kind, Number: number}]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), body...), true
}

// Len returns the number of stored records across all kinds.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/atticware/ghattic/internal/core/domain"
	"github.com/atticware/ghattic/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is a file-based implementation of driven.RecordStore.
// Each item lives at <root>/<kind>/<number>.json in canonical form,
// one directory per kind.
type RecordStore struct {
	root string
}

// NewRecordStore creates a record store rooted at the destination
// directory. The directory tree is created lazily on first write.
func NewRecordStore(root string) *RecordStore {
	return &RecordStore{root: root}
}

// Upsert writes the item's record file. The body is canonicalised
// first, so the same remote content always produces the same bytes;
// when the file already holds exactly those bytes nothing is written.
func (s *RecordStore) Upsert(_ context.Context, item domain.Item) error {
	canonical, err := canonicalJSON(item.Body)
	if err != nil {
		return fmt.Errorf("%w: encode %s %d: %w", domain.ErrStorage, item.Kind, item.Number, err)
	}

	path := s.recordPath(item.Kind, item.Number)

	// Skip the write when the file already holds these bytes. A read
	// failure here only disables the check; the write below replaces
	// whatever is in the way.
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, canonical) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: create %s directory: %w", domain.ErrStorage, item.Kind, err)
	}
	if err := writeFileAtomic(path, canonical, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorage, path, err)
	}
	return nil
}

// Exists reports whether a record file exists for the item.
func (s *RecordStore) Exists(_ context.Context, kind domain.ItemKind, number int) (bool, error) {
	_, err := os.Stat(s.recordPath(kind, number))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat %s %d: %w", domain.ErrStorage, kind, number, err)
}

// recordPath returns the file path for one item.
func (s *RecordStore) recordPath(kind domain.ItemKind, number int) string {
	return filepath.Join(s.root, kind.String(), strconv.Itoa(number)+".json")
}

// canonicalJSON re-encodes a JSON document deterministically: object
// keys sorted at every level, two-space indentation, no HTML escaping,
// trailing newline. Number literals pass through verbatim, so nothing
// is lost to float rounding.
func canonicalJSON(body json.RawMessage) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package file provides file-based implementations of driven port interfaces.
// These adapters persist backup data to the destination directory.
//
// Adapters:
//   - RecordStore: one canonical JSON file per issue or pull request
//   - StateStore: the versioned state.json sync checkpoint
//
// Both stores publish through a write-to-temp-then-rename step, so a
// crash mid-write never leaves a half-written file at its final path.
// Record files are canonicalised before writing: object keys sorted,
// two-space indentation, trailing newline. Rewriting an unchanged item
// is a no-op, which keeps the destination friendly to version control.
//
// A destination directory belongs to a single run at a time. The stores
// do no file locking; pointing two concurrent runs at the same
// directory is a caller error.
package file

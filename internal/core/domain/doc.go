// Package domain defines the core business entities for ghattic.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item: One issue or pull request, carried as opaque JSON
//   - ItemKind: The fixed enumeration of mirrored item types
//   - BackupState: Per-kind sync cursors plus a schema version
//   - RunSummary: What a backup run fetched, per kind
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

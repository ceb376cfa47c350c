// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ItemSource: Streams issues/pull requests from the hosting API
//   - RecordStore: Per-item JSON file persistence
//   - StateStore: Backup state (cursor) persistence
//   - TokenProvider: Access token resolution
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven

// Package file persists tool configuration to the local filesystem.
//
// Settings live in a TOML file under the user's config directory,
// ~/.ghattic/config.toml by default. The file may hold an access
// token, so it is written with owner-only permissions.
package file

// Package storage provides the persistent file stores that pkglint reads manifests from and
// flushes fixes into.
//
// # Overview
//
// The storage layer is deliberately small. Everything above it (the buffered session in
// pkg/mutablefs, the manifest resolver, the workspace loader) talks to one of two
// interfaces:
//
//   - Reader: ReadFile, Stat, Glob
//   - Writer: WriteFile, Mkdir
//
// Store composes both.
//
// # Backend Implementations
//
// FileSystemStore: the local disk. Writes fail when the parent directory does not exist;
// nothing is created implicitly.
//
//	store := storage.NewFileSystemStore(storage.DefaultConfig())
//
// MemoryStore: an in-memory tree with the same failure semantics as the disk. Used by tests
// and as the upper layer of OverlayStore.
//
//	store := storage.NewMemoryStore()
//	store.Put("/repo/package.json", []byte(`{"name":"root"}`))
//
// OverlayStore: reads fall through to a base Reader, writes land in memory. The CLI uses it
// for --dry-run so a fix run reports what it would write without touching disk.
//
// # Directory Semantics
//
// Mkdir with recursive=false requires the parent to exist. Creating a directory that
// already exists is not an error for either flag; creating one where a file exists is.
//
// # Related Packages
//
//   - pkg/mutablefs: buffered read-your-writes session over a Store
//   - pkg/manifest: manifest reading and node_modules resolution over a Reader
package storage

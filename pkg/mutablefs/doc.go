// Package mutablefs provides a buffered, read-your-writes view over a persistent store.
//
// # Overview
//
// Rule fixes never write to disk directly. They stage writes and directory creation in a
// Session; later reads through the same Session return the staged content. Nothing reaches
// the underlying storage.Store until Flush.
//
// # Flush Semantics
//
// Flush creates staged directories first, parents before children, and then writes staged
// files in path order. Every operation is attempted. When some fail, Flush returns a
// *FlushError naming each failing path; the operations that succeeded are not rolled back.
// Treat Flush as "commit what you can, report what failed".
//
// A write into a directory that neither exists in the store nor was staged with Mkdir
// fails at flush time, and the store shows no file at that path.
//
// # Usage Example
//
//	session := mutablefs.New(storage.NewFileSystemStore(storage.DefaultConfig()), nil)
//	_ = session.Mkdir("/repo/packages/new", mutablefs.MkdirOptions{Recursive: true})
//	_ = session.WriteJSON("/repo/packages/new/package.json", map[string]string{"name": "new"})
//
//	data, _ := session.ReadFile("/repo/packages/new/package.json") // staged content
//
//	if err := session.Flush(); err != nil {
//		var flushErr *mutablefs.FlushError
//		if errors.As(err, &flushErr) {
//			fmt.Println("failed:", flushErr.Paths())
//		}
//	}
//
// A Session is created per run and discarded after Flush; further writes return
// ErrSessionFlushed.
package mutablefs

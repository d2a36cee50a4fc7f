package storage

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"
)

// Reader is the read side of a store
type Reader interface {
	// ReadFile returns the full content of the file at path
	ReadFile(path string) ([]byte, error)
	// Stat describes the file or directory at path
	Stat(path string) (fs.FileInfo, error)
	// Glob returns the paths matching pattern, using filepath.Match syntax
	Glob(pattern string) ([]string, error)
}

// Writer is the write side of a store
type Writer interface {
	// WriteFile replaces the content of the file at path. The parent directory must exist.
	WriteFile(path string, data []byte) error
	// Mkdir creates the directory at path. Without recursive the parent must exist.
	Mkdir(path string, recursive bool) error
}

// Linker is implemented by stores whose paths may go through symbolic links
type Linker interface {
	// RealPath returns path with every symbolic link resolved
	RealPath(path string) (string, error)
}

// RealPath resolves the symbolic links in path when files is a Linker and only cleans it
// otherwise
func RealPath(files Reader, path string) (string, error) {
	if linker, ok := files.(Linker); ok {
		return linker.RealPath(path)
	}
	return filepath.Clean(path), nil
}

// Store is a persistent file store
type Store interface {
	Reader
	Writer
}

// Config for store backends
type Config struct {
	Type string // "filesystem" or "memory"

	// Filesystem config
	FileMode fs.FileMode
	DirMode  fs.FileMode
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Type:     "filesystem",
		FileMode: 0644,
		DirMode:  0755,
	}
}

// NewStore creates the store described by config
func NewStore(config Config) (Store, error) {
	switch config.Type {
	case "", "filesystem":
		return NewFileSystemStore(config), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.Type)
	}
}

// FileInfo is a static fs.FileInfo used by in-memory stores and staged entries
type FileInfo struct {
	FileName string
	FileSize int64
	Dir      bool
}

func (i FileInfo) Name() string       { return i.FileName }
func (i FileInfo) Size() int64        { return i.FileSize }
func (i FileInfo) ModTime() time.Time { return time.Time{} }
func (i FileInfo) IsDir() bool        { return i.Dir }
func (i FileInfo) Sys() any           { return nil }

func (i FileInfo) Mode() fs.FileMode {
	if i.Dir {
		return fs.ModeDir | 0755
	}
	return 0644
}

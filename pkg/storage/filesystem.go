package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystemStore implements the Store interface using the local filesystem
type FileSystemStore struct {
	fileMode fs.FileMode
	dirMode  fs.FileMode
}

// NewFileSystemStore creates a new filesystem-based store
func NewFileSystemStore(config Config) *FileSystemStore {
	defaults := DefaultConfig()
	if config.FileMode == 0 {
		config.FileMode = defaults.FileMode
	}
	if config.DirMode == 0 {
		config.DirMode = defaults.DirMode
	}
	return &FileSystemStore{fileMode: config.FileMode, dirMode: config.DirMode}
}

// ReadFile implements Reader.ReadFile
func (s *FileSystemStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat implements Reader.Stat
func (s *FileSystemStore) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Glob implements Reader.Glob
func (s *FileSystemStore) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// RealPath implements Linker.RealPath
func (s *FileSystemStore) RealPath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// WriteFile implements Writer.WriteFile
func (s *FileSystemStore) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, s.fileMode)
}

// Mkdir implements Writer.Mkdir
func (s *FileSystemStore) Mkdir(path string, recursive bool) error {
	if recursive {
		return os.MkdirAll(path, s.dirMode)
	}

	err := os.Mkdir(path, s.dirMode)
	if errors.Is(err, fs.ErrExist) {
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return nil
		}
	}
	return err
}

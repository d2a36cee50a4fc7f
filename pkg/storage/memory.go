package storage

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
)

var errIsDir = errors.New("is a directory")

// MemoryStore is an in-memory Store with the failure semantics of a real disk
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store. Filesystem roots always exist.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

// Put writes data at path, creating every missing parent directory
func (s *MemoryStore) Put(path string, data []byte) {
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mkdirAllLocked(filepath.Dir(path))
	s.files[path] = append([]byte(nil), data...)
}

// Paths returns every file path in the store, sorted
func (s *MemoryStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ReadFile implements Reader.ReadFile
func (s *MemoryStore) ReadFile(path string) ([]byte, error) {
	path = filepath.Clean(path)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.isDirLocked(path) {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errIsDir}
	}
	data, ok := s.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// Stat implements Reader.Stat
func (s *MemoryStore) Stat(path string) (fs.FileInfo, error) {
	path = filepath.Clean(path)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.isDirLocked(path) {
		return FileInfo{FileName: filepath.Base(path), Dir: true}, nil
	}
	if data, ok := s.files[path]; ok {
		return FileInfo{FileName: filepath.Base(path), FileSize: int64(len(data))}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

// Glob implements Reader.Glob
func (s *MemoryStore) Glob(pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []string
	for p := range s.files {
		if ok, _ := filepath.Match(pattern, p); ok {
			matches = append(matches, p)
		}
	}
	for p := range s.dirs {
		if ok, _ := filepath.Match(pattern, p); ok {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// WriteFile implements Writer.WriteFile
func (s *MemoryStore) WriteFile(path string, data []byte) error {
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isDirLocked(path) {
		return &fs.PathError{Op: "open", Path: path, Err: errIsDir}
	}
	if !s.isDirLocked(filepath.Dir(path)) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	s.files[path] = append([]byte(nil), data...)
	return nil
}

// Mkdir implements Writer.Mkdir
func (s *MemoryStore) Mkdir(path string, recursive bool) error {
	path = filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mkdirLocked(path, recursive, s.isDirLocked)
}

// mkdirLocked creates path. exists reports whether a directory is already present, which
// lets OverlayStore consult its base layer.
func (s *MemoryStore) mkdirLocked(path string, recursive bool, exists func(string) bool) error {
	if exists(path) {
		return nil
	}
	if _, ok := s.files[path]; ok {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}

	parent := filepath.Dir(path)
	if !exists(parent) {
		if !recursive {
			return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrNotExist}
		}
		if err := s.mkdirLocked(parent, true, exists); err != nil {
			return err
		}
	}
	s.dirs[path] = struct{}{}
	return nil
}

func (s *MemoryStore) mkdirAllLocked(path string) {
	for !s.isDirLocked(path) {
		s.dirs[path] = struct{}{}
		path = filepath.Dir(path)
	}
}

func (s *MemoryStore) isDirLocked(path string) bool {
	if filepath.Dir(path) == path {
		return true
	}
	_, ok := s.dirs[path]
	return ok
}

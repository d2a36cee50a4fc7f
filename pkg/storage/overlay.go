package storage

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// OverlayStore reads through to a base Reader and keeps every write in memory
type OverlayStore struct {
	base  Reader
	upper *MemoryStore
}

// NewOverlayStore creates an overlay on top of base
func NewOverlayStore(base Reader) *OverlayStore {
	return &OverlayStore{base: base, upper: NewMemoryStore()}
}

// Written returns the paths written to the overlay, sorted
func (s *OverlayStore) Written() []string {
	return s.upper.Paths()
}

// ReadFile implements Reader.ReadFile
func (s *OverlayStore) ReadFile(path string) ([]byte, error) {
	if data, err := s.upper.ReadFile(path); err == nil {
		return data, nil
	}
	return s.base.ReadFile(path)
}

// Stat implements Reader.Stat
func (s *OverlayStore) Stat(path string) (fs.FileInfo, error) {
	if info, err := s.upper.Stat(path); err == nil {
		return info, nil
	}
	return s.base.Stat(path)
}

// Glob implements Reader.Glob
func (s *OverlayStore) Glob(pattern string) ([]string, error) {
	upper, err := s.upper.Glob(pattern)
	if err != nil {
		return nil, err
	}
	base, err := s.base.Glob(pattern)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(upper)+len(base))
	matches := make([]string, 0, len(upper)+len(base))
	for _, p := range append(upper, base...) {
		if !seen[p] {
			seen[p] = true
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// RealPath implements Linker.RealPath. Paths created in the overlay are never links.
func (s *OverlayStore) RealPath(path string) (string, error) {
	if _, err := s.upper.Stat(path); err == nil {
		return filepath.Clean(path), nil
	}
	return RealPath(s.base, path)
}

// WriteFile implements Writer.WriteFile
func (s *OverlayStore) WriteFile(path string, data []byte) error {
	path = filepath.Clean(path)

	s.upper.mu.Lock()
	defer s.upper.mu.Unlock()

	if s.isDirLocked(path) {
		return &fs.PathError{Op: "open", Path: path, Err: errIsDir}
	}
	if !s.isDirLocked(filepath.Dir(path)) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	s.upper.files[path] = append([]byte(nil), data...)
	return nil
}

// Mkdir implements Writer.Mkdir
func (s *OverlayStore) Mkdir(path string, recursive bool) error {
	path = filepath.Clean(path)

	s.upper.mu.Lock()
	defer s.upper.mu.Unlock()

	if info, err := s.base.Stat(path); err == nil && !info.IsDir() {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	return s.upper.mkdirLocked(path, recursive, s.isDirLocked)
}

func (s *OverlayStore) isDirLocked(path string) bool {
	if s.upper.isDirLocked(path) {
		return true
	}
	info, err := s.base.Stat(path)
	return err == nil && info.IsDir()
}

package mutablefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/pkglint/pkg/manifest"
	"github.com/platinummonkey/pkglint/pkg/storage"
)

// DefaultReadCacheSize is the number of persisted files a session keeps in memory
const DefaultReadCacheSize = 512

// ErrSessionFlushed is returned by any mutation after Flush
var ErrSessionFlushed = errors.New("session already flushed")

// Options configures a Session
type Options struct {
	ReadCacheSize int
	Logger        *logrus.Logger
}

// MkdirOptions configures a staged directory creation
type MkdirOptions struct {
	Recursive bool
}

// Session stages writes and directory creation over a store until Flush. Reads through
// the session see staged content. A Session is not safe for concurrent use.
type Session struct {
	store   storage.Store
	files   map[string][]byte
	dirs    map[string]bool
	cache   *lru.Cache[string, []byte]
	flushed bool
	log     *logrus.Logger
}

// New creates a session over store
func New(store storage.Store, opts *Options) *Session {
	if opts == nil {
		opts = &Options{}
	}
	size := opts.ReadCacheSize
	if size <= 0 {
		size = DefaultReadCacheSize
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}

	// only fails for a non-positive size
	cache, _ := lru.New[string, []byte](size)

	return &Session{
		store: store,
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		cache: cache,
		log:   log,
	}
}

// WriteFile stages content for path. The last write to a path wins.
func (s *Session) WriteFile(path string, content []byte) error {
	if s.flushed {
		return ErrSessionFlushed
	}
	path = filepath.Clean(path)
	s.files[path] = append([]byte(nil), content...)
	s.cache.Remove(path)
	s.log.WithField("path", path).Debug("staged write")
	return nil
}

// WriteJSON encodes value with two-space indentation and stages it for path
func (s *Session) WriteJSON(path string, value any) error {
	data, err := manifest.MarshalIndent(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return s.WriteFile(path, data)
}

// Mkdir stages creation of the directory at path
func (s *Session) Mkdir(path string, opts MkdirOptions) error {
	if s.flushed {
		return ErrSessionFlushed
	}
	path = filepath.Clean(path)
	s.dirs[path] = s.dirs[path] || opts.Recursive
	s.log.WithFields(logrus.Fields{"path": path, "recursive": opts.Recursive}).Debug("staged mkdir")
	return nil
}

// ReadFile returns a copy of the staged content for path or, when nothing is staged, of
// the persisted content
func (s *Session) ReadFile(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if data, ok := s.files[path]; ok {
		return bytes.Clone(data), nil
	}
	if data, ok := s.cache.Get(path); ok {
		return bytes.Clone(data), nil
	}

	data, err := s.store.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s.cache.Add(path, data)
	return bytes.Clone(data), nil
}

// ReadJSON reads path and decodes it into v
func (s *Session) ReadJSON(path string, v any) error {
	data, err := s.ReadFile(path)
	if err != nil {
		return err
	}
	return decodeJSON(data, v)
}

// Stat describes path, taking staged files and directories into account
func (s *Session) Stat(path string) (fs.FileInfo, error) {
	path = filepath.Clean(path)
	if data, ok := s.files[path]; ok {
		return storage.FileInfo{FileName: filepath.Base(path), FileSize: int64(len(data))}, nil
	}
	if s.stagedDir(path) {
		return storage.FileInfo{FileName: filepath.Base(path), Dir: true}, nil
	}
	return s.store.Stat(path)
}

// RealPath resolves symbolic links in path through the store. Staged paths are returned
// cleaned.
func (s *Session) RealPath(path string) (string, error) {
	path = filepath.Clean(path)
	if _, ok := s.files[path]; ok || s.stagedDir(path) {
		return path, nil
	}
	return storage.RealPath(s.store, path)
}

// Exists reports whether path exists in the session view
func (s *Session) Exists(path string) bool {
	_, err := s.Stat(path)
	return err == nil
}

// Glob matches pattern against the store and the staged entries
func (s *Session) Glob(pattern string) ([]string, error) {
	matches, err := s.store.Glob(pattern)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		seen[m] = true
	}
	for _, staged := range append(sortedKeys(s.files), sortedKeys(s.dirs)...) {
		if ok, _ := filepath.Match(pattern, staged); ok && !seen[staged] {
			seen[staged] = true
			matches = append(matches, staged)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// Pending returns the staged file paths in flush order
func (s *Session) Pending() []string {
	return sortedKeys(s.files)
}

// PendingDirs returns the staged directories in flush order
func (s *Session) PendingDirs() []string {
	return sortedKeys(s.dirs)
}

// Flush commits staged directories and then staged files to the store. Every operation is
// attempted; the ones that fail are reported together in a *FlushError. Operations that
// succeeded stay committed. The session cannot be used for writes afterwards.
func (s *Session) Flush() error {
	if s.flushed {
		return ErrSessionFlushed
	}
	s.flushed = true

	var failures []*fs.PathError
	dirs := s.PendingDirs()
	for _, dir := range dirs {
		if err := s.store.Mkdir(dir, s.dirs[dir]); err != nil {
			failures = append(failures, &fs.PathError{Op: "mkdir", Path: dir, Err: err})
		}
	}

	files := s.Pending()
	for _, path := range files {
		if err := s.store.WriteFile(path, s.files[path]); err != nil {
			failures = append(failures, &fs.PathError{Op: "write", Path: path, Err: err})
		}
	}

	s.log.WithFields(logrus.Fields{
		"dirs":     len(dirs),
		"files":    len(files),
		"failures": len(failures),
	}).Debug("flushed session")

	if len(failures) > 0 {
		return &FlushError{Failures: failures, Attempted: len(dirs) + len(files)}
	}
	return nil
}

// stagedDir reports whether path is a staged directory or the ancestor of a recursively
// staged one
func (s *Session) stagedDir(path string) bool {
	if _, ok := s.dirs[path]; ok {
		return true
	}
	prefix := path + string(filepath.Separator)
	for dir, recursive := range s.dirs {
		if recursive && strings.HasPrefix(dir, prefix) {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

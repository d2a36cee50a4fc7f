package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/platinummonkey/pkglint/pkg/manifest"
	"github.com/platinummonkey/pkglint/pkg/storage"
)

// ErrNoWorkspaceRoot is returned when no manifest declaring workspaces is found
var ErrNoWorkspaceRoot = errors.New("no workspace root found")

// Package is one package of the workspace
type Package struct {
	Name         string
	Dir          string
	ManifestPath string
	Manifest     *manifest.Manifest
}

// Workspace is the root package and every member package
type Workspace struct {
	RootDir  string
	Root     *Package
	Packages []*Package
}

// All returns the root followed by the member packages
func (w *Workspace) All() []*Package {
	return append([]*Package{w.Root}, w.Packages...)
}

// Find returns the package named name
func (w *Workspace) Find(name string) (*Package, bool) {
	for _, pkg := range w.All() {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return nil, false
}

// FindRoot walks up from startDir to the first directory whose package.json declares
// workspaces
func FindRoot(files storage.Reader, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	resolver := manifest.NewResolver(files)

	for {
		path := filepath.Join(dir, manifest.FileName)
		if _, err := files.Stat(path); err == nil {
			m, err := resolver.ReadManifest(path)
			if err != nil {
				return "", err
			}
			if len(m.Workspaces) > 0 {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w above %s", ErrNoWorkspaceRoot, startDir)
		}
		dir = parent
	}
}

// Load reads the root manifest in rootDir and every package matched by patterns. When
// patterns is empty the root manifest's workspaces are used. Packages are sorted by
// directory and package names must be unique.
func Load(files storage.Reader, rootDir string, patterns []string) (*Workspace, error) {
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}
	resolver := manifest.NewResolver(files)

	root, err := loadPackage(resolver, rootDir)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		patterns = root.Manifest.Workspaces
	}

	dirs := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := files.Glob(filepath.Join(rootDir, filepath.FromSlash(pattern), manifest.FileName))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			dir := filepath.Dir(match)
			if dir != rootDir {
				dirs[dir] = true
			}
		}
	}

	sorted := make([]string, 0, len(dirs))
	for dir := range dirs {
		sorted = append(sorted, dir)
	}
	sort.Strings(sorted)

	ws := &Workspace{RootDir: rootDir, Root: root}
	byName := map[string]string{root.Name: root.Dir}
	for _, dir := range sorted {
		pkg, err := loadPackage(resolver, dir)
		if err != nil {
			return nil, err
		}
		if other, ok := byName[pkg.Name]; ok && pkg.Name != "" {
			return nil, fmt.Errorf("duplicate package name %q in %s and %s", pkg.Name, other, pkg.Dir)
		}
		byName[pkg.Name] = pkg.Dir
		ws.Packages = append(ws.Packages, pkg)
	}

	return ws, nil
}

func loadPackage(resolver *manifest.Resolver, dir string) (*Package, error) {
	path := filepath.Join(dir, manifest.FileName)
	m, err := resolver.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return &Package{Name: m.Name, Dir: dir, ManifestPath: path, Manifest: m}, nil
}

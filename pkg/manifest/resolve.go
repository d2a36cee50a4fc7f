package manifest

import (
	"path/filepath"

	"github.com/platinummonkey/pkglint/pkg/storage"
)

// InstallDir is the directory installed dependencies live in
const InstallDir = "node_modules"

// Resolver reads manifests and locates the manifests of installed dependencies
type Resolver struct {
	files storage.Reader
}

// NewResolver creates a resolver reading through files
func NewResolver(files storage.Reader) *Resolver {
	return &Resolver{files: files}
}

// ReadManifest reads and parses the manifest at path
func (r *Resolver) ReadManifest(path string) (*Manifest, error) {
	data, err := r.files.ReadFile(path)
	if err != nil {
		return nil, &ManifestResolutionError{Path: path, Err: err}
	}
	m, err := Parse(data)
	if err != nil {
		return nil, &ManifestResolutionError{Path: path, Err: err}
	}
	return m, nil
}

// RealPath resolves symbolic links in path, so a workspace package linked into
// node_modules and its source directory share one manifest path
func (r *Resolver) RealPath(path string) (string, error) {
	real, err := storage.RealPath(r.files, path)
	if err != nil {
		return "", &ManifestResolutionError{Path: path, Err: err}
	}
	return real, nil
}

// ResolveDependency finds the manifest of dependency as seen from packageDir. It looks in
// packageDir/node_modules first and then in the node_modules of every ancestor, skipping
// directories that are themselves node_modules.
func (r *Resolver) ResolveDependency(fromPackage, dependency, packageDir string) (string, error) {
	if dependency == "" {
		return "", &DependencyNotFoundError{Package: fromPackage, Dependency: dependency, SearchedFrom: packageDir}
	}

	dir := filepath.Clean(packageDir)
	for {
		if filepath.Base(dir) != InstallDir {
			candidate := filepath.Join(dir, InstallDir, filepath.FromSlash(dependency), FileName)
			if info, err := r.files.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &DependencyNotFoundError{Package: fromPackage, Dependency: dependency, SearchedFrom: packageDir}
}

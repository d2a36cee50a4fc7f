package manifest

import "fmt"

// ManifestResolutionError reports a manifest that could not be read or parsed
type ManifestResolutionError struct {
	Path string
	Err  error
}

func (e *ManifestResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestResolutionError) Unwrap() error {
	return e.Err
}

// DependencyNotFoundError reports a declared dependency whose manifest could not be located
type DependencyNotFoundError struct {
	Package      string
	Dependency   string
	SearchedFrom string
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("package %q depends on %q but no manifest for it was found above %s",
		e.Package, e.Dependency, e.SearchedFrom)
}

package linter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/pkglint/pkg/dependencies"
	"github.com/platinummonkey/pkglint/pkg/manifest"
	"github.com/platinummonkey/pkglint/pkg/mutablefs"
	"github.com/platinummonkey/pkglint/pkg/workspace"
)

// Failure is a violation reported by a rule
type Failure struct {
	Rule    string `json:"rule"`
	Package string `json:"package"`
	File    string `json:"file"`
	Message string `json:"message"`
	// LongMessage is an optional detail, such as an import path
	LongMessage string `json:"longMessage,omitempty"`
	// Fixed is set when a fix for the violation was staged
	Fixed bool `json:"fixed"`
}

// Context is what a rule sees while checking one package
type Context struct {
	Package   *workspace.Package
	Workspace *workspace.Workspace
	// Fix is set when rules should stage fixes
	Fix bool
	// Files is the run's buffered file system; writes are flushed at the end of a fix run
	Files *mutablefs.Session
	Log   *logrus.Entry

	rule string
	run  *run
}

// AddError records a failure. Rule, Package and File default to the current rule and
// package.
func (c *Context) AddError(f Failure) {
	if f.Rule == "" {
		f.Rule = c.rule
	}
	if f.Package == "" {
		f.Package = c.Package.Name
	}
	if f.File == "" {
		f.File = c.Package.ManifestPath
	}
	c.run.failures = append(c.run.failures, f)
	c.run.metrics.RecordFailure(f.Rule, f.Fixed)
}

// ReadManifest reads the package manifest through the session so fixes staged by earlier
// rules are visible
func (c *Context) ReadManifest() (*manifest.Manifest, error) {
	return c.run.resolver.ReadManifest(c.Package.ManifestPath)
}

// UpdateManifest applies fn to the current manifest and stages the result
func (c *Context) UpdateManifest(fn func(m *manifest.Manifest)) error {
	m, err := c.ReadManifest()
	if err != nil {
		return err
	}
	fn(m)

	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.Package.ManifestPath, err)
	}
	if err := c.Files.WriteFile(c.Package.ManifestPath, data); err != nil {
		return err
	}

	// staged edits may change edges
	clear(c.run.graphs)
	return nil
}

// Graph returns the dependency graph rooted at the package. Graphs are built once per
// package and run unless a manifest is updated in between.
func (c *Context) Graph() (*dependencies.Node, error) {
	path := c.Package.ManifestPath
	if root, ok := c.run.graphs[path]; ok {
		return root, nil
	}

	root, err := c.run.builder.BuildDependencyGraph(path)
	if err != nil {
		return nil, err
	}

	nodes := 0
	for range dependencies.Traverse(root, dependencies.TraverseOptions{}) {
		nodes++
	}
	c.run.metrics.RecordGraph(nodes)

	c.run.graphs[path] = root
	return root, nil
}

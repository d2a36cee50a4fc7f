package dependencies

import (
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/pkglint/pkg/manifest"
)

// Paths locates a node on disk
type Paths struct {
	ManifestPath  string
	RootDirectory string
}

// Node represents one resolved package in the dependency graph
type Node struct {
	Manifest     *manifest.Manifest
	Dependencies *NodeMap
	Paths        Paths
}

// Name returns the package name from the manifest
func (n *Node) Name() string {
	return n.Manifest.Name
}

// Key identifies a node by name and version for display
func (n *Node) Key() string {
	return packageVersionKey(n.Manifest.Name, n.Manifest.Version)
}

// NodeMap maps dependency names to nodes, keeping declaration order
type NodeMap struct {
	names []string
	nodes map[string]*Node
}

func newNodeMap() *NodeMap {
	return &NodeMap{nodes: make(map[string]*Node)}
}

// Get returns the node stored under name
func (m *NodeMap) Get(name string) (*Node, bool) {
	n, ok := m.nodes[name]
	return n, ok
}

// Len returns the number of dependencies
func (m *NodeMap) Len() int {
	return len(m.names)
}

// Names returns the dependency names in declaration order
func (m *NodeMap) Names() []string {
	return slices.Clone(m.names)
}

// All iterates name/node pairs in declaration order
func (m *NodeMap) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		for _, name := range m.names {
			if !yield(name, m.nodes[name]) {
				return
			}
		}
	}
}

func (m *NodeMap) set(name string, node *Node) {
	if _, ok := m.nodes[name]; !ok {
		m.names = append(m.names, name)
	}
	m.nodes[name] = node
}

// ManifestResolver reads manifests and locates dependency manifests. *manifest.Resolver
// implements it.
type ManifestResolver interface {
	ReadManifest(path string) (*manifest.Manifest, error)
	RealPath(path string) (string, error)
	ResolveDependency(fromPackage, dependency, packageDir string) (string, error)
}

// Builder builds dependency graphs from manifests
type Builder struct {
	resolver ManifestResolver
	log      *logrus.Logger
}

// NewBuilder creates a new graph builder
func NewBuilder(resolver ManifestResolver, log *logrus.Logger) *Builder {
	if log == nil {
		log = logrus.New()
	}
	return &Builder{resolver: resolver, log: log}
}

// registry holds the nodes built by a single BuildDependencyGraph call, keyed by manifest
// path
type registry map[string]*Node

// BuildDependencyGraph resolves the manifest at startManifestPath and, depth first, every
// manifest reachable through its dependencies. Only the dependencies map contributes
// edges. Each manifest path yields exactly one node per call, so diamonds share a node and
// cycles terminate.
func (b *Builder) BuildDependencyGraph(startManifestPath string) (*Node, error) {
	path, err := filepath.Abs(startManifestPath)
	if err != nil {
		return nil, &manifest.ManifestResolutionError{Path: startManifestPath, Err: err}
	}

	nodes := make(registry)
	root, err := b.build(nodes, path)
	if err != nil {
		return nil, err
	}

	b.log.WithFields(logrus.Fields{
		"root":  root.Key(),
		"nodes": len(nodes),
	}).Debug("built dependency graph")
	return root, nil
}

func (b *Builder) build(nodes registry, manifestPath string) (*Node, error) {
	// keyed by real path so a linked workspace package is one node
	manifestPath, err := b.resolver.RealPath(manifestPath)
	if err != nil {
		return nil, err
	}
	if node, ok := nodes[manifestPath]; ok {
		return node, nil
	}

	m, err := b.resolver.ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	node := &Node{
		Manifest:     m,
		Dependencies: newNodeMap(),
		Paths: Paths{
			ManifestPath:  manifestPath,
			RootDirectory: filepath.Dir(manifestPath),
		},
	}
	// Registered before recursing so a cycle back to this manifest finds it.
	nodes[manifestPath] = node

	for _, name := range m.Dependencies.Names() {
		depPath, err := b.resolver.ResolveDependency(m.Name, name, node.Paths.RootDirectory)
		if err != nil {
			return nil, err
		}
		child, err := b.build(nodes, depPath)
		if err != nil {
			return nil, err
		}
		node.Dependencies.set(name, child)
	}

	return node, nil
}

// Cycles returns the cycles closed by back edges of a depth-first walk from root. Each
// cycle starts and ends with the same node. A graph without cycles yields none.
func Cycles(root *Node) [][]*Node {
	var cycles [][]*Node
	seen := make(map[string]bool)
	visited := make(map[*Node]bool)
	onStack := make(map[*Node]int)
	stack := make([]*Node, 0)

	var visit func(*Node)
	visit = func(n *Node) {
		visited[n] = true
		onStack[n] = len(stack)
		stack = append(stack, n)

		for _, dep := range n.Dependencies.All() {
			if idx, ok := onStack[dep]; ok {
				cycle := append(slices.Clone(stack[idx:]), dep)
				if key := cycleKey(cycle); !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}

		delete(onStack, n)
		stack = stack[:len(stack)-1]
	}

	visit(root)
	return cycles
}

// FormatPath renders nodes as "a@1.0.0 -> b@2.0.0"
func FormatPath(nodes []*Node) string {
	keys := make([]string, len(nodes))
	for i, n := range nodes {
		keys[i] = n.Key()
	}
	return strings.Join(keys, " -> ")
}

func cycleKey(cycle []*Node) string {
	paths := make([]string, len(cycle))
	for i, n := range cycle {
		paths[i] = n.Paths.ManifestPath
	}
	return strings.Join(paths, "\x00")
}

func packageVersionKey(name, version string) string {
	if version == "" {
		return name
	}
	return name + "@" + version
}

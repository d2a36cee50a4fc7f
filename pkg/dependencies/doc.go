// Package dependencies builds and walks the package dependency graph of a workspace.
//
// # Overview
//
// BuildDependencyGraph starts at one package.json and resolves every entry of its
// "dependencies" map to an installed manifest, recursively. devDependencies and
// peerDependencies never become edges. Nodes are deduplicated by manifest path within a
// single build, so a package reachable along two paths is one shared *Node and a package
// that depends on itself terminates the build instead of recursing forever.
//
// # Traversal
//
// Traverse yields nodes depth first, pre-order, children in declaration order. By default
// each node is yielded once. With TraverseAllPaths a node is yielded once per distinct
// import path, which answers "every way this package is pulled in"; a node that is
// already on the current path is pruned so cycles still terminate.
//
// # Usage Example
//
//	builder := dependencies.NewBuilder(manifest.NewResolver(session), log)
//	root, err := builder.BuildDependencyGraph("/repo/packages/app/package.json")
//	if err != nil {
//		return err
//	}
//
//	for visit := range dependencies.Traverse(root, dependencies.TraverseOptions{TraverseAllPaths: true}) {
//		if visit.Name() == "left-pad" {
//			fmt.Println(dependencies.FormatPath(visit.ImportPath))
//		}
//	}
//
// Detect cycles:
//
//	for _, cycle := range dependencies.Cycles(root) {
//		fmt.Println(dependencies.FormatPath(cycle))
//	}
//
// # Related Packages
//
//   - pkg/manifest: manifest parsing and node_modules resolution
//   - pkg/linter/rules: banned-dependencies walks every import path
package dependencies

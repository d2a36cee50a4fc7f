// Package linter runs policy rules over the packages of a workspace.
//
// # Overview
//
// A run checks every package with every rule enabled in pkglint.yaml, in config order.
// Rules report violations with Context.AddError. In fix mode they also stage corrected
// manifests in the run's buffered file system, and the engine flushes it once after the
// last rule. A check run never writes.
//
// # Configuration
//
//	version: v1
//	exclude: ["packages/legacy"]
//	rules:
//	  - name: require-dependency
//	    include: ["@acme/*"]
//	    options:
//	      dependencies:
//	        greatLib: 1.2.3
//	  - name: alphabetical-dependencies
//	    includeWorkspaceRoot: true
//
// # Usage Example
//
//	registry := linter.NewRuleRegistry()
//	rules.RegisterDefaultRules(registry)
//
//	engine, err := linter.NewEngine(linter.Options{
//		Config:   config,
//		Registry: registry,
//		Store:    storage.NewFileSystemStore(storage.DefaultConfig()),
//		Logger:   log,
//	})
//	if err != nil {
//		return err
//	}
//	result, err := engine.Run(ws, linter.RunOptions{Fix: true})
//
// # Writing Rules
//
// A rule reads the manifest with Context.ReadManifest so fixes staged by earlier rules are
// visible, and stages its own with Context.UpdateManifest. Rules that need the installed
// dependency graph call Context.Graph.
//
// # Related Packages
//
//   - pkg/linter/rules: built-in rules
//   - pkg/mutablefs: buffered file system behind fix mode
//   - pkg/dependencies: dependency graph
package linter

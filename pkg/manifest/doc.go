// Package manifest parses, edits and locates package.json manifests.
//
// Parsing keeps the whole document in key order so a fix that changes one dependency
// writes every other field back untouched:
//
//	m, err := manifest.Parse(data)
//	m.SetDependency(manifest.Dependencies, "greatLib", "1.2.3")
//	out, err := m.Marshal()
//
// Resolver locates dependency manifests with the usual nested node_modules lookup,
// starting at the package directory and walking up through its ancestors.
package manifest

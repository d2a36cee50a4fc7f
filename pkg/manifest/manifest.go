package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileName is the manifest file name inside every package directory
const FileName = "package.json"

// Manifest is a parsed package.json. The typed fields are views over the underlying
// document; only dependency maps changed through SetDependency or RemoveDependency are
// re-encoded by Marshal.
type Manifest struct {
	Name       string
	Version    string
	Private    bool
	Workspaces []string

	Dependencies     *DependencyMap
	DevDependencies  *DependencyMap
	PeerDependencies *DependencyMap

	doc    *Document
	dirty  map[DependencyKind]bool
	indent string
}

// Parse decodes a package.json document
func Parse(data []byte) (*Manifest, error) {
	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	m := &Manifest{doc: doc, dirty: make(map[DependencyKind]bool), indent: detectIndent(data)}

	if err := decodeField(doc, "name", &m.Name); err != nil {
		return nil, err
	}
	if err := decodeField(doc, "version", &m.Version); err != nil {
		return nil, err
	}
	if err := decodeField(doc, "private", &m.Private); err != nil {
		return nil, err
	}
	if err := decodeWorkspaces(doc, &m.Workspaces); err != nil {
		return nil, err
	}

	for _, kind := range AllDependencyKinds {
		raw, ok := doc.Get(string(kind))
		if !ok || string(raw) == "null" {
			continue
		}
		deps := NewDependencyMap()
		if err := json.Unmarshal(raw, deps); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", kind, err)
		}
		m.setMap(kind, deps)
	}

	return m, nil
}

// DependencyMap returns the map for kind, or nil when the manifest has none
func (m *Manifest) DependencyMap(kind DependencyKind) *DependencyMap {
	switch kind {
	case Dependencies:
		return m.Dependencies
	case DevDependencies:
		return m.DevDependencies
	case PeerDependencies:
		return m.PeerDependencies
	}
	return nil
}

// SetDependency sets name to version in the kind map, creating the map when missing
func (m *Manifest) SetDependency(kind DependencyKind, name, version string) {
	deps := m.DependencyMap(kind)
	if deps == nil {
		deps = NewDependencyMap()
		m.setMap(kind, deps)
	}
	deps.Set(name, version)
	m.dirty[kind] = true
}

// RemoveDependency deletes name from the kind map and reports whether it was present
func (m *Manifest) RemoveDependency(kind DependencyKind, name string) bool {
	if !m.DependencyMap(kind).Delete(name) {
		return false
	}
	m.dirty[kind] = true
	return true
}

// SortDependencies sorts the kind map by name
func (m *Manifest) SortDependencies(kind DependencyKind) {
	if deps := m.DependencyMap(kind); deps != nil {
		deps.Sort()
		m.dirty[kind] = true
	}
}

// Marshal renders the manifest with the indentation it was parsed with (two spaces for
// single-line input) and a trailing newline. Keys keep their original order.
func (m *Manifest) Marshal() ([]byte, error) {
	for _, kind := range AllDependencyKinds {
		if !m.dirty[kind] {
			continue
		}
		if err := m.doc.Set(string(kind), m.DependencyMap(kind)); err != nil {
			return nil, err
		}
	}

	compact, err := m.doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	indent := m.indent
	if indent == "" {
		indent = defaultIndent
	}
	return indentJSON(compact, indent)
}

func (m *Manifest) setMap(kind DependencyKind, deps *DependencyMap) {
	switch kind {
	case Dependencies:
		m.Dependencies = deps
	case DevDependencies:
		m.DevDependencies = deps
	case PeerDependencies:
		m.PeerDependencies = deps
	}
}

func decodeField(doc *Document, key string, dst any) error {
	raw, ok := doc.Get(key)
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

// decodeWorkspaces accepts both the array form and the {"packages": [...]} form
func decodeWorkspaces(doc *Document, dst *[]string) error {
	raw, ok := doc.Get("workspaces")
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err == nil {
		return nil
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("invalid workspaces: %w", err)
	}
	*dst = obj.Packages
	return nil
}

const defaultIndent = "  "

// detectIndent returns the leading whitespace of the first indented line of data
func detectIndent(data []byte) string {
	for _, line := range bytes.Split(data, []byte("\n"))[1:] {
		trimmed := bytes.TrimLeft(line, " \t")
		if len(trimmed) == 0 || len(trimmed) == len(line) {
			continue
		}
		return string(line[:len(line)-len(trimmed)])
	}
	return defaultIndent
}

// indentJSON renders data the way npm writes package.json
func indentJSON(data []byte, indent string) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// MarshalIndent renders any value the way Marshal renders a manifest
func MarshalIndent(v any) ([]byte, error) {
	data, err := encodeJSON(v)
	if err != nil {
		return nil, err
	}
	return indentJSON(data, defaultIndent)
}

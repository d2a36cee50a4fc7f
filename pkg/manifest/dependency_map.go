package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// DependencyKind names one of the dependency maps in a manifest
type DependencyKind string

const (
	Dependencies     DependencyKind = "dependencies"
	DevDependencies  DependencyKind = "devDependencies"
	PeerDependencies DependencyKind = "peerDependencies"
)

// AllDependencyKinds lists every kind in the order they usually appear in a manifest
var AllDependencyKinds = []DependencyKind{Dependencies, DevDependencies, PeerDependencies}

// DependencyMap maps dependency names to version specifiers and keeps declaration order.
// Version specifiers are opaque strings.
type DependencyMap struct {
	names    []string
	versions map[string]string
}

// NewDependencyMap creates an empty map
func NewDependencyMap() *DependencyMap {
	return &DependencyMap{versions: make(map[string]string)}
}

// Get returns the version specifier for name
func (m *DependencyMap) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.versions[name]
	return v, ok
}

// Set stores version under name. New names are appended.
func (m *DependencyMap) Set(name, version string) {
	if _, ok := m.versions[name]; !ok {
		m.names = append(m.names, name)
	}
	m.versions[name] = version
}

// Delete removes name and reports whether it was present
func (m *DependencyMap) Delete(name string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.versions[name]; !ok {
		return false
	}
	delete(m.versions, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
	return true
}

// Len returns the number of entries
func (m *DependencyMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the dependency names in declaration order
func (m *DependencyMap) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// All iterates name/version pairs in declaration order
func (m *DependencyMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, name := range m.names {
			if !yield(name, m.versions[name]) {
				return
			}
		}
	}
}

// IsSorted reports whether names are in ascending order
func (m *DependencyMap) IsSorted() bool {
	return m == nil || slices.IsSorted(m.names)
}

// Sort reorders the entries by name
func (m *DependencyMap) Sort() {
	if m != nil {
		slices.Sort(m.names)
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (m *DependencyMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	m.names = nil
	m.versions = make(map[string]string)
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}
		var version string
		if err := dec.Decode(&version); err != nil {
			return fmt.Errorf("version of %s must be a string: %w", name, err)
		}
		m.Set(name, version)
	}
	return expectDelim(dec, '}')
}

// MarshalJSON implements json.Marshaler
func (m *DependencyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeJSON(name)
		if err != nil {
			return nil, err
		}
		v, err := encodeJSON(m.versions[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/pkglint/pkg/linter"
	"github.com/platinummonkey/pkglint/pkg/manifest"
)

// RequireDependencyName is the config name of RequireDependencyRule
const RequireDependencyName = "require-dependency"

// RequireDependencyOptions pins dependencies per kind. A null version requires the
// dependency to be absent.
type RequireDependencyOptions struct {
	Dependencies     map[string]*string `yaml:"dependencies"`
	DevDependencies  map[string]*string `yaml:"devDependencies"`
	PeerDependencies map[string]*string `yaml:"peerDependencies"`
}

func (o RequireDependencyOptions) byKind(kind manifest.DependencyKind) map[string]*string {
	switch kind {
	case manifest.Dependencies:
		return o.Dependencies
	case manifest.DevDependencies:
		return o.DevDependencies
	case manifest.PeerDependencies:
		return o.PeerDependencies
	}
	return nil
}

// RequireDependencyRule checks that packages declare the configured dependency versions
type RequireDependencyRule struct {
	BaseRule
	options RequireDependencyOptions
}

// NewRequireDependencyRule creates a new require-dependency rule
func NewRequireDependencyRule(options *yaml.Node) (*RequireDependencyRule, error) {
	r := &RequireDependencyRule{
		BaseRule: BaseRule{
			RuleName:        RequireDependencyName,
			RuleDescription: "Packages must declare the configured dependency versions",
			AutoFixable:     true,
		},
	}
	if err := decodeOptions(options, &r.options); err != nil {
		return nil, err
	}
	return r, nil
}

type dependencyEdit struct {
	kind    manifest.DependencyKind
	name    string
	version *string
}

// Check compares every configured dependency with the manifest
func (r *RequireDependencyRule) Check(ctx *linter.Context) error {
	m, err := ctx.ReadManifest()
	if err != nil {
		return err
	}

	var edits []dependencyEdit
	var failures []linter.Failure
	for _, kind := range manifest.AllDependencyKinds {
		required := r.options.byKind(kind)
		deps := m.DependencyMap(kind)

		for _, name := range sortedNames(required) {
			want := required[name]
			got, present := deps.Get(name)

			switch {
			case want == nil && present:
				failures = append(failures, linter.Failure{
					Message: fmt.Sprintf("%s should not be in %s", name, kind),
				})
			case want != nil && !present:
				failures = append(failures, linter.Failure{
					Message: fmt.Sprintf("Expected %s to include %s@%s", kind, name, *want),
				})
			case want != nil && got != *want:
				failures = append(failures, linter.Failure{
					Message:     fmt.Sprintf("Expected %s@%s in %s but found %s", name, *want, kind, got),
					LongMessage: fmt.Sprintf("%q: %q", name, *want),
				})
			default:
				continue
			}
			edits = append(edits, dependencyEdit{kind: kind, name: name, version: want})
		}
	}

	if ctx.Fix && len(edits) > 0 {
		err := ctx.UpdateManifest(func(m *manifest.Manifest) {
			for _, edit := range edits {
				if edit.version == nil {
					m.RemoveDependency(edit.kind, edit.name)
				} else {
					m.SetDependency(edit.kind, edit.name, *edit.version)
				}
			}
		})
		if err != nil {
			return err
		}
	}

	for _, f := range failures {
		f.Fixed = ctx.Fix
		ctx.AddError(f)
	}
	return nil
}

package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/pkglint/pkg/linter"
	"github.com/platinummonkey/pkglint/pkg/manifest"
)

// ConsistentVersionsName is the config name of ConsistentVersionsRule
const ConsistentVersionsName = "consistent-versions"

// ConsistentVersionsOptions maps dependency names to the one version every package must use
type ConsistentVersionsOptions struct {
	MatchDependencyVersions map[string]string `yaml:"matchDependencyVersions"`
}

// ConsistentVersionsRule checks that a dependency has the same version wherever it is
// declared
type ConsistentVersionsRule struct {
	BaseRule
	options ConsistentVersionsOptions
}

// NewConsistentVersionsRule creates a new consistent-versions rule
func NewConsistentVersionsRule(options *yaml.Node) (*ConsistentVersionsRule, error) {
	r := &ConsistentVersionsRule{
		BaseRule: BaseRule{
			RuleName:        ConsistentVersionsName,
			RuleDescription: "Dependencies must use the configured version wherever they are declared",
			AutoFixable:     true,
		},
	}
	if err := decodeOptions(options, &r.options); err != nil {
		return nil, err
	}
	return r, nil
}

// Check compares every declared occurrence of a configured dependency
func (r *ConsistentVersionsRule) Check(ctx *linter.Context) error {
	m, err := ctx.ReadManifest()
	if err != nil {
		return err
	}

	var edits []dependencyEdit
	for _, kind := range manifest.AllDependencyKinds {
		deps := m.DependencyMap(kind)
		for _, name := range sortedNames(r.options.MatchDependencyVersions) {
			want := r.options.MatchDependencyVersions[name]
			if got, ok := deps.Get(name); ok && got != want {
				edits = append(edits, dependencyEdit{kind: kind, name: name, version: &want})
				ctx.Log.WithField("found", got).Debug("inconsistent version")
			}
		}
	}
	if len(edits) == 0 {
		return nil
	}

	if ctx.Fix {
		err := ctx.UpdateManifest(func(m *manifest.Manifest) {
			for _, edit := range edits {
				m.SetDependency(edit.kind, edit.name, *edit.version)
			}
		})
		if err != nil {
			return err
		}
	}

	for _, edit := range edits {
		ctx.AddError(linter.Failure{
			Message: fmt.Sprintf("Expected %s in %s to be %s", edit.name, edit.kind, *edit.version),
			Fixed:   ctx.Fix,
		})
	}
	return nil
}

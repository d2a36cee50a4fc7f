package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/pkglint/pkg/dependencies"
	"github.com/platinummonkey/pkglint/pkg/linter"
	"github.com/platinummonkey/pkglint/pkg/manifest"
)

// BannedDependenciesName is the config name of BannedDependenciesRule
const BannedDependenciesName = "banned-dependencies"

// BannedDependenciesOptions lists package name globs that must not be depended on
type BannedDependenciesOptions struct {
	// BannedDependencies are checked against every dependency kind of the package
	BannedDependencies []string `yaml:"bannedDependencies"`
	// BannedTransitiveDependencies are checked against the whole installed graph
	BannedTransitiveDependencies []string `yaml:"bannedTransitiveDependencies"`
}

// BannedDependenciesRule reports banned direct and transitive dependencies
type BannedDependenciesRule struct {
	BaseRule
	options BannedDependenciesOptions
}

// NewBannedDependenciesRule creates a new banned-dependencies rule
func NewBannedDependenciesRule(options *yaml.Node) (*BannedDependenciesRule, error) {
	r := &BannedDependenciesRule{
		BaseRule: BaseRule{
			RuleName:        BannedDependenciesName,
			RuleDescription: "Packages must not depend on banned packages, directly or transitively",
			AutoFixable:     true,
		},
	}
	if err := decodeOptions(options, &r.options); err != nil {
		return nil, err
	}
	return r, nil
}

// Check removes banned direct dependencies in fix mode and reports every import path to a
// banned transitive dependency
func (r *BannedDependenciesRule) Check(ctx *linter.Context) error {
	if err := r.checkDirect(ctx); err != nil {
		return err
	}
	if len(r.options.BannedTransitiveDependencies) == 0 {
		return nil
	}
	return r.checkTransitive(ctx)
}

func (r *BannedDependenciesRule) checkDirect(ctx *linter.Context) error {
	m, err := ctx.ReadManifest()
	if err != nil {
		return err
	}

	var banned []dependencyEdit
	for _, kind := range manifest.AllDependencyKinds {
		for _, name := range m.DependencyMap(kind).Names() {
			if linter.MatchAny(r.options.BannedDependencies, name) {
				banned = append(banned, dependencyEdit{kind: kind, name: name})
			}
		}
	}
	if len(banned) == 0 {
		return nil
	}

	if ctx.Fix {
		err := ctx.UpdateManifest(func(m *manifest.Manifest) {
			for _, b := range banned {
				m.RemoveDependency(b.kind, b.name)
			}
		})
		if err != nil {
			return err
		}
	}

	for _, b := range banned {
		ctx.AddError(linter.Failure{
			Message: fmt.Sprintf("Found banned dependency %s in %s", b.name, b.kind),
			Fixed:   ctx.Fix,
		})
	}
	return nil
}

func (r *BannedDependenciesRule) checkTransitive(ctx *linter.Context) error {
	root, err := ctx.Graph()
	if err != nil {
		return err
	}

	for visit := range dependencies.Traverse(root, dependencies.TraverseOptions{TraverseAllPaths: true}) {
		if visit.Node == root || !linter.MatchAny(r.options.BannedTransitiveDependencies, visit.Name()) {
			continue
		}
		// a direct hit already reported above
		if len(visit.ImportPath) == 2 && linter.MatchAny(r.options.BannedDependencies, visit.Name()) {
			continue
		}
		ctx.AddError(linter.Failure{
			Message:     fmt.Sprintf("Found banned transitive dependency %s", visit.Name()),
			LongMessage: dependencies.FormatPath(visit.ImportPath),
		})
	}
	return nil
}

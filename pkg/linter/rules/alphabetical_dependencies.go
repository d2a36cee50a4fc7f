package rules

import (
	"fmt"

	"github.com/platinummonkey/pkglint/pkg/linter"
	"github.com/platinummonkey/pkglint/pkg/manifest"
)

// AlphabeticalDependenciesName is the config name of AlphabeticalDependenciesRule
const AlphabeticalDependenciesName = "alphabetical-dependencies"

// AlphabeticalDependenciesRule checks that dependency maps are sorted by name
type AlphabeticalDependenciesRule struct {
	BaseRule
}

// NewAlphabeticalDependenciesRule creates a new alphabetical-dependencies rule
func NewAlphabeticalDependenciesRule() *AlphabeticalDependenciesRule {
	return &AlphabeticalDependenciesRule{
		BaseRule: BaseRule{
			RuleName:        AlphabeticalDependenciesName,
			RuleDescription: "Dependency maps must be sorted alphabetically",
			AutoFixable:     true,
		},
	}
}

// Check validates the order of every dependency map
func (r *AlphabeticalDependenciesRule) Check(ctx *linter.Context) error {
	m, err := ctx.ReadManifest()
	if err != nil {
		return err
	}

	var unsorted []manifest.DependencyKind
	for _, kind := range manifest.AllDependencyKinds {
		if !m.DependencyMap(kind).IsSorted() {
			unsorted = append(unsorted, kind)
		}
	}
	if len(unsorted) == 0 {
		return nil
	}

	if ctx.Fix {
		err := ctx.UpdateManifest(func(m *manifest.Manifest) {
			for _, kind := range unsorted {
				m.SortDependencies(kind)
			}
		})
		if err != nil {
			return err
		}
	}

	for _, kind := range unsorted {
		ctx.AddError(linter.Failure{
			Message: fmt.Sprintf("%s are not sorted alphabetically", kind),
			Fixed:   ctx.Fix,
		})
	}
	return nil
}

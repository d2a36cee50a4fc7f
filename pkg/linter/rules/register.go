package rules

import (
	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/pkglint/pkg/linter"
)

// Registry interface for registering rules
type Registry interface {
	Register(name string, factory linter.Factory)
}

// RegisterDefaultRules registers all built-in lint rules
func RegisterDefaultRules(registry Registry) {
	registry.Register(RequireDependencyName, func(options *yaml.Node) (linter.Rule, error) {
		return NewRequireDependencyRule(options)
	})
	registry.Register(BannedDependenciesName, func(options *yaml.Node) (linter.Rule, error) {
		return NewBannedDependenciesRule(options)
	})
	registry.Register(ConsistentVersionsName, func(options *yaml.Node) (linter.Rule, error) {
		return NewConsistentVersionsRule(options)
	})
	registry.Register(AlphabeticalDependenciesName, func(options *yaml.Node) (linter.Rule, error) {
		return NewAlphabeticalDependenciesRule(), nil
	})
	registry.Register(NoDependencyCyclesName, func(options *yaml.Node) (linter.Rule, error) {
		return NewNoDependencyCyclesRule(), nil
	})
}

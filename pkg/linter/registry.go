package linter

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrRuleNotFound is returned when a config names a rule nobody registered
var ErrRuleNotFound = errors.New("rule not found")

// Rule interface that all lint rules must implement
type Rule interface {
	Name() string
	Description() string
	CanAutoFix() bool
	// Check inspects ctx.Package, reports violations with ctx.AddError and, when ctx.Fix
	// is set, stages fixes. A returned error aborts the run.
	Check(ctx *Context) error
}

// Factory builds a rule from its options. options is nil when the config has none.
type Factory func(options *yaml.Node) (Rule, error)

// RuleRegistry manages available lint rules
type RuleRegistry struct {
	factories map[string]Factory
}

// NewRuleRegistry creates an empty rule registry
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		factories: make(map[string]Factory),
	}
}

// Register adds a rule factory to the registry
func (r *RuleRegistry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Names returns the registered rule names, sorted
func (r *RuleRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetRule builds the named rule with no options
func (r *RuleRegistry) GetRule(name string) (Rule, bool) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	rule, err := factory(nil)
	if err != nil {
		return nil, false
	}
	return rule, true
}

// GetAllRules returns every registered rule built with no options, sorted by name
func (r *RuleRegistry) GetAllRules() []Rule {
	rules := make([]Rule, 0, len(r.factories))
	for _, name := range r.Names() {
		if rule, ok := r.GetRule(name); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Build creates the rule a config entry enables
func (r *RuleRegistry) Build(config RuleConfig) (Rule, error) {
	factory, ok := r.factories[config.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, config.Name)
	}
	rule, err := factory(config.OptionsNode())
	if err != nil {
		return nil, fmt.Errorf("invalid options for rule %s: %w", config.Name, err)
	}
	return rule, nil
}

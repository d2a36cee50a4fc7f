package rules

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName        string
	RuleDescription string
	AutoFixable     bool
}

func (r *BaseRule) Name() string        { return r.RuleName }
func (r *BaseRule) Description() string { return r.RuleDescription }
func (r *BaseRule) CanAutoFix() bool    { return r.AutoFixable }

// decodeOptions decodes rule options into dst. Missing options leave dst untouched.
func decodeOptions(options *yaml.Node, dst any) error {
	if options == nil || options.Kind == 0 {
		return nil
	}
	return options.Decode(dst)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package rules

import (
	"github.com/platinummonkey/pkglint/pkg/dependencies"
	"github.com/platinummonkey/pkglint/pkg/linter"
)

// NoDependencyCyclesName is the config name of NoDependencyCyclesRule
const NoDependencyCyclesName = "no-dependency-cycles"

// NoDependencyCyclesRule reports dependency cycles reachable from a package
type NoDependencyCyclesRule struct {
	BaseRule
}

// NewNoDependencyCyclesRule creates a new no-dependency-cycles rule
func NewNoDependencyCyclesRule() *NoDependencyCyclesRule {
	return &NoDependencyCyclesRule{
		BaseRule: BaseRule{
			RuleName:        NoDependencyCyclesName,
			RuleDescription: "The installed dependency graph of a package must not contain cycles",
			AutoFixable:     false,
		},
	}
}

// Check builds the package graph and reports each cycle once
func (r *NoDependencyCyclesRule) Check(ctx *linter.Context) error {
	root, err := ctx.Graph()
	if err != nil {
		return err
	}

	for _, cycle := range dependencies.Cycles(root) {
		ctx.AddError(linter.Failure{
			Message:     "Found dependency cycle",
			LongMessage: dependencies.FormatPath(cycle),
		})
	}
	return nil
}

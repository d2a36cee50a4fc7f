package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/pkglint/pkg/dependencies"
	"github.com/platinummonkey/pkglint/pkg/manifest"
)

type graphOptions struct {
	format   string
	allPaths bool
}

// newGraphCommand creates the graph command
func newGraphCommand(a *app) *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph <manifest>",
		Short: "Print the installed dependency graph of a package",
		Long: `Resolve the dependencies of a package.json through node_modules and print the
resulting graph. Only "dependencies" contribute edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "tree", "Output format: tree, dot, cytoscape")
	cmd.Flags().BoolVar(&opts.allPaths, "all-paths", false, "Print a node once per import path (tree format)")

	return cmd
}

// newWhyCommand creates the why command
func newWhyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "why <manifest> <package>",
		Short: "Show every import path that pulls in a package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWhy(cmd, args[0], args[1])
		},
	}
}

func (a *app) buildGraph(manifestPath string) (*dependencies.Node, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	builder := dependencies.NewBuilder(manifest.NewResolver(store), a.log)
	return builder.BuildDependencyGraph(manifestPath)
}

func (a *app) runGraph(cmd *cobra.Command, manifestPath string, opts *graphOptions) error {
	root, err := a.buildGraph(manifestPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "tree":
		if err := dependencies.WriteTree(out, root, opts.allPaths); err != nil {
			return err
		}
	case "dot":
		if err := dependencies.WriteDOT(out, root); err != nil {
			return err
		}
	case "cytoscape":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(dependencies.ToCytoscape(root)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown graph format %q (want tree, dot or cytoscape)", opts.format)
	}

	for _, cycle := range dependencies.Cycles(root) {
		a.log.WithField("cycle", dependencies.FormatPath(cycle)).Warn("dependency cycle")
	}
	return nil
}

func (a *app) runWhy(cmd *cobra.Command, manifestPath, name string) error {
	root, err := a.buildGraph(manifestPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	found := 0
	for visit := range dependencies.Traverse(root, dependencies.TraverseOptions{TraverseAllPaths: true}) {
		if visit.Node == root || visit.Name() != name {
			continue
		}
		found++
		fmt.Fprintln(out, dependencies.FormatPath(visit.ImportPath))
	}

	if found == 0 {
		return fmt.Errorf("%s does not depend on %s", root.Key(), name)
	}
	color.New(color.Faint).Fprintf(out, "%d path(s)\n", found)
	return nil
}

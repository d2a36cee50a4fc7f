package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/pkglint/pkg/config"
	"github.com/platinummonkey/pkglint/pkg/linter"
	"github.com/platinummonkey/pkglint/pkg/linter/rules"
	"github.com/platinummonkey/pkglint/pkg/observability"
	"github.com/platinummonkey/pkglint/pkg/storage"
)

// Version is set at build time with -ldflags "-X ...cli.Version=..."
var Version = "dev"

// ErrViolations is returned when a check leaves violations unfixed
var ErrViolations = errors.New("violations found")

// app carries what every command needs once the root pre-run has loaded configuration
type app struct {
	cfg *config.Config
	log *logrus.Logger

	// store overrides the configured store; set by tests
	store storage.Store

	verbose   bool
	logFormat string
	noColor   bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pkglint",
		Short: "pkglint - policy checks for JavaScript monorepos",
		Long: `pkglint checks the package.json manifests of a workspace against the rules in
pkglint.yaml and can fix what it finds.

Fixes are staged in memory and written in one pass at the end of the run, so a
failed check never leaves a half-edited workspace behind.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text, json")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newCheckCommand(a))
	root.AddCommand(newGraphCommand(a))
	root.AddCommand(newWhyCommand(a))
	root.AddCommand(newRulesCommand())
	root.AddCommand(newWatchCommand(a))
	root.AddCommand(newVersionCommand())

	return root
}

// setup loads configuration and builds the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Observability.LogLevel = logrus.DebugLevel
	}
	if a.logFormat != "" {
		cfg.Observability.LogFormat = observability.LogFormat(a.logFormat)
	}
	if a.noColor || cfg.NoColor {
		color.NoColor = true
	}

	log, err := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) openStore() (storage.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := storage.NewStore(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return store, nil
}

func newRegistry() *linter.RuleRegistry {
	registry := linter.NewRuleRegistry()
	rules.RegisterDefaultRules(registry)
	return registry
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pkglint %s\n", Version)
		},
	}
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRules(cmd.OutOrStdout(), newRegistry())
		},
	}
}

func listRules(w io.Writer, registry *linter.RuleRegistry) error {
	all := registry.GetAllRules()
	bold := color.New(color.Bold)

	fmt.Fprintf(w, "Available lint rules (%d):\n\n", len(all))
	for _, rule := range all {
		autofix := ""
		if rule.CanAutoFix() {
			autofix = " [auto-fix]"
		}
		bold.Fprintf(w, "  - %-27s", rule.Name())
		fmt.Fprintf(w, "%s\n    %s\n", autofix, rule.Description())
	}
	return nil
}

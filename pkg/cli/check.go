package cli

import (
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/pkglint/pkg/linter"
	"github.com/platinummonkey/pkglint/pkg/mutablefs"
	"github.com/platinummonkey/pkglint/pkg/observability"
	"github.com/platinummonkey/pkglint/pkg/storage"
	"github.com/platinummonkey/pkglint/pkg/workspace"
)

type checkOptions struct {
	dir         string
	configFile  string
	format      string
	fix         bool
	dryRun      bool
	metricsFile string
}

// newCheckCommand creates the check command
func newCheckCommand(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the workspace against the configured rules",
		Long: `Check every package of the workspace against the rules in pkglint.yaml.

With --fix the fixes are written once all rules ran. With --dry-run they are
computed and reported but nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "C", ".", "Directory inside the workspace")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to lint config file (pkglint.yaml)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, github")
	cmd.Flags().BoolVar(&opts.fix, "fix", false, "Fix violations")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "With --fix, report what would be written without writing")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")

	return cmd
}

// loadRun opens the store and loads the workspace and lint config for dir
func (a *app) loadRun(dir, configFile string) (storage.Store, *workspace.Workspace, *linter.Config, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, nil, nil, err
	}

	rootDir, err := workspace.FindRoot(store, dir)
	if err != nil {
		return nil, nil, nil, err
	}

	if configFile == "" {
		configFile = a.cfg.LintConfigPath
	}
	var lintConfig *linter.Config
	if configFile != "" {
		lintConfig, err = linter.LoadConfig(configFile)
	} else {
		lintConfig, err = linter.LoadConfigFromDir(store, rootDir)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	ws, err := workspace.Load(store, rootDir, lintConfig.Include)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	return store, ws, lintConfig, nil
}

func (a *app) runCheck(cmd *cobra.Command, opts *checkOptions) error {
	_, err := a.check(cmd, opts)
	return err
}

// check runs one check and returns the workspace it loaded
func (a *app) check(cmd *cobra.Command, opts *checkOptions) (*workspace.Workspace, error) {
	store, ws, lintConfig, err := a.loadRun(opts.dir, opts.configFile)
	if err != nil {
		return nil, err
	}

	// dry runs flush into an overlay so Written still reports what a fix would touch
	var target storage.Store = store
	if opts.dryRun {
		target = storage.NewOverlayStore(store)
	}

	metricsFile := opts.metricsFile
	if metricsFile == "" {
		metricsFile = a.cfg.Observability.MetricsFile
	}
	var metrics *observability.Metrics
	if metricsFile != "" {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	engine, err := linter.NewEngine(linter.Options{
		Config:   lintConfig,
		Registry: newRegistry(),
		Store:    target,
		Session:  &mutablefs.Options{ReadCacheSize: a.cfg.Session.ReadCacheSize},
		Logger:   a.log,
		Metrics:  metrics,
	})
	if err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"root":     ws.RootDir,
		"packages": len(ws.Packages),
		"rules":    len(lintConfig.Rules),
	}).Debug("loaded workspace")

	result, runErr := engine.Run(ws, linter.RunOptions{Fix: opts.fix})
	if result != nil {
		if err := writeResult(cmd.OutOrStdout(), opts.format, ws.RootDir, result, opts.dryRun); err != nil {
			return ws, err
		}
	}

	if err := metrics.WriteToTextfile(metricsFile); err != nil {
		a.log.WithError(err).Warn("failed to write metrics")
	}

	if runErr != nil {
		return ws, runErr
	}
	if result.Summary.Unfixed > 0 {
		return ws, fmt.Errorf("%w: %d unfixed", ErrViolations, result.Summary.Unfixed)
	}
	return ws, nil
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

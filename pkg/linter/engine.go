package linter

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/pkglint/pkg/dependencies"
	"github.com/platinummonkey/pkglint/pkg/manifest"
	"github.com/platinummonkey/pkglint/pkg/mutablefs"
	"github.com/platinummonkey/pkglint/pkg/observability"
	"github.com/platinummonkey/pkglint/pkg/storage"
	"github.com/platinummonkey/pkglint/pkg/workspace"
)

// Options configures an Engine
type Options struct {
	Config   *Config
	Registry *RuleRegistry
	// Store is where fixes are flushed
	Store   storage.Store
	Session *mutablefs.Options
	Logger  *logrus.Logger
	Metrics *observability.Metrics
}

// Engine runs the configured rules over a workspace
type Engine struct {
	config  *Config
	rules   []configuredRule
	store   storage.Store
	session mutablefs.Options
	log     *logrus.Logger
	metrics *observability.Metrics
}

type configuredRule struct {
	Rule
	config RuleConfig
}

// RunOptions configures a single run
type RunOptions struct {
	Fix bool
}

// Result contains the outcome of a run
type Result struct {
	RunID    uuid.UUID `json:"runId"`
	Failures []Failure `json:"failures"`
	// Written lists the files flushed by a fix run
	Written []string `json:"written,omitempty"`
	Summary Summary  `json:"summary"`
}

// Summary provides an overview of a run
type Summary struct {
	Packages     int `json:"packages"`
	Rules        int `json:"rules"`
	Failures     int `json:"failures"`
	Fixed        int `json:"fixed"`
	Unfixed      int `json:"unfixed"`
	FilesWritten int `json:"filesWritten"`
}

// run is the state shared by the contexts of one run
type run struct {
	failures []Failure
	resolver *manifest.Resolver
	builder  *dependencies.Builder
	graphs   map[string]*dependencies.Node
	metrics  *observability.Metrics
}

// NewEngine builds every rule the config enables
func NewEngine(opts Options) (*Engine, error) {
	if opts.Config == nil {
		opts.Config = DefaultConfig()
	}
	if opts.Registry == nil {
		opts.Registry = NewRuleRegistry()
	}
	if opts.Store == nil {
		return nil, errors.New("engine requires a store")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	e := &Engine{
		config:  opts.Config,
		store:   opts.Store,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if opts.Session != nil {
		e.session = *opts.Session
	}
	e.session.Logger = opts.Logger

	for _, rc := range opts.Config.Rules {
		rule, err := opts.Registry.Build(rc)
		if err != nil {
			return nil, err
		}
		e.rules = append(e.rules, configuredRule{Rule: rule, config: rc})
	}

	return e, nil
}

// Packages returns the workspace packages the run checks, root first
func (e *Engine) Packages(ws *workspace.Workspace) []*workspace.Package {
	pkgs := []*workspace.Package{ws.Root}
	for _, pkg := range ws.Packages {
		rel, err := filepath.Rel(ws.RootDir, pkg.Dir)
		if err == nil && e.config.Excludes(rel) {
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs
}

// Run checks every package with every applicable rule, in config order. In fix mode the
// staged fixes are flushed once after all rules ran. A rule error or a flush failure is
// returned together with the result collected so far.
func (e *Engine) Run(ws *workspace.Workspace, opts RunOptions) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.New()}
	log := e.log.WithFields(logrus.Fields{
		"run_id": result.RunID.String(),
		"fix":    opts.Fix,
	})

	files := mutablefs.New(e.store, &e.session)
	resolver := manifest.NewResolver(files)
	state := &run{
		resolver: resolver,
		builder:  dependencies.NewBuilder(resolver, e.log),
		graphs:   make(map[string]*dependencies.Node),
		metrics:  e.metrics,
	}

	pkgs := e.Packages(ws)
	err := e.check(ws, pkgs, files, state, opts, log)
	if err == nil && opts.Fix {
		err = e.flush(files, result, log)
	}

	result.Failures = state.failures
	result.Summary = summarize(result, len(pkgs), len(e.rules))
	e.metrics.RecordRun(opts.Fix, err, time.Since(start), len(pkgs))

	log.WithFields(logrus.Fields{
		"packages": result.Summary.Packages,
		"failures": result.Summary.Failures,
		"fixed":    result.Summary.Fixed,
		"written":  result.Summary.FilesWritten,
	}).Info("run finished")

	return result, err
}

func (e *Engine) check(ws *workspace.Workspace, pkgs []*workspace.Package, files *mutablefs.Session, state *run, opts RunOptions, log *logrus.Entry) error {
	for _, rule := range e.rules {
		for _, pkg := range pkgs {
			if !rule.config.Applies(pkg.Name, pkg == ws.Root) {
				continue
			}

			ctx := &Context{
				Package:   pkg,
				Workspace: ws,
				Fix:       opts.Fix,
				Files:     files,
				Log:       log.WithFields(logrus.Fields{"rule": rule.Name(), "package": pkg.Name}),
				rule:      rule.Name(),
				run:       state,
			}
			e.metrics.RecordRuleCheck(rule.Name())
			if err := rule.Check(ctx); err != nil {
				return fmt.Errorf("rule %s failed on %s: %w", rule.Name(), pkg.Name, err)
			}
		}
	}
	return nil
}

func (e *Engine) flush(files *mutablefs.Session, result *Result, log *logrus.Entry) error {
	pending := files.Pending()
	err := files.Flush()

	failed := make(map[string]bool)
	attempted := len(pending) + len(files.PendingDirs())
	var flushErr *mutablefs.FlushError
	if errors.As(err, &flushErr) {
		for _, path := range flushErr.Paths() {
			failed[path] = true
		}
		attempted = flushErr.Attempted
	}
	e.metrics.RecordFlush(attempted, len(failed))

	for _, path := range pending {
		if !failed[path] {
			result.Written = append(result.Written, path)
		}
	}

	if err != nil {
		log.WithError(err).Error("failed to write fixes")
		return fmt.Errorf("failed to write fixes: %w", err)
	}
	return nil
}

func summarize(result *Result, packages, rules int) Summary {
	summary := Summary{
		Packages:     packages,
		Rules:        rules,
		Failures:     len(result.Failures),
		FilesWritten: len(result.Written),
	}
	for _, f := range result.Failures {
		if f.Fixed {
			summary.Fixed++
		} else {
			summary.Unfixed++
		}
	}
	return summary
}

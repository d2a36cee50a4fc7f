package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/pkglint/pkg/linter"
	"github.com/platinummonkey/pkglint/pkg/workspace"
)

// newWatchCommand creates the watch command
func newWatchCommand(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the check whenever a manifest or lint config changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "C", ".", "Directory inside the workspace")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to lint config file (pkglint.yaml)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, github")
	cmd.Flags().BoolVar(&opts.fix, "fix", false, "Fix violations")

	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, opts *checkOptions) error {
	ctx := cmd.Context()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	rerun := func() error {
		ws, err := a.check(cmd, opts)
		if ws != nil {
			if err := watchWorkspace(watcher, ws); err != nil {
				return err
			}
		}
		if err != nil && !errors.Is(err, ErrViolations) {
			a.log.WithError(err).Error("check failed")
		}
		return nil
	}

	if err := rerun(); err != nil {
		return err
	}
	if len(watcher.WatchList()) == 0 {
		return fmt.Errorf("no workspace found from %s", opts.dir)
	}

	a.log.WithField("dirs", len(watcher.WatchList())).Info("watching for manifest changes")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isManifestEvent(event) {
				a.log.WithField("file", event.Name).Debug("manifest changed")
				pending = time.After(a.cfg.Watch.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.WithError(err).Warn("watcher error")
		case <-pending:
			pending = nil
			if err := rerun(); err != nil {
				return err
			}
		}
	}
}

// watchWorkspace watches the root and every package directory; new packages are picked up
// on the next run
func watchWorkspace(watcher *fsnotify.Watcher, ws *workspace.Workspace) error {
	watched := watcher.WatchList()
	dirs := []string{ws.RootDir}
	for _, pkg := range ws.Packages {
		dirs = append(dirs, pkg.Dir)
	}
	for _, dir := range dirs {
		if slices.Contains(watched, dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}

func isManifestEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Base(event.Name)
	return name == "package.json" || slices.Contains(linter.ConfigFileNames, name)
}

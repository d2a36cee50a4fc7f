package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/pkglint/pkg/storage"
	"github.com/platinummonkey/pkglint/pkg/workspace"
)

func TestIsManifestEvent(t *testing.T) {
	tests := []struct {
		event    fsnotify.Event
		expected bool
	}{
		{fsnotify.Event{Name: "/repo/package.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/repo/packages/api/package.json", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/repo/pkglint.yaml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/repo/.pkglint.yml", Op: fsnotify.Create | fsnotify.Write}, true},
		{fsnotify.Event{Name: "/repo/package.json", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/repo/package.json", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "/repo/index.js", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, isManifestEvent(tt.event))
		})
	}
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range map[string]string{
		"package.json":              `{"name": "root", "workspaces": ["packages/*"]}`,
		"packages/api/package.json": unsortedManifest,
	} {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestWatchWorkspace(t *testing.T) {
	root := writeWorkspace(t)
	ws, err := workspace.Load(storage.NewFileSystemStore(storage.DefaultConfig()), root, nil)
	require.NoError(t, err)

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, watchWorkspace(watcher, ws))
	require.NoError(t, watchWorkspace(watcher, ws))

	assert.ElementsMatch(t, []string{root, filepath.Join(root, "packages", "api")}, watcher.WatchList())
}

func TestWatchCommand_StopsWithContext(t *testing.T) {
	root := writeWorkspace(t)
	cmd, out := newStoreCommand(t, storage.NewFileSystemStore(storage.DefaultConfig()))
	cmd.SetArgs([]string{"watch", "--dir", root})

	// the first check still runs before the canceled context is noticed
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "1 failure(s), 0 fixed, 1 unfixed")
}

package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/pkglint/pkg/linter"
)

const unsortedManifest = `{"name": "api", "dependencies": {"zeta": "1.0.0", "alpha": "1.0.0"}}`

func workspaceFiles() map[string]string {
	return map[string]string{
		"/repo/package.json":              `{"name": "root", "private": true, "workspaces": ["packages/*"]}`,
		"/repo/packages/api/package.json": unsortedManifest,
		"/repo/packages/web/package.json": `{"name": "web"}`,
	}
}

func TestCheck_ReportsViolations(t *testing.T) {
	store, cmd, out := newTestCommand(t, workspaceFiles())
	cmd.SetArgs([]string{"check", "--dir", "/repo/packages/web"})

	err := cmd.Execute()
	assert.True(t, errors.Is(err, ErrViolations))

	assert.Contains(t, out.String(), "error packages/api/package.json [alphabetical-dependencies]")
	assert.Contains(t, out.String(), "dependencies are not sorted alphabetically")
	assert.Contains(t, out.String(), "1 failure(s), 0 fixed, 1 unfixed")

	data, err := store.ReadFile("/repo/packages/api/package.json")
	require.NoError(t, err)
	assert.Equal(t, unsortedManifest, string(data))
}

func TestCheck_Fix(t *testing.T) {
	store, cmd, out := newTestCommand(t, workspaceFiles())
	cmd.SetArgs([]string{"check", "--dir", "/repo", "--fix"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "fixed packages/api/package.json")
	assert.Contains(t, out.String(), "wrote packages/api/package.json")

	data, err := store.ReadFile("/repo/packages/api/package.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"api\",\n  \"dependencies\": {\n    \"alpha\": \"1.0.0\",\n    \"zeta\": \"1.0.0\"\n  }\n}\n", string(data))
}

func TestCheck_DryRun(t *testing.T) {
	store, cmd, out := newTestCommand(t, workspaceFiles())
	cmd.SetArgs([]string{"check", "--dir", "/repo", "--fix", "--dry-run"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "would write packages/api/package.json")

	data, err := store.ReadFile("/repo/packages/api/package.json")
	require.NoError(t, err)
	assert.Equal(t, unsortedManifest, string(data))
}

func TestCheck_JSON(t *testing.T) {
	_, cmd, out := newTestCommand(t, workspaceFiles())
	cmd.SetArgs([]string{"check", "--dir", "/repo", "--format", "json"})

	require.Error(t, cmd.Execute())

	var result linter.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "api", result.Failures[0].Package)
	assert.Equal(t, 1, result.Summary.Unfixed)
}

func TestCheck_ConfigFromStore(t *testing.T) {
	files := workspaceFiles()
	files["/repo/pkglint.yaml"] = "version: v1\nexclude: [packages/api]\nrules:\n  - name: alphabetical-dependencies\n"
	_, cmd, out := newTestCommand(t, files)
	cmd.SetArgs([]string{"check", "--dir", "/repo"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "0 failure(s)")
}

const requireGreatLibConfig = `version: v1
rules:
  - name: require-dependency
    options:
      dependencies:
        greatLib: 1.2.3
`

func TestCheck_RuleOptionsFromConfigFile(t *testing.T) {
	store, cmd, out := newTestCommand(t, map[string]string{
		"/repo/package.json":              `{"name": "root", "private": true, "workspaces": ["packages/*"]}`,
		"/repo/packages/app/package.json": `{"name": "app", "dependencies": {"greatLib": "1.0.0"}}`,
		"/repo/pkglint.yaml":              requireGreatLibConfig,
	})
	cmd.SetArgs([]string{"check", "--dir", "/repo", "--fix"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, strings.Count(out.String(), "wrote "))
	assert.Contains(t, out.String(), "wrote packages/app/package.json")

	data, err := store.ReadFile("/repo/packages/app/package.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"app\",\n  \"dependencies\": {\n    \"greatLib\": \"1.2.3\"\n  }\n}\n", string(data))

	recheck, out := newStoreCommand(t, store)
	recheck.SetArgs([]string{"check", "--dir", "/repo"})
	require.NoError(t, recheck.Execute())
	assert.Contains(t, out.String(), "0 failure(s), 0 fixed, 0 unfixed")
}

func TestCheck_MetricsFile(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "pkglint.prom")
	_, cmd, _ := newTestCommand(t, workspaceFiles())
	cmd.SetArgs([]string{"check", "--dir", "/repo", "--fix", "--metrics-file", metricsFile})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pkglint_runs_total")
}

func TestCheck_NoWorkspace(t *testing.T) {
	_, cmd, _ := newTestCommand(t, map[string]string{
		"/lonely/package.json": `{"name": "lonely"}`,
	})
	cmd.SetArgs([]string{"check", "--dir", "/lonely"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrViolations))
}

package manifest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/platinummonkey/pkglint/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ReadManifest(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Put("/repo/package.json", []byte(`{"name": "root"}`))
	store.Put("/repo/broken/package.json", []byte(`{"name": `))
	r := NewResolver(store)

	m, err := r.ReadManifest("/repo/package.json")
	require.NoError(t, err)
	assert.Equal(t, "root", m.Name)

	_, err = r.ReadManifest("/repo/missing/package.json")
	var resErr *ManifestResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "/repo/missing/package.json", resErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = r.ReadManifest("/repo/broken/package.json")
	require.True(t, errors.As(err, &resErr))
}

func TestResolver_ResolveDependency(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Put("/repo/node_modules/shared/package.json", []byte(`{}`))
	store.Put("/repo/node_modules/@scope/tool/package.json", []byte(`{}`))
	store.Put("/repo/packages/app/node_modules/shared/package.json", []byte(`{}`))
	store.Put("/repo/node_modules/lib/node_modules/inner/package.json", []byte(`{}`))
	require.NoError(t, store.Mkdir("/repo/node_modules/nodir", true))
	r := NewResolver(store)

	tests := []struct {
		name       string
		dependency string
		fromDir    string
		want       string
		wantErr    bool
	}{
		{
			name:       "nearest install directory wins",
			dependency: "shared",
			fromDir:    "/repo/packages/app",
			want:       "/repo/packages/app/node_modules/shared/package.json",
		},
		{
			name:       "falls back to ancestor",
			dependency: "shared",
			fromDir:    "/repo/packages/other",
			want:       "/repo/node_modules/shared/package.json",
		},
		{
			name:       "scoped package",
			dependency: "@scope/tool",
			fromDir:    "/repo/packages/app",
			want:       "/repo/node_modules/@scope/tool/package.json",
		},
		{
			name:       "nested install",
			dependency: "inner",
			fromDir:    "/repo/node_modules/lib",
			want:       "/repo/node_modules/lib/node_modules/inner/package.json",
		},
		{
			name:       "directory without manifest",
			dependency: "nodir",
			fromDir:    "/repo",
			wantErr:    true,
		},
		{
			name:       "missing",
			dependency: "ghost",
			fromDir:    "/repo/packages/app",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveDependency("app", tt.dependency, tt.fromDir)
			if tt.wantErr {
				var notFound *DependencyNotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, "app", notFound.Package)
				assert.Equal(t, tt.dependency, notFound.Dependency)
				assert.Contains(t, err.Error(), tt.dependency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package storage

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ReadWrite(t *testing.T) {
	store := NewMemoryStore()
	store.Put("/repo/package.json", []byte(`{"name":"root"}`))

	data, err := store.ReadFile("/repo/package.json")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"root"}`, string(data))

	_, err = store.ReadFile("/repo/missing.json")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = store.ReadFile("/repo")
	assert.Error(t, err)
}

func TestMemoryStore_WriteFileRequiresParent(t *testing.T) {
	store := NewMemoryStore()

	err := store.WriteFile("/nope/package.json", []byte("{}"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = store.Stat("/nope/package.json")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, store.WriteFile("/top.json", []byte("{}")))
}

func TestMemoryStore_Mkdir(t *testing.T) {
	store := NewMemoryStore()

	err := store.Mkdir("/a/b", false)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, store.Mkdir("/a/b", true))
	info, err := store.Stat("/a")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, store.Mkdir("/a/b", false), "existing directory")

	store.Put("/a/file", []byte("x"))
	err = store.Mkdir("/a/file", true)
	assert.True(t, errors.Is(err, fs.ErrExist))
}

func TestMemoryStore_Glob(t *testing.T) {
	store := NewMemoryStore()
	store.Put("/repo/packages/a/package.json", []byte("{}"))
	store.Put("/repo/packages/b/package.json", []byte("{}"))
	store.Put("/repo/tools/c/package.json", []byte("{}"))

	matches, err := store.Glob("/repo/packages/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"/repo/packages/a", "/repo/packages/b"}, matches)

	_, err = store.Glob("[")
	assert.Error(t, err)
}

func TestOverlayStore(t *testing.T) {
	base := NewMemoryStore()
	base.Put("/repo/package.json", []byte("base"))

	overlay := NewOverlayStore(base)

	data, err := overlay.ReadFile("/repo/package.json")
	require.NoError(t, err)
	assert.Equal(t, "base", string(data))

	require.NoError(t, overlay.WriteFile("/repo/package.json", []byte("upper")))
	data, err = overlay.ReadFile("/repo/package.json")
	require.NoError(t, err)
	assert.Equal(t, "upper", string(data))

	// base is never touched
	data, err = base.ReadFile("/repo/package.json")
	require.NoError(t, err)
	assert.Equal(t, "base", string(data))

	err = overlay.WriteFile("/repo/missing/package.json", []byte("x"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, overlay.Mkdir("/repo/new", false))
	require.NoError(t, overlay.WriteFile("/repo/new/package.json", []byte("x")))
	assert.Equal(t, []string{"/repo/new/package.json", "/repo/package.json"}, overlay.Written())

	err = overlay.Mkdir("/repo/package.json", false)
	assert.True(t, errors.Is(err, fs.ErrExist))
}

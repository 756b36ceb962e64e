package store_test

import (
	"testing"

	"marquee/internal/store"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRequiresDir(t *testing.T) {
	_, err := store.NewFileStore(afero.NewMemMapFs(), "  ")
	assert.ErrorIs(t, err, store.ErrDirRequired)
}

func TestFileStoreSetGet(t *testing.T) {
	st, err := store.NewFileStore(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	_, ok := st.Get("media_cache")
	assert.False(t, ok, "get before set should miss")

	require.NoError(t, st.Set("media_cache", `{"movies":[]}`))

	got, ok := st.Get("media_cache")
	require.True(t, ok)
	assert.Equal(t, `{"movies":[]}`, got)
}

func TestFileStoreOverwrite(t *testing.T) {
	st, err := store.NewFileStore(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	require.NoError(t, st.Set("k", "first"))
	require.NoError(t, st.Set("k", "second"))

	got, ok := st.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestFileStoreClear(t *testing.T) {
	st, err := store.NewFileStore(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	require.NoError(t, st.Set("k", "v"))
	require.NoError(t, st.Clear("k"))

	_, ok := st.Get("k")
	assert.False(t, ok)

	// Clearing an absent key is a no-op.
	assert.NoError(t, st.Clear("k"))
}

func TestFileStoreRejectsEmptyKey(t *testing.T) {
	st, err := store.NewFileStore(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	assert.ErrorIs(t, st.Set("", "v"), store.ErrKeyRequired)
	assert.ErrorIs(t, st.Clear("  "), store.ErrKeyRequired)

	_, ok := st.Get("")
	assert.False(t, ok)
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	st, err := store.NewFileStore(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	require.NoError(t, st.Set("watch/history:v1", "data"))

	got, ok := st.Get("watch/history:v1")
	require.True(t, ok)
	assert.Equal(t, "data", got)
}

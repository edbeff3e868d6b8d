package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	st, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, st.Set(ctx, CartStorageKey, []byte(`[{"id":"a"}]`)))

	data, err := st.Get(ctx, CartStorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), data)
}

func TestFileStore_GetMissingKey(t *testing.T) {
	st, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	_, err = st.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_OverwriteReplacesBlob(t *testing.T) {
	st, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, st.Set(ctx, CartStorageKey, []byte(`["old"]`)))
	require.NoError(t, st.Set(ctx, CartStorageKey, []byte(`[]`)))

	data, err := st.Get(ctx, CartStorageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}

func TestFileStore_CreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	_, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, st.Set(context.Background(), CartStorageKey, []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, CartStorageKey+".json", entries[0].Name())
}

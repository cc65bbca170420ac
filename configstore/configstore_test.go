package configstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.GetConfig(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.UpdateConfig(ctx, "key", "value-1"))
	value, err := store.GetConfig(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value-1", value)

	require.NoError(t, store.UpdateConfig(ctx, "key", "value-2"))
	value, err = store.GetConfig(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value-2", value)

	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "modelcache.db")

	store, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)

	_, err = store.GetConfig(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.UpdateConfig(ctx, "key", `{"acme":{}}`))
	value, err := store.GetConfig(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `{"acme":{}}`, value)

	// Updates replace, not duplicate.
	require.NoError(t, store.UpdateConfig(ctx, "key", `{"acme":{"v":2}}`))
	value, err = store.GetConfig(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `{"acme":{"v":2}}`, value)

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Close())

	// Contents survive reopening the file.
	reopened, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer reopened.Close()
	value, err = reopened.GetConfig(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `{"acme":{"v":2}}`, value)
}

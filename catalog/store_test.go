package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capsohq/modelcache/configstore"
	"github.com/capsohq/modelcache/schemas"
)

func testStoreConfig() Config {
	cfg := Config{}
	cfg.CheckAndSetDefaults()
	return cfg
}

func TestStateStore_EnsureCreatesDefaults(t *testing.T) {
	cfg := testStoreConfig()
	store := newStateStore(cfg, nil)

	ent := store.ensure("acme")
	require.NotNil(t, ent)
	assert.Equal(t, int64(0), ent.state.LastFetchTime)
	assert.Empty(t, ent.state.Models)
	assert.Equal(t, cfg.InitialInterval.Milliseconds(), ent.state.CurrentIntervalMs)
	assert.Equal(t, 0, ent.state.ConsecutiveIdenticalFetches)
	assert.Nil(t, ent.signature)

	// ensure is idempotent.
	assert.Same(t, ent, store.ensure("acme"))
}

func TestStateStore_CommitStripsIsFetching(t *testing.T) {
	ctx := context.Background()
	cfg := testStoreConfig()
	durable := configstore.NewMemoryStore()
	store := newStateStore(cfg, durable)

	ent := store.ensure("acme")
	ent.state.Models = []schemas.Model{{ID: "m1"}}
	ent.state.LastFetchTime = 42
	ent.state.IsFetching = true
	require.NoError(t, store.commit(ctx))

	payload, err := durable.GetConfig(ctx, configFetchStateKey)
	require.NoError(t, err)
	assert.NotContains(t, payload, "IsFetching")
	assert.NotContains(t, payload, "is_fetching")

	reloaded := newStateStore(cfg, durable)
	require.NoError(t, reloaded.load(ctx))
	loaded := reloaded.get("acme")
	require.NotNil(t, loaded)
	assert.False(t, loaded.state.IsFetching)
	assert.Equal(t, int64(42), loaded.state.LastFetchTime)
	assert.Equal(t, "m1", loaded.state.Models[0].ID)
}

func TestStateStore_LoadMissingKeyIsEmpty(t *testing.T) {
	store := newStateStore(testStoreConfig(), configstore.NewMemoryStore())
	require.NoError(t, store.load(context.Background()))
	assert.Empty(t, store.entries)
}

func TestStateStore_LoadRepairsInterval(t *testing.T) {
	ctx := context.Background()
	cfg := testStoreConfig()
	durable := configstore.NewMemoryStore()
	require.NoError(t, durable.UpdateConfig(ctx, configFetchStateKey,
		`{"acme":{"last_fetch_time":1,"models":null,"current_interval_ms":0}}`))

	store := newStateStore(cfg, durable)
	require.NoError(t, store.load(ctx))
	ent := store.get("acme")
	require.NotNil(t, ent)
	assert.NotNil(t, ent.state.Models)
	assert.Equal(t, cfg.InitialInterval.Milliseconds(), ent.state.CurrentIntervalMs)
}

func TestStateStore_Remove(t *testing.T) {
	ctx := context.Background()
	durable := configstore.NewMemoryStore()
	store := newStateStore(testStoreConfig(), durable)

	store.ensure("acme")
	require.NoError(t, store.commit(ctx))
	require.NoError(t, store.remove(ctx, "acme"))
	assert.Nil(t, store.get("acme"))

	// The removal was persisted, not just dropped from memory.
	reloaded := newStateStore(testStoreConfig(), durable)
	require.NoError(t, reloaded.load(ctx))
	assert.Nil(t, reloaded.get("acme"))

	// Removing an absent key is a no-op.
	require.NoError(t, store.remove(ctx, "ghost"))
}

func TestStateStore_DraftCommitIsNoop(t *testing.T) {
	store := newStateStore(testStoreConfig(), nil)
	store.ensure("session-1")
	assert.NoError(t, store.commit(context.Background()))
}

func TestFetchStateClone(t *testing.T) {
	cw := 128000
	original := &FetchState{
		Models:     []schemas.Model{{ID: "m1", ContextWindow: &cw, Capabilities: []string{"chat"}}},
		ModelsHash: "abc",
	}
	clone := original.Clone()

	clone.Models[0].ID = "changed"
	*clone.Models[0].ContextWindow = 1
	clone.Models[0].Capabilities[0] = "changed"

	assert.Equal(t, "m1", original.Models[0].ID)
	assert.Equal(t, 128000, *original.Models[0].ContextWindow)
	assert.Equal(t, "chat", original.Models[0].Capabilities[0])
}

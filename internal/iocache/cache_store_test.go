package iocache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCacheStore(t *testing.T, now *time.Time) *CacheStoreImpl {
	t.Helper()
	store, err := NewCacheStore(cacheTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	store.now = func() time.Time { return *now }
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCacheStoreGetSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newTestCacheStore(t, &now)

	_, ok, err := store.Get(ctx, "heatmap:1:30")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "heatmap:1:30", []byte(`{"a":1}`), time.Minute))
	value, ok, err := store.Get(ctx, "heatmap:1:30")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(value))

	require.NoError(t, store.Set(ctx, "heatmap:1:30", []byte(`{"a":2}`), time.Minute))
	value, _, err = store.Get(ctx, "heatmap:1:30")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(value), "set replaces the value")

	now = now.Add(time.Minute)
	_, ok, err = store.Get(ctx, "heatmap:1:30")
	require.NoError(t, err)
	assert.False(t, ok, "entries expire after their ttl")

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalEntries, "expired entries are removed on read")
}

func TestCacheStoreDeletePrefix(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newTestCacheStore(t, &now)

	keys := []string{"heatmap:3:30", "heatmap:3:7", "heatmap:31:30", "stats:3:30", "a_b:1", "axb:1"}
	for _, k := range keys {
		require.NoError(t, store.Set(ctx, k, []byte("v"), time.Hour))
	}

	require.NoError(t, store.Delete(ctx, "heatmap:3:"))
	require.NoError(t, store.Delete(ctx, "a_b"))

	present := map[string]bool{}
	for _, k := range keys {
		_, ok, err := store.Get(ctx, k)
		require.NoError(t, err)
		present[k] = ok
	}
	assert.Equal(t, map[string]bool{
		"heatmap:3:30":  false,
		"heatmap:3:7":   false,
		"heatmap:31:30": true,
		"stats:3:30":    true,
		"a_b:1":         false,
		"axb:1":         true,
	}, present)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalEntries)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Positive(t, status.TableSizeBytes)
	assert.True(t, now.Equal(status.LastEntryTime))
}

func TestNewCacheStoreInvalidTable(t *testing.T) {
	_, err := NewCacheStore("bad-name;", schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	assert.Error(t, err)
}

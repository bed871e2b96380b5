package iocache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals restores the package-level manager state between tests.
func resetGlobals(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &StoreManager{}
	t.Cleanup(func() {
		CloseStores()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		Manager = &StoreManager{}
	})
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite records without cache", func(t *testing.T) {
		resetGlobals(t)
		recordPath := filepath.Join(t.TempDir(), "records.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, recordPath, schema.NoneBackend, ""))
		assert.NotNil(t, Manager.GetRecordStore())
		assert.Nil(t, Manager.GetCacheStore(), "none cache stays a nil interface")

		_, err := os.Stat(recordPath)
		assert.NoError(t, err, "database file should be created")
	})

	t.Run("sqlite records and cache", func(t *testing.T) {
		resetGlobals(t)
		dir := t.TempDir()

		require.NoError(t, InitStores(schema.SQLiteBackend, filepath.Join(dir, "records.db"), schema.SQLiteBackend, filepath.Join(dir, "cache.db")))
		require.NotNil(t, Manager.GetCacheStore())

		status, err := Manager.GetCacheStore().GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals(t)
		path := filepath.Join(t.TempDir(), "records.db")

		assert.NoError(t, InitStores(schema.SQLiteBackend, path, schema.NoneBackend, ""))
		first := Manager.GetRecordStore()
		assert.NoError(t, InitStores(schema.SQLiteBackend, path, schema.NoneBackend, ""))
		assert.Same(t, first, Manager.GetRecordStore())

		CloseStores()
		CloseStores()
	})

	t.Run("invalid redis url", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores(schema.NoneBackend, "", schema.RedisBackend, "not-a-url")
		assert.Error(t, err)
	})
}

func TestNewCacheNone(t *testing.T) {
	cache, err := NewCache(schema.NoneBackend, "")
	require.NoError(t, err)
	assert.Nil(t, cache)
}

func TestClearRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	store, err := NewRecordStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	_, err = store.AddSector(context.Background(), 1, "TI", "")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearRecords(schema.SQLiteBackend, path, ""))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ClearRecords(schema.SQLiteBackend, path, ""), "missing file is not an error")
	assert.Error(t, ClearRecords(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearRecords(schema.NoneBackend, "", ""))
	assert.Error(t, ClearRecords(schema.RedisBackend, "", "redis://localhost:6379/0"))
}

func TestClearCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	require.NoError(t, ClearCache(schema.SQLiteBackend, path, ""))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.Error(t, ClearCache(schema.RedisBackend, "", "::bad::"))
	assert.Error(t, ClearCache(schema.DatabaseBackend("oracle"), "", ""))
}

func TestResolveSQLitePath(t *testing.T) {
	assert.Equal(t, "/tmp/default.db", ResolveSQLitePath("", "/tmp/default.db"))
	assert.Equal(t, "custom.db", ResolveSQLitePath("custom.db", "/tmp/default.db"))
}

package iocache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/redis/go-redis/v9"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager.
// A none cache backend leaves the cache store nil so callers skip caching entirely.
func InitStores(recordBackend schema.DatabaseBackend, recordConnStr string, cacheBackend schema.DatabaseBackend, cacheConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		records, err := NewRecordStore(recordBackend, recordConnStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize record store: %w", err)
			return
		}

		cache, err := NewCache(cacheBackend, cacheConnStr)
		if err != nil {
			_ = records.Close()
			initErr = fmt.Errorf("failed to initialize cache: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.records = records
		Manager.cache = cache
	})

	return initErr
}

// NewCache returns the cache store for the backend, or nil for none.
func NewCache(backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	switch backend {
	case schema.NoneBackend, "":
		return nil, nil
	case schema.RedisBackend:
		store, err := NewRedisCacheStore(connStr)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := NewCacheStore(cacheTable, backend, connStr)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.records != nil {
			_ = Manager.records.Close()
		}
		if Manager.cache != nil {
			_ = Manager.cache.Close()
		}
	})
}

// ClearRecords deletes all stored records and sectors.
// For SQLite it deletes the database file; for MySQL and PostgreSQL it drops the tables.
func ClearRecords(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		// Records reference sectors, so they go first
		for _, table := range []string{recordsTable, sectorsTable} {
			if err := clearSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported record backend for clearing: %s", backend)
	}
}

// ClearCache clears every cached aggregate for the specified backend.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTable(backend, connStr, cacheTable)
	case schema.RedisBackend:
		opts, err := redis.ParseURL(connStr)
		if err != nil {
			return fmt.Errorf("invalid Redis connection string: %w", err)
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		return deleteRedisKeys(context.Background(), client, redisKeyPrefix+"*")
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

func removeSQLiteFile(dbFilePath string) error {
	if dbFilePath == "" {
		return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
	}
	if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
	}
	return nil
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	driverName, err := driverFor(backend)
	if err != nil {
		return err
	}
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}

// ResolveSQLitePath returns the file behind a SQLite connection string, or the default path.
func ResolveSQLitePath(connStr, defaultPath string) string {
	if connStr == "" {
		return defaultPath
	}
	return connStr
}

package iocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
)

// cacheTable is the name of the key/value table for cached aggregates.
const cacheTable = "workwell_cache"

// CacheStoreImpl is a key/value cache with expiry kept in a SQL table.
type CacheStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
	now       func() time.Time
}

var _ contract.CacheStore = &CacheStoreImpl{} // Compile-time check

// NewCacheStore opens the cache database and creates its table.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (*CacheStoreImpl, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	db, err := openDB(backend, connStr, contract.GetCacheDBFilePath())
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(getCreateTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &CacheStoreImpl{
		db:        db,
		tableName: tableName,
		backend:   backend,
		connStr:   connStr,
		now:       time.Now,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
// Timestamps are Unix nanoseconds.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quoted := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			cache_key VARCHAR(255) PRIMARY KEY,
			cache_value MEDIUMBLOB NOT NULL,
			created_at BIGINT NOT NULL,
			expires_at BIGINT NOT NULL
		)`, quoted)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			cache_key TEXT PRIMARY KEY,
			cache_value BYTEA NOT NULL,
			created_at BIGINT NOT NULL,
			expires_at BIGINT NOT NULL
		)`, quoted)
	default: // SQLite
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			cache_key TEXT PRIMARY KEY,
			cache_value BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		)`, quoted)
	}
}

// Get returns the value for key. Expired entries are deleted and reported as a miss.
func (cs *CacheStoreImpl) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := rebind(fmt.Sprintf(`SELECT cache_value, expires_at FROM %s WHERE cache_key = ?`, quoteTableName(cs.tableName, cs.backend)), cs.backend)

	var value []byte
	var expiresAt int64
	err := cs.db.QueryRowContext(ctx, query, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if cs.now().UnixNano() >= expiresAt {
		del := rebind(fmt.Sprintf(`DELETE FROM %s WHERE cache_key = ?`, quoteTableName(cs.tableName, cs.backend)), cs.backend)
		_, _ = cs.db.ExecContext(ctx, del, key)
		return nil, false, nil
	}
	return value, true, nil
}

// Set inserts or replaces a key/value pair that expires after ttl.
func (cs *CacheStoreImpl) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := cs.now()
	_, err := cs.db.ExecContext(ctx, cs.getUpsertQuery(), key, value, now.UnixNano(), now.Add(ttl).UnixNano())
	return err
}

// Delete removes every key starting with prefix.
func (cs *CacheStoreImpl) Delete(ctx context.Context, prefix string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE cache_key LIKE ? ESCAPE '!'`, quoteTableName(cs.tableName, cs.backend))
	_, err := cs.db.ExecContext(ctx, rebind(query, cs.backend), escapeLike(prefix)+"%")
	return err
}

// escapeLike escapes LIKE wildcards with "!".
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// getUpsertQuery returns the UPSERT query for the backend.
func (cs *CacheStoreImpl) getUpsertQuery() string {
	quoted := quoteTableName(cs.tableName, cs.backend)
	switch cs.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, created_at, expires_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, created_at = new.created_at, expires_at = new.expires_at`, quoted)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, created_at, expires_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at`, quoted)
	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_value, created_at, expires_at) VALUES (?, ?, ?, ?)`, quoted)
	}
}

// Close closes the underlying DB connection.
func (cs *CacheStoreImpl) Close() error {
	if cs.db != nil {
		return cs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the cache store.
func (cs *CacheStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(cs.backend),
		Connected: cs.db != nil,
	}
	quoted := quoteTableName(cs.tableName, cs.backend)

	if err := cs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted)).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastNs, oldestNs int64
	if err := cs.db.QueryRow(fmt.Sprintf("SELECT MAX(created_at), MIN(created_at) FROM %s", quoted)).Scan(&lastNs, &oldestNs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(0, lastNs)
	status.OldestEntryTime = time.Unix(0, oldestNs)
	status.TableSizeBytes = cs.tableSize(status.TotalEntries)

	return status, nil
}

// tableSize asks the backend for the table footprint, falling back to a rough estimate.
func (cs *CacheStoreImpl) tableSize(entries int) int64 {
	estimate := int64(entries) * 1000
	var size int64
	var err error

	switch cs.backend {
	case schema.SQLiteBackend:
		err = cs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()").Scan(&size)
	case schema.MySQLBackend:
		cfg, perr := mysql.ParseDSN(cs.connStr)
		if perr != nil || cfg.DBName == "" {
			return estimate
		}
		err = cs.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, cs.tableName).Scan(&size)
	case schema.PostgreSQLBackend:
		err = cs.db.QueryRow("SELECT pg_total_relation_size($1)", cs.tableName).Scan(&size)
	default:
		return estimate
	}
	if err != nil {
		return estimate
	}
	return size
}

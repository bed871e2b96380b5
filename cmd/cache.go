package cmd

import (
	"fmt"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/internal/iocache"
	"github.com/huangsam/workwell/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup(open bool) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", backend)
	}
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if open {
		if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
			return fmt.Errorf("failed to initialize cache: %w", err)
		}
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup, so they work without a reachable record store.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the heatmap and statistics cache",
	Long: `Manage the cache that holds computed heatmaps and statistics.

Entries expire after --cache-ttl and are dropped for a company whenever one of
its records is submitted.

Supported backends: SQLite (default), MySQL, PostgreSQL, Redis, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  workwell cache status
  workwell cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached aggregates",
	Long: `Delete all cached heatmaps and statistics from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table
For Redis: Deletes every workwell:* key

Examples:
  workwell cache clear
  WORKWELL_CACHE_BACKEND=redis WORKWELL_CACHE_DB_CONNECT="redis://localhost:6379/0" workwell cache clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return cacheSetup(false)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		path := iocache.ResolveSQLitePath(cfg.CacheDBConnect, contract.GetCacheDBFilePath())
		if err := iocache.ClearCache(cfg.CacheBackend, path, cfg.CacheDBConnect); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Cache cleared successfully.")
		return nil
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend type, connection status, number of entries,
newest and oldest entry times and the storage size of the cache.

Examples:
  workwell cache status`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return cacheSetup(true)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		store := iocache.Manager.GetCacheStore()
		if store == nil {
			fmt.Println("Cache is disabled (backend: none).")
			return nil
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get cache status: %w", err)
		}
		iocache.PrintCacheStatus(status)
		return nil
	},
}

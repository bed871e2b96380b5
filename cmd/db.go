package cmd

import (
	"fmt"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/internal/iocache"
	"github.com/huangsam/workwell/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// recordBackendFromConfig reads and checks the record backend settings.
func recordBackendFromConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	backend := schema.DatabaseBackend(viper.GetString("record-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidRecordBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid record backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("record-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// dbSetup loads minimal configuration needed for record store operations.
// This is used by commands that need record access without full shared setup.
func dbSetup() error {
	backend, connStr, err := recordBackendFromConfig()
	if err != nil {
		return err
	}

	// No cache for db commands
	if err := iocache.InitStores(backend, connStr, schema.NoneBackend, ""); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	cfg.RecordBackend = backend
	cfg.RecordDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// dbSetupWrapper wraps dbSetup to provide PreRunE for db commands.
func dbSetupWrapper(_ *cobra.Command, _ []string) error {
	return dbSetup()
}

// dbMigrateSetup loads the record backend without opening stores,
// so migrations can run on a fresh database.
func dbMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := recordBackendFromConfig()
	if err != nil {
		return err
	}
	cfg.RecordBackend = backend
	cfg.RecordDBConnect = connStr
	return nil
}

// dbCmd focused on record storage management.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage stored wellbeing records",
	Long: `Manage the database holding sectors and wellbeing records.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (read-only, empty)

Subcommands:
  status  - Show record counts and table sizes
  export  - Export records to Parquet for analytics
  clear   - Remove all records and sectors
  migrate - Run database schema migrations

Examples:
  # Check what is stored
  workwell db status

  # Export for analysis in pandas or DuckDB
  workwell db export --output-file wellbeing`,
}

// dbClearCmd drops every record and sector.
var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored records and sectors",
	Long: `Delete every record and sector from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the record and sector tables

Examples:
  workwell db clear
  WORKWELL_RECORD_BACKEND=postgresql WORKWELL_RECORD_DB_CONNECT="..." workwell db clear`,
	PreRunE: dbMigrateSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		path := iocache.ResolveSQLitePath(cfg.RecordDBConnect, contract.GetRecordDBFilePath())
		if err := iocache.ClearRecords(cfg.RecordBackend, path, cfg.RecordDBConnect); err != nil {
			return fmt.Errorf("failed to clear records: %w", err)
		}
		fmt.Println("Records cleared successfully.")
		return nil
	},
}

// dbStatusCmd shows record store status.
var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record counts and connection details",
	Long: `Show the backend, connection state, number of sectors and records,
the oldest and newest record and the size of each table.

Examples:
  workwell db status`,
	PreRunE: dbSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		status, err := iocache.Manager.GetRecordStore().GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get record status: %w", err)
		}
		iocache.PrintRecordStatus(status)
		return nil
	},
}

// dbExportCmd exports records to Parquet.
var dbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to Parquet for BI tools and analytics",
	Long: `Export every stored record to a Parquet file named <output-file>.records.parquet.

Comments of anonymous records are left out of the export.

Requires: --output-file parameter

Examples:
  workwell db export --output-file wellbeing
  duckdb -c "SELECT sector_id, avg(stress) FROM read_parquet('wellbeing.records.parquet') GROUP BY 1"`,
	PreRunE: dbSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return iocache.ExecuteRecordExport(rootCtx, iocache.Manager, cfg.OutputFile)
	},
}

// dbMigrateCmd runs schema migrations for the record store.
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the record store.

By default, migrates to the latest version. Use --target-version for specific versions.
Version 3 adds the (company_id, created_at) index used by heatmaps and statistics.

Examples:
  # Migrate to latest version (default)
  workwell db migrate

  # Migrate to specific version
  workwell db migrate --target-version 2

  # Rollback everything
  workwell db migrate --target-version 0`,
	PreRunE: dbMigrateSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if _, err := iocache.MigrateRecords(cfg.RecordBackend, cfg.RecordDBConnect, viper.GetInt("target-version")); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	},
}

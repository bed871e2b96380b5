package iocache

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/internal/parquet"
)

// ExecuteRecordExport exports every record of the manager's record store to a Parquet file.
func ExecuteRecordExport(ctx context.Context, mgr contract.StoreManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetRecordStore()
	if store == nil {
		return errors.New("record store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get record status: %w", err)
	}
	if status.TotalRecords == 0 {
		return errors.New("no records found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total records: %d\n", status.TotalRecords)

	records, err := store.AllRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve records: %w", err)
	}

	recordsFile := outputFile + ".records.parquet"
	rows := parquet.ConvertRecords(records)
	if err := parquet.WriteRecordsParquet(rows, recordsFile); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	fmt.Printf("Exported %d records to: %s\n", len(rows), recordsFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}

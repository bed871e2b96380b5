package iocache

import (
	"fmt"
	"sort"

	"github.com/huangsam/workwell/schema"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format(statusTimeFormat))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format(statusTimeFormat))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintRecordStatus prints record store status information.
func PrintRecordStatus(status schema.RecordStatus) {
	fmt.Printf("Record Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Sectors: %d\n", status.TotalSectors)
	fmt.Printf("Total Records: %d\n", status.TotalRecords)
	if status.TotalRecords > 0 {
		fmt.Printf("Last Record ID: %d\n", status.LastRecordID)
		fmt.Printf("Last Record: %s\n", status.LastRecordTime.Format(statusTimeFormat))
		fmt.Printf("Oldest Record: %s\n", status.OldestRecordTime.Format(statusTimeFormat))
	}

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	fmt.Println("Table Sizes:")
	for _, table := range tables {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}

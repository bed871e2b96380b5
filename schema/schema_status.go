package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// RecordStatus represents the status of the record store.
type RecordStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalRecords     int              `json:"total_records"`
	TotalSectors     int              `json:"total_sectors"`
	LastRecordID     int64            `json:"last_record_id"`
	LastRecordTime   time.Time        `json:"last_record_time"`
	OldestRecordTime time.Time        `json:"oldest_record_time"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}

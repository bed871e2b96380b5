// Package parquet exports stored wellbeing records to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/workwell/schema"
	"github.com/parquet-go/parquet-go"
)

// Record is one row of the exported records file.
// It maps to the workwell_records database table.
type Record struct {
	RecordID   int64 `parquet:"record_id,snappy"`
	EmployeeID int64 `parquet:"employee_id,snappy"`
	CompanyID  int64 `parquet:"company_id,snappy"`
	SectorID   int64 `parquet:"sector_id,snappy"`

	// Ratings are in [1,10]
	Stress     int32 `parquet:"stress,snappy"`
	Happiness  int32 `parquet:"happiness,snappy"`
	Anxiety    int32 `parquet:"anxiety,snappy"`
	Motivation int32 `parquet:"motivation,snappy"`

	// Comment is dropped for anonymous records
	Comment   *string `parquet:"comment,optional,snappy"`
	Anonymous bool    `parquet:"anonymous,snappy"`

	SentimentLabel *string  `parquet:"sentiment_label,optional,snappy"`
	SentimentScore *float64 `parquet:"sentiment_score,optional,snappy"`

	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ConvertRecords converts stored records to Parquet rows.
func ConvertRecords(records []schema.Record) []Record {
	result := make([]Record, len(records))
	for i, r := range records {
		row := Record{
			RecordID:       r.ID,
			EmployeeID:     r.EmployeeID,
			CompanyID:      r.CompanyID,
			SectorID:       r.SectorID,
			Stress:         int32(r.Ratings.Stress),
			Happiness:      int32(r.Ratings.Happiness),
			Anxiety:        int32(r.Ratings.Anxiety),
			Motivation:     int32(r.Ratings.Motivation),
			Anonymous:      r.Anonymous,
			SentimentScore: r.SentimentScore,
			CreatedAt:      r.CreatedAt.UTC(),
		}
		if r.Comment != "" && !r.Anonymous {
			comment := r.Comment
			row.Comment = &comment
		}
		if r.SentimentLabel != "" {
			label := r.SentimentLabel
			row.SentimentLabel = &label
		}
		result[i] = row
	}
	return result
}

// WriteRecordsParquet writes the rows to a Parquet file at outputPath.
func WriteRecordsParquet(data []Record, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the Record struct tags
	writer := parquet.NewGenericWriter[Record](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

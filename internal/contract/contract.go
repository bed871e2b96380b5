// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/workwell/schema"
)

// Sentinel errors shared across packages.
var (
	// ErrNotFound is returned by stores when a record or sector does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClassifierUnavailable is returned when an LLM classifier or recommender is needed but not configured.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// RecordStore defines the operations for persisting emotional records and sectors.
// This allows the service layer to be tested without a real database.
type RecordStore interface {
	// --- Sectors ---

	// AddSector creates a sector for a company and returns it with its new ID.
	AddSector(ctx context.Context, companyID int64, name, description string) (schema.Sector, error)

	// ListSectors returns the sectors of a company ordered by name.
	ListSectors(ctx context.Context, companyID int64) ([]schema.Sector, error)

	// --- Records ---

	// InsertRecord stores a record and returns its ID. CreatedAt is set by the store when zero.
	InsertRecord(ctx context.Context, rec schema.Record) (int64, error)

	// UpdateSentiment attaches a sentiment label and score to a stored record.
	UpdateSentiment(ctx context.Context, recordID int64, label schema.SentimentLabel, score float64) error

	// AllRecords returns every stored record ordered by ID.
	AllRecords(ctx context.Context) ([]schema.Record, error)

	// --- Aggregates ---

	// SectorAggregates returns per-sector averages of records created at or after since.
	SectorAggregates(ctx context.Context, companyID int64, since time.Time) ([]schema.SectorAggregate, error)

	// CompanyStatistics returns company-wide averages of records created at or after since.
	CompanyStatistics(ctx context.Context, companyID int64, since time.Time) (schema.Statistics, error)

	// GetStatus returns status information about the record store.
	GetStatus() (schema.RecordStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// CacheStore defines the interface for cached aggregate data.
// This allows mocking the store for testing.
type CacheStore interface {
	// Get returns the cached value and whether it was found and still fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value that expires after ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes every entry whose key starts with prefix.
	Delete(ctx context.Context, prefix string) error

	// GetStatus returns status information about the cache store.
	GetStatus() (schema.CacheStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for managing the record and cache stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetRecordStore() RecordStore
	GetCacheStore() CacheStore
}

// Classifier turns a free-text comment into a sentiment judgment.
type Classifier interface {
	Classify(ctx context.Context, text string) (*schema.SentimentJudgment, error)
}

// Recommender produces personalized recommendations for an assessment.
type Recommender interface {
	Recommend(ctx context.Context, r schema.Ratings, a schema.Assessment, s *schema.SentimentJudgment, comment string) (schema.Recommendation, error)
}

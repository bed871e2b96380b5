package iocache

import (
	"context"
	"time"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRecordStore implements the StoreManager interface.
func (m *MockStoreManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RecordStore)
	return store
}

// GetCacheStore implements the StoreManager interface.
func (m *MockStoreManager) GetCacheStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1), args.Error(2)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete implements the CacheStore interface.
func (m *MockCacheStore) Delete(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// AddSector implements the RecordStore interface.
func (m *MockRecordStore) AddSector(ctx context.Context, companyID int64, name, description string) (schema.Sector, error) {
	args := m.Called(ctx, companyID, name, description)
	return args.Get(0).(schema.Sector), args.Error(1)
}

// ListSectors implements the RecordStore interface.
func (m *MockRecordStore) ListSectors(ctx context.Context, companyID int64) ([]schema.Sector, error) {
	args := m.Called(ctx, companyID)
	sectors, _ := args.Get(0).([]schema.Sector)
	return sectors, args.Error(1)
}

// InsertRecord implements the RecordStore interface.
func (m *MockRecordStore) InsertRecord(ctx context.Context, rec schema.Record) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

// UpdateSentiment implements the RecordStore interface.
func (m *MockRecordStore) UpdateSentiment(ctx context.Context, recordID int64, label schema.SentimentLabel, score float64) error {
	args := m.Called(ctx, recordID, label, score)
	return args.Error(0)
}

// AllRecords implements the RecordStore interface.
func (m *MockRecordStore) AllRecords(ctx context.Context) ([]schema.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.Record)
	return records, args.Error(1)
}

// SectorAggregates implements the RecordStore interface.
func (m *MockRecordStore) SectorAggregates(ctx context.Context, companyID int64, since time.Time) ([]schema.SectorAggregate, error) {
	args := m.Called(ctx, companyID, since)
	rows, _ := args.Get(0).([]schema.SectorAggregate)
	return rows, args.Error(1)
}

// CompanyStatistics implements the RecordStore interface.
func (m *MockRecordStore) CompanyStatistics(ctx context.Context, companyID int64, since time.Time) (schema.Statistics, error) {
	args := m.Called(ctx, companyID, since)
	return args.Get(0).(schema.Statistics), args.Error(1)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus() (schema.RecordStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RecordStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

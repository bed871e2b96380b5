// Package iocache has record storage and the cache for computed aggregates.
package iocache

import (
	"sync"

	"github.com/huangsam/workwell/internal/contract"
)

// StoreManager holds the record and cache stores used by the application.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	records      contract.RecordStore
	cache        contract.CacheStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetRecordStore returns the record store.
func (mgr *StoreManager) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}

// GetCacheStore returns the cache store, or nil when caching is disabled.
func (mgr *StoreManager) GetCacheStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.cache
}

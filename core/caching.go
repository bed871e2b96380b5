package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/workwell/internal/contract"
)

// Cache key prefixes. Keys end with ":<days>" so one company prefix covers every window.
const (
	heatmapPrefix = "heatmap"
	statsPrefix   = "stats"
)

func heatmapKey(companyID int64, days int) string {
	return fmt.Sprintf("%s:%d:%d", heatmapPrefix, companyID, days)
}

func statsKey(companyID int64, days int) string {
	return fmt.Sprintf("%s:%d:%d", statsPrefix, companyID, days)
}

// cached returns the cached JSON value for key, or computes and stores it.
// Cache errors degrade to a miss.
func cached[T any](ctx context.Context, s *Service, key string, compute func() (T, error)) (T, error) {
	if result, ok := checkCacheHit[T](ctx, s.cache, key); ok {
		return result, nil
	}

	result, err := compute()
	if err != nil {
		return result, err
	}
	storeResult(ctx, s.cache, key, result, s.cacheTTL)
	return result, nil
}

// checkCacheHit attempts to retrieve and decode a cached result.
func checkCacheHit[T any](ctx context.Context, cache contract.CacheStore, key string) (T, bool) {
	var result T
	if cache == nil {
		return result, false
	}
	data, ok, err := cache.Get(ctx, key)
	if err != nil || !ok {
		return result, false // Cache miss
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false // Corrupt entry
	}
	return result, true
}

// storeResult writes a computed result to the cache.
func storeResult[T any](ctx context.Context, cache contract.CacheStore, key string, result T, ttl time.Duration) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		contract.LogWarn("Cannot encode cache entry "+key, err)
		return
	}
	if err := cache.Set(ctx, key, data, ttl); err != nil {
		contract.LogWarn("Cannot write cache entry "+key, err)
	}
}

// invalidate drops every cached aggregate of a company.
func (s *Service) invalidate(ctx context.Context, companyID int64) {
	if s.cache == nil {
		return
	}
	for _, prefix := range []string{heatmapPrefix, statsPrefix} {
		p := fmt.Sprintf("%s:%d:", prefix, companyID)
		if err := s.cache.Delete(ctx, p); err != nil {
			contract.LogWarn("Cannot invalidate cache prefix "+p, err)
		}
	}
}

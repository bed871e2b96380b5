package iocache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces every cache key written to Redis.
const redisKeyPrefix = "workwell:"

// scanBatch is the COUNT hint used when walking keys.
const scanBatch = 200

// RedisCacheStore keeps cached aggregates in Redis with native expiry.
type RedisCacheStore struct {
	client *redis.Client
}

var _ contract.CacheStore = &RedisCacheStore{} // Compile-time check

// NewRedisCacheStore connects to the Redis server described by a redis:// URL.
func NewRedisCacheStore(connStr string) (*RedisCacheStore, error) {
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis connection string: %w. Check connection format: redis://[:password@]host:port/db", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis. Check that the server is running: %w", err)
	}
	return &RedisCacheStore{client: client}, nil
}

// Get returns the value for key.
func (rc *RedisCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := rc.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores value under key for ttl.
func (rc *RedisCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return rc.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}

// Delete removes every key starting with prefix.
func (rc *RedisCacheStore) Delete(ctx context.Context, prefix string) error {
	return deleteRedisKeys(ctx, rc.client, redisKeyPrefix+prefix+"*")
}

// deleteRedisKeys walks the keyspace with SCAN and deletes matches batch by batch.
func deleteRedisKeys(ctx context.Context, client *redis.Client, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}
		if len(keys) > 0 {
			if err := client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the client.
func (rc *RedisCacheStore) Close() error {
	return rc.client.Close()
}

// GetStatus counts the namespaced keys. Redis keeps no creation times, so those stay zero.
func (rc *RedisCacheStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: string(schema.RedisBackend)}
	ctx := context.Background()

	if err := rc.client.Ping(ctx).Err(); err != nil {
		return status, nil
	}
	status.Connected = true

	var cursor uint64
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, redisKeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return status, fmt.Errorf("failed to scan keys: %w", err)
		}
		status.TotalEntries += len(keys)
		for _, key := range keys {
			if size, err := rc.client.MemoryUsage(ctx, key).Result(); err == nil {
				status.TableSizeBytes += size
			}
		}
		if next == 0 {
			return status, nil
		}
		cursor = next
	}
}

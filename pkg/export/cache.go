package export

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores encoded exports by content key
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// MemoryCache is an in-process cache without eviction
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string][]byte),
	}
}

// Get returns a cached export
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.entries[key]

	return data, ok, nil
}

// Set stores an export
func (m *MemoryCache) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = data

	return nil
}

// Len returns the number of cached exports
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// RedisCache stores exports in Redis so that replicas share them
type RedisCache struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

// NewRedisCache creates a Redis-backed cache. A zero ttl keeps entries forever.
func NewRedisCache(redisClient *redis.Client, keyPrefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
		ttl:         ttl,
	}
}

// Get retrieves a cached export from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.redisClient.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // Cache miss
		}
		return nil, false, err
	}

	return data, true, nil
}

// Set stores an export in Redis
func (c *RedisCache) Set(ctx context.Context, key string, data []byte) error {
	return c.redisClient.Set(ctx, c.keyPrefix+key, data, c.ttl).Err()
}

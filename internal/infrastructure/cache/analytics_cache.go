package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	appperf "github.com/perfhub/backend/internal/application/performance"
	"github.com/perfhub/backend/internal/infrastructure/config"
)

// RedisAnalyticsCache caches aggregated analytics results in Redis. Entries
// expire on a short TTL rather than being invalidated on write: aggregates may
// lag submissions by at most the TTL, which the analytics service accepts.
type RedisAnalyticsCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisAnalyticsCache creates a Redis-backed analytics cache
func NewRedisAnalyticsCache(cfg *config.RedisConfig, ttl time.Duration) (*RedisAnalyticsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisAnalyticsCacheWithClient(client, ttl), nil
}

// NewRedisAnalyticsCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisAnalyticsCacheWithClient(client *redis.Client, ttl time.Duration) *RedisAnalyticsCache {
	return &RedisAnalyticsCache{
		client:    client,
		keyPrefix: "perfhub:",
		ttl:       ttl,
	}
}

// Get loads a cached value into dest. Returns false on a cache miss.
func (c *RedisAnalyticsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cached aggregate: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// A stale or incompatible payload is treated as a miss
		return false, nil
	}
	return true, nil
}

// Set stores a value under the key with the configured TTL
func (c *RedisAnalyticsCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode aggregate for caching: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache aggregate: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisAnalyticsCache) Close() error {
	return c.client.Close()
}

// Ensure RedisAnalyticsCache implements AnalyticsCache
var _ appperf.AnalyticsCache = (*RedisAnalyticsCache)(nil)

// InMemoryAnalyticsCache is a process-local analytics cache for tests and
// single-instance deployments without Redis.
type InMemoryAnalyticsCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	ttl     time.Duration
}

type inMemoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemoryAnalyticsCache creates an in-memory analytics cache
func NewInMemoryAnalyticsCache(ttl time.Duration) *InMemoryAnalyticsCache {
	return &InMemoryAnalyticsCache{
		entries: make(map[string]inMemoryEntry),
		ttl:     ttl,
	}
}

// Get loads a cached value into dest. Returns false on a miss or an expired entry.
func (c *InMemoryAnalyticsCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, nil
	}
	return true, nil
}

// Set stores a value under the key with the configured TTL
func (c *InMemoryAnalyticsCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode aggregate for caching: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = inMemoryEntry{data: data, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Ensure InMemoryAnalyticsCache implements AnalyticsCache
var _ appperf.AnalyticsCache = (*InMemoryAnalyticsCache)(nil)

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

const scanBatch = 100

// CacheRepository stores JSON payloads in Redis under a namespace so several
// deployments can share one instance. A nil client turns every read into a miss and
// every write into a no-op.
type CacheRepository struct {
	client    *redis.Client
	namespace string
	logger    *zap.Logger
}

// NewCacheRepository constructs a cache repository. An empty namespace stores keys as given.
func NewCacheRepository(client *redis.Client, namespace string, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, namespace: namespace, logger: logger}
}

func (r *CacheRepository) key(k string) string {
	if r.namespace == "" {
		return k
	}
	return r.namespace + ":" + k
}

// Get retrieves and unmarshals the cached value into dest. Entries that no longer
// decode are dropped and reported as a miss.
func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}
	full := r.key(key)
	raw, err := r.client.Get(ctx, full).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return appErrors.ErrCacheMiss
	case err != nil:
		return fmt.Errorf("redis get %s: %w", full, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		r.logger.Warn("dropping undecodable cache entry", zap.String("key", full), zap.Error(err))
		if delErr := r.client.Del(ctx, full).Err(); delErr != nil {
			r.logger.Warn("failed to drop cache entry", zap.String("key", full), zap.Error(delErr))
		}
		return appErrors.ErrCacheMiss
	}
	return nil
}

// Set stores value as JSON with the given TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	full := r.key(key)
	if err := r.client.Set(ctx, full, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", full, err)
	}
	return nil
}

// DeleteByPattern removes every key in the namespace matching pattern, one scan page
// per round trip.
func (r *CacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.client == nil {
		return nil
	}
	full := r.key(pattern)
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, full, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan %s: %w", full, err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete %d keys for %s: %w", len(keys), full, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping checks connectivity; a disabled cache is always healthy.
func (r *CacheRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

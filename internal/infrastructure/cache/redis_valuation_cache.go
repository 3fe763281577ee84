package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/motorlend/motorlend/internal/domain/service"
)

// RedisValuationCache implements port.ValuationCache on Redis. Appraisals
// are stored as JSON under a fingerprint key with a TTL, so a vehicle whose
// attributes have not changed is appraised once per window.
type RedisValuationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisValuationCache creates a cache around an existing client.
func NewRedisValuationCache(client *redis.Client, ttl time.Duration) *RedisValuationCache {
	return &RedisValuationCache{client: client, ttl: ttl}
}

func cacheKey(fingerprint string) string {
	return "motorlend:valuation:" + fingerprint
}

// Get returns the cached appraisal for the fingerprint, if any.
func (c *RedisValuationCache) Get(ctx context.Context, fingerprint string) (service.Appraisal, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return service.Appraisal{}, false, nil
		}
		return service.Appraisal{}, false, fmt.Errorf("redis get: %w", err)
	}

	var appraisal service.Appraisal
	if err := json.Unmarshal(data, &appraisal); err != nil {
		return service.Appraisal{}, false, fmt.Errorf("unmarshal cached appraisal: %w", err)
	}
	return appraisal, true, nil
}

// Set stores the appraisal under the fingerprint for the configured TTL.
func (c *RedisValuationCache) Set(ctx context.Context, fingerprint string, appraisal service.Appraisal) error {
	data, err := json.Marshal(appraisal)
	if err != nil {
		return fmt.Errorf("marshal appraisal: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(fingerprint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// HealthCheck pings Redis.
func (c *RedisValuationCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

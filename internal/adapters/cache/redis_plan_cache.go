package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"field-route-service/internal/domain"
)

// Redis-backed cache of computed dispatch results.
// Plans are small JSON blobs keyed by a request fingerprint; entries expire
// so stale ETAs age out on their own.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisPlanCache{Client: client, TTL: ttl}
}

// Get returns the cached plans for the key, or (nil, nil) on a miss.
func (c *RedisPlanCache) Get(ctx context.Context, key string) ([]*domain.RoutePlan, error) {
	if c.Client == nil {
		return nil, errors.New("plan cache: redis client is nil")
	}

	b, err := c.Client.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan cache: %w", err)
	}

	var plans []*domain.RoutePlan
	if err := json.Unmarshal(b, &plans); err != nil {
		return nil, fmt.Errorf("get plan cache: decode plans: %w", err)
	}

	return plans, nil
}

// Put stores the plans under the key with the configured TTL.
func (c *RedisPlanCache) Put(ctx context.Context, key string, plans []*domain.RoutePlan) error {
	if c.Client == nil {
		return errors.New("plan cache: redis client is nil")
	}

	b, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("put plan cache: encode plans: %w", err)
	}

	if err := c.Client.Set(ctx, c.redisKey(key), b, c.TTL).Err(); err != nil {
		return fmt.Errorf("put plan cache: %w", err)
	}

	return nil
}

func (c *RedisPlanCache) redisKey(key string) string {
	return "dispatch:" + key
}

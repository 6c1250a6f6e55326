package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns a Cache backed by redis. ttl of zero means entries
// live until evicted.
func NewRedis(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func redisKey(namespace, key string) string {
	return namespace + ":" + key
}

func (c *redisCache) Get(ctx context.Context, namespace, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, redisKey(namespace, key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s:%s: %w", namespace, key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s:%s: %w", namespace, key, err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, namespace, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s:%s: %w", namespace, key, err)
	}
	if err := c.client.Set(ctx, redisKey(namespace, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s:%s: %w", namespace, key, err)
	}
	return nil
}

func (c *redisCache) EvictAll(ctx context.Context, namespace string) error {
	iter := c.client.Scan(ctx, 0, namespace+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %s: %w", namespace, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache evict %s: %w", namespace, err)
	}
	return nil
}

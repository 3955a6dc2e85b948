// Copyright (c) 2026 PalText. All rights reserved.

package blog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort byte cache in front of the hot public aggregates
// (tag counts, blog stats). A nil Cache disables caching entirely; cache
// failures are never surfaced to callers.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// redisCache implements [Cache] on a go-redis client.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache wraps a Redis client as a [Cache].
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (cache *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		// Misses and transport errors are treated identically: go to the DB.
		return nil, false
	}
	return value, true
}

func (cache *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	_ = cache.client.Set(ctx, key, value, ttl).Err()
}

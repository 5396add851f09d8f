package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vntexthub/vietrag/internal/search"
)

// RedisSearchCache caches search responses in Redis. Cache failures are
// logged and treated as misses; the search path never depends on Redis
// being up.
type RedisSearchCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSearchCache(client *redis.Client, prefix string, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisSearchCache) Get(ctx context.Context, key string) ([]search.SearchResult, bool) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("Search cache read failed")
		}
		return nil, false
	}

	var results []search.SearchResult
	if err := json.Unmarshal(payload, &results); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Search cache entry corrupt, ignoring")
		return nil, false
	}

	return results, true
}

func (c *RedisSearchCache) Set(ctx context.Context, key string, results []search.SearchResult) {
	payload, err := json.Marshal(results)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to marshal search results for cache")
		return
	}

	if err := c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Search cache write failed")
	}
}

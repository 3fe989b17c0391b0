package cache

import (
	"carrier-match-service/internal/domain"
	"carrier-match-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "match:"

// RedisMatchCache stores match results in Redis with a fixed TTL.
type RedisMatchCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMatchCache(client *redis.Client, ttl time.Duration) *RedisMatchCache {
	return &RedisMatchCache{Client: client, TTL: ttl}
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (c *RedisMatchCache) Get(ctx context.Context, key string) (_ domain.MatchResult, _ bool, err error) {
	defer obs.Time(ctx, "match.cache.Get")(&err)

	if c.Client == nil {
		return domain.MatchResult{}, false, errors.New("match cache: redis client is nil")
	}

	b, err := c.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.MatchResult{}, false, nil
	}
	if err != nil {
		return domain.MatchResult{}, false, fmt.Errorf("get match cache: %w", err)
	}

	r, err := decodeMatch(b)
	if err != nil {
		return domain.MatchResult{}, false, fmt.Errorf("get match cache: %w", err)
	}
	return r, true, nil
}

func (c *RedisMatchCache) Put(ctx context.Context, key string, r domain.MatchResult) error {
	if c.Client == nil {
		return errors.New("match cache: redis client is nil")
	}

	b, err := encodeMatch(r)
	if err != nil {
		return fmt.Errorf("put match cache: %w", err)
	}

	if err := c.Client.Set(ctx, redisKeyPrefix+key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("put match cache: %w", err)
	}
	return nil
}

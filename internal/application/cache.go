package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jabaapp/user-service/pkg/helpers"
)

// AggregateCache stores rendered user aggregates keyed by id. Get reports
// whether the key existed.
type AggregateCache interface {
	Get(ctx context.Context, key string, dest *UserDTO) (bool, error)
	Set(ctx context.Context, key string, dto UserDTO, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisCache adapts a redis client to AggregateCache through the JSON
// helpers.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) RedisCache {
	return RedisCache{Client: client}
}

func (c RedisCache) Get(ctx context.Context, key string, dest *UserDTO) (bool, error) {
	return helpers.RedisGetJSON(ctx, c.Client, key, dest)
}

func (c RedisCache) Set(ctx context.Context, key string, dto UserDTO, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, c.Client, key, dto, ttl)
}

func (c RedisCache) Del(ctx context.Context, key string) error {
	return helpers.RedisDel(ctx, c.Client, key)
}

var _ AggregateCache = RedisCache{}

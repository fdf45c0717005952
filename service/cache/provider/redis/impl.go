package redis

import (
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/service/cache"
	"github.com/x-xyz/escrowapi/service/redis"
)

type impl struct {
	redis redis.Service
}

// NewRedis returns a provider shared by every instance on the same redis
func NewRedis(redis redis.Service) cache.Provider {
	return &impl{redis}
}

func (im *impl) Name() string {
	return "redis"
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, err := im.redis.Get(c, key)
	if err == redis.ErrNotFound {
		return nil, 0, cache.ErrNotFound
	} else if err != nil {
		return nil, 0, err
	}
	return val, 0, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = redis.Forever
	}
	return im.redis.Set(c, key, value, ttl)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	return im.redis.Del(c, key)
}

package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/service/cache"
	"github.com/x-xyz/escrowapi/service/redis"
)

type memRedis struct {
	redis.Service
	kv  map[string][]byte
	ttl map[string]time.Duration
}

func (m *memRedis) Get(c ctx.Ctx, key string) ([]byte, error) {
	v, ok := m.kv[key]
	if !ok {
		return nil, redis.ErrNotFound
	}
	return v, nil
}

func (m *memRedis) Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error {
	m.kv[key] = val
	m.ttl[key] = expire
	return nil
}

func (m *memRedis) Del(c ctx.Ctx, keys ...string) error {
	for _, k := range keys {
		delete(m.kv, k)
	}
	return nil
}

func TestProvider(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	m := &memRedis{kv: map[string][]byte{}, ttl: map[string]time.Duration{}}
	p := NewRedis(m)

	_, _, err := p.Get(c, "k")
	req.Equal(cache.ErrNotFound, err)

	req.NoError(p.Set(c, "k", []byte("v"), time.Minute))
	val, _, err := p.Get(c, "k")
	req.NoError(err)
	req.Equal([]byte("v"), val)
	req.Equal(time.Minute, m.ttl["k"])

	req.NoError(p.Set(c, "forever", []byte("v"), 0))
	req.Equal(redis.Forever, m.ttl["forever"])

	req.NoError(p.Del(c, "k"))
	_, _, err = p.Get(c, "k")
	req.Equal(cache.ErrNotFound, err)
}

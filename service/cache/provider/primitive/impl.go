package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/service/cache"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive returns an in process provider of sizeMB megabytes
func NewPrimitive(name string, sizeMB int) cache.Provider {
	return &impl{name, freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (im *impl) Name() string {
	return im.name
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, ttl, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, 0, cache.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("freecache.Get failed")
		return nil, 0, err
	}
	var remain time.Duration
	if ttl > 0 {
		remain = time.Until(time.Unix(int64(ttl), 0))
	}
	return val, remain, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("freecache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}

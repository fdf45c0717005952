package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/domain/keys"
)

// ErrNotFound is returned by providers and services on a miss
var ErrNotFound = errors.New("Cache not found")

// Provider stores raw bytes for a Service. The api wires freecache for process
// local entries and redis for entries shared across instances.
type Provider interface {
	// Name tags logs and metrics
	Name() string
	// Get returns the value and its remaining ttl, 0 when unknown
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	// Set with ttl <= 0 keeps the value until evicted
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}

// Loader fills container on a miss, e.g. an erc721 supportsInterface call
type Loader func(container interface{}) error

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// Service namespaces JSON values of one concern, login nonces or cached
// listing pages, under Pfx
type Service interface {
	Ttl() time.Duration
	GetOrLoad(c ctx.Ctx, key string, container interface{}, load Loader) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	// Ttl <= 0 keeps entries until the provider evicts them
	Ttl         time.Duration
	Pfx         string
	Cache       Provider
	Serialize   Serializer
	Deserialize Deserializer
}

type impl struct {
	cfg ServiceConfig
	met metrics.Service
}

func New(config ServiceConfig) Service {
	if config.Serialize == nil {
		config.Serialize = json.Marshal
	}
	if config.Deserialize == nil {
		config.Deserialize = json.Unmarshal
	}
	return &impl{
		cfg: config,
		met: metrics.New("cache"),
	}
}

func (im *impl) Ttl() time.Duration {
	return im.cfg.Ttl
}

func (im *impl) key(key string) string {
	return keys.RedisKey(im.cfg.Pfx, key)
}

func (im *impl) GetOrLoad(c ctx.Ctx, key string, container interface{}, load Loader) error {
	err := im.Get(c, key, container)
	if err == nil {
		im.met.BumpSum("hit", 1, "pfx", im.cfg.Pfx, "provider", im.cfg.Cache.Name())
		return nil
	} else if err != ErrNotFound {
		return err
	}
	im.met.BumpSum("miss", 1, "pfx", im.cfg.Pfx, "provider", im.cfg.Cache.Name())

	if err := load(container); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("load failed")
		return err
	}

	// a failed fill still answers the caller
	_ = im.Set(c, key, container)
	return nil
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = im.key(key)

	if val, _, err := im.cfg.Cache.Get(c, key); err == ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "provider": im.cfg.Cache.Name()}).Error("cache.Get failed")
		return err
	} else if err := im.cfg.Deserialize(val, container); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("deserialize failed")
		return err
	}
	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = im.key(key)

	if val, err := im.cfg.Serialize(value); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("serialize failed")
		return err
	} else if err := im.cfg.Cache.Set(c, key, val, im.cfg.Ttl); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "provider": im.cfg.Cache.Name()}).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	key = im.key(key)

	if err := im.cfg.Cache.Del(c, key); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "provider": im.cfg.Cache.Name()}).Error("cache.Del failed")
		return err
	}
	return nil
}

package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/escrowapi/base/ctx"
)

const (
	// Forever is the expire duration for keys without ttl
	Forever time.Duration = -1
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrGapTime is returned when no pool is available for the command
	ErrGapTime = errors.New("redis: no pool available")
)

// Service is the redis command surface used by the marketplace
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets key only when absent and reports whether it did
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error)
	Del(context ctx.Ctx, keys ...string) error
	Publish(context ctx.Ctx, channel string, msg []byte) (int, error)
	ScriptDo(context ctx.Ctx, script *Script, keysAndArgs ...interface{}) (interface{}, error)
	Name() string
}

// Script is a lua script evaluated by EVALSHA with a fallback to EVAL
type Script struct {
	name   string
	script *redis.Script
}

func NewScript(name string, keyCount int, src string) *Script {
	return &Script{
		name:   name,
		script: redis.NewScript(keyCount, src),
	}
}

package lock

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/escrowapi/base/backoff"
	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/service/redis"
)

// deletes the lease only while it still carries our token
var releaseScript = redis.NewScript("lock.release", 1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLockerCfg struct {
	Redis redis.Service
	// TTL bounds how long a crashed holder keeps the key
	TTL        time.Duration
	RetryStart time.Duration
	RetryLimit time.Duration
	// Attempts <= 0 retries until the caller context is done
	Attempts int
}

type redisImpl struct {
	redis      redis.Service
	ttl        time.Duration
	retryStart time.Duration
	retryLimit time.Duration
	attempts   int
	met        metrics.Service
}

// NewRedis returns a Locker whose leases are shared by every process on the
// same redis
func NewRedis(cfg *RedisLockerCfg) Locker {
	return &redisImpl{
		redis:      cfg.Redis,
		ttl:        cfg.TTL,
		retryStart: cfg.RetryStart,
		retryLimit: cfg.RetryLimit,
		attempts:   cfg.Attempts,
		met:        metrics.New("lock"),
	}
}

func (l *redisImpl) Lock(c ctx.Ctx, key string) (Unlock, error) {
	defer l.met.BumpTime("lock.time").End()

	token := uuid.NewString()
	b := backoff.NewExponential(l.retryStart, l.retryLimit).WithJitter(0.2)
	err := b.Retry(c, l.attempts, func() error {
		ok, err := l.redis.SetNX(c, key, []byte(token), l.ttl)
		if err != nil {
			return err
		}
		if !ok {
			l.met.BumpSum("lock.contended", 1)
			return backoff.ErrRetry
		}
		return nil
	})
	if err == backoff.ErrExhausted {
		c.WithField("key", key).Warn("lock timeout")
		return nil, ErrLockTimeout
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis.SetNX failed")
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the caller context may already be canceled
			dc := ctx.Detach(c)
			if _, err := l.redis.ScriptDo(dc, releaseScript, key, token); err != nil {
				dc.WithFields(log.Fields{"err": err, "key": key}).Error("release lock failed")
			}
		})
	}, nil
}

package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/escrowapi/base/log"
)

// Ctx carries a context.Context together with the request scoped logger
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithValues(parent Ctx, kvs map[string]interface{}) Ctx {
	c := parent
	for k, v := range kvs {
		c = WithValue(c, k, v)
	}
	return c
}

// WithContext swaps the underlying context and keeps the logger of parent
func WithContext(parent Ctx, c context.Context) Ctx {
	return Ctx{
		Context: c,
		Logger:  parent.Logger,
	}
}

// Detach returns a background context carrying the logger of parent. It is used
// for work that must outlive the request which scheduled it.
func Detach(parent Ctx) Ctx {
	return WithContext(parent, context.Background())
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	c, cancel := context.WithCancel(parent)
	return WithContext(parent, c), cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	c, cancel := context.WithTimeout(parent, timeout)
	return WithContext(parent, c), cancel
}

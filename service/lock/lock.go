package lock

import (
	"errors"

	"github.com/x-xyz/escrowapi/base/ctx"
)

var (
	// ErrLockTimeout is returned when the key stays held past the retry budget
	ErrLockTimeout = errors.New("lock: timeout")
)

// Unlock releases a held key. Calling it more than once is a no-op.
type Unlock func()

// Locker serializes operations sharing a key
type Locker interface {
	Lock(c ctx.Ctx, key string) (Unlock, error)
}

package lock

import (
	"sync"

	"github.com/x-xyz/escrowapi/base/ctx"
)

type entry struct {
	ch   chan struct{}
	refs int
}

type localImpl struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewLocal returns a process local Locker
func NewLocal() Locker {
	return &localImpl{
		entries: make(map[string]*entry),
	}
}

func (l *localImpl) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *localImpl) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *localImpl) Lock(c ctx.Ctx, key string) (Unlock, error) {
	e := l.acquire(key)
	select {
	case e.ch <- struct{}{}:
	case <-c.Done():
		l.release(key, e)
		return nil, c.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

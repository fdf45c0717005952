package backoff

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// ErrExhausted is returned by Retry after the last attempt failed with ErrRetry
var ErrExhausted = errors.New("backoff: attempts exhausted")

// ErrRetry is returned by a Retry callback to ask for another attempt
var ErrRetry = errors.New("backoff: retry")

type Strategy interface {
	Duration(count int, start time.Duration) time.Duration
}

// Backoff sleeps for increasing durations bounded by limit
type Backoff struct {
	Next     time.Duration
	start    time.Duration
	limit    time.Duration
	jitter   float64
	count    int
	strategy Strategy
}

func New(strategy Strategy, start, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

// WithJitter randomizes each sleep by up to ratio of its duration
func (b *Backoff) WithJitter(ratio float64) *Backoff {
	b.jitter = ratio
	return b
}

func (b *Backoff) Reset() {
	b.count = 0
	b.Next = b.next()
}

func (b *Backoff) Count() int {
	return b.count
}

// Wait sleeps for the next duration or until ctx is done
func (b *Backoff) Wait(ctx context.Context) error {
	d := b.Next
	if b.jitter > 0 && d > 0 {
		d += time.Duration(rand.Float64() * b.jitter * float64(d))
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	b.count++
	b.Next = b.next()
	return nil
}

// Retry calls fn until it returns anything but ErrRetry, sleeping between
// attempts. attempts <= 0 retries until ctx is done.
func (b *Backoff) Retry(ctx context.Context, attempts int, fn func() error) error {
	for i := 0; attempts <= 0 || i < attempts; i++ {
		if err := fn(); err != ErrRetry {
			return err
		}
		if attempts > 0 && i == attempts-1 {
			break
		}
		if err := b.Wait(ctx); err != nil {
			return err
		}
	}
	return ErrExhausted
}

func (b *Backoff) next() time.Duration {
	d := b.strategy.Duration(b.count, b.start)
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}

type exponential struct{}

func (exponential) Duration(count int, start time.Duration) time.Duration {
	return time.Duration(math.Pow(2, float64(count))) * start
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(exponential{}, start, limit)
}

type linear struct{}

func (linear) Duration(count int, start time.Duration) time.Duration {
	return time.Duration(count+1) * start
}

func NewLinear(start, limit time.Duration) *Backoff {
	return New(linear{}, start, limit)
}

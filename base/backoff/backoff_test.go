package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	req.Equal(time.Millisecond, b.Next)

	want := []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}
	for _, w := range want {
		req.NoError(b.Wait(context.Background()))
		req.Equal(w, b.Next)
	}
	req.Equal(3, b.Count())

	b.Reset()
	req.Equal(time.Millisecond, b.Next)
	req.Equal(0, b.Count())
}

func TestLinear(t *testing.T) {
	req := require.New(t)
	b := NewLinear(time.Millisecond, 0)
	req.Equal(time.Millisecond, b.Next)
	req.NoError(b.Wait(context.Background()))
	req.Equal(2*time.Millisecond, b.Next)
}

func TestWaitCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewLinear(time.Hour, 0)
	require.Equal(t, context.Canceled, b.Wait(ctx))
	require.Equal(t, 0, b.Count())
}

func TestRetry(t *testing.T) {
	req := require.New(t)

	calls := 0
	err := NewLinear(time.Millisecond, 0).Retry(context.Background(), 5, func() error {
		calls++
		if calls < 3 {
			return ErrRetry
		}
		return nil
	})
	req.NoError(err)
	req.Equal(3, calls)

	calls = 0
	err = NewLinear(time.Millisecond, 0).Retry(context.Background(), 2, func() error {
		calls++
		return ErrRetry
	})
	req.Equal(ErrExhausted, err)
	req.Equal(2, calls)

	boom := errors.New("boom")
	err = NewLinear(time.Millisecond, 0).Retry(context.Background(), 0, func() error {
		return boom
	})
	req.Equal(boom, err)
}

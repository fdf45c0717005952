package goroutine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverableGo(t *testing.T) {
	res := []string{}

	ch := RecoverableGo(
		func() {
			res = append(res, "run task")
			panic("boom")
		},
		WithName("task"),
		WithAfterEnded(func() {
			res = append(res, "after ended")
		}),
		WithAfterRecovered(func(ev *PanicEvent) {
			res = append(res, "after recovered", ev.Panic.(string))
		}),
	)

	ev, ok := <-ch
	require.True(t, ok)
	require.Equal(t, "boom", ev.Panic)
	require.NotEmpty(t, ev.Stack)

	_, ok = <-ch
	require.False(t, ok)

	require.Equal(t, []string{
		"run task",
		"after ended",
		"after recovered",
		"boom",
	}, res)
}

func TestRecoverableGoReturns(t *testing.T) {
	done := false
	_, ok := <-RecoverableGo(func() { done = true })
	require.False(t, ok)
	require.True(t, done)
}

package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrowapi/base/ctx"
	hcdomain "github.com/x-xyz/escrowapi/domain/healthcheck"
)

type probes []hcdomain.Probe

func (p probes) Probes() []hcdomain.Probe { return p }

func TestCheck(t *testing.T) {
	req := require.New(t)
	up := func(ctx.Ctx) error { return nil }
	down := func(ctx.Ctx) error { return errors.New("conn refused") }

	res := New(probes{{Name: "mongo", Ping: up}, {Name: "redis", Ping: up}}).Check(ctx.Background())
	req.True(res.Healthy)
	req.Equal("mongo", res.Components[0].Name)
	req.Equal(hcdomain.StatusUp, res.Components[1].Status)

	res = New(probes{{Name: "mongo", Ping: up}, {Name: "redis", Ping: down}}).Check(ctx.Background())
	req.False(res.Healthy)
	req.Equal(hcdomain.StatusDown, res.Components[1].Status)
	req.Equal("conn refused", res.Components[1].Error)

	req.True(New(probes{}).Check(ctx.Background()).Healthy)
}

func TestCheckTimeout(t *testing.T) {
	hang := func(c ctx.Ctx) error {
		<-c.Done()
		return c.Err()
	}

	start := time.Now()
	res := New(probes{{Name: "mongo", Ping: hang}}).Check(ctx.Background())
	require.False(t, res.Healthy)
	require.Less(t, time.Since(start), probeTimeout+time.Second)
}

package usecase

import (
	"sync"
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	hcdomain "github.com/x-xyz/escrowapi/domain/healthcheck"
)

const probeTimeout = 2 * time.Second

type impl struct {
	repo hcdomain.HealthCheckRepo
}

func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

// Check runs every probe concurrently, each bounded by probeTimeout
func (im *impl) Check(c ctx.Ctx) hcdomain.Report {
	probes := im.repo.Probes()
	res := hcdomain.Report{
		Healthy:    true,
		Components: make([]hcdomain.Component, len(probes)),
	}

	wg := sync.WaitGroup{}
	for i, p := range probes {
		wg.Add(1)
		go func(i int, p hcdomain.Probe) {
			defer wg.Done()
			tc, cancel := ctx.WithTimeout(c, probeTimeout)
			defer cancel()

			start := time.Now()
			err := p.Ping(tc)
			comp := hcdomain.Component{
				Name:      p.Name,
				Status:    hcdomain.StatusUp,
				LatencyMs: time.Since(start).Seconds() * 1000,
			}
			if err != nil {
				comp.Status = hcdomain.StatusDown
				comp.Error = err.Error()
			}
			res.Components[i] = comp
		}(i, p)
	}
	wg.Wait()

	for _, comp := range res.Components {
		if comp.Status != hcdomain.StatusUp {
			res.Healthy = false
			c.WithFields(log.Fields{"component": comp.Name, "err": comp.Error}).Warn("unhealthy")
		}
	}
	return res
}

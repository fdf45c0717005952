package healthcheck

import (
	"github.com/x-xyz/escrowapi/base/ctx"
)

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Probe pings one backing service
type Probe struct {
	Name string
	Ping func(c ctx.Ctx) error
}

type Component struct {
	Name      string  `json:"name"`
	Status    Status  `json:"status"`
	Error     string  `json:"error,omitempty"`
	LatencyMs float64 `json:"latencyMs"`
}

// Report is healthy when every configured component is up
type Report struct {
	Healthy    bool        `json:"healthy"`
	Components []Component `json:"components"`
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(c ctx.Ctx) Report
}

// HealthCheckRepo lists the probes of the services the process was started with
type HealthCheckRepo interface {
	Probes() []Probe
}

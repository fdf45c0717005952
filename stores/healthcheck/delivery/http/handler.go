package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	hcdomain "github.com/x-xyz/escrowapi/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	e.GET("/health", handler.check)
}

// check answers 503 with the report when any component is down
func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	res := h.healthCheck.Check(context)
	if !res.Healthy {
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, res)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/notification"
)

type handler struct {
	nu notification.UseCase
}

func New(e *echo.Echo, nu notification.UseCase) {
	h := &handler{nu: nu}
	e.GET("/items/:id/events", h.getEvents)
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	type params struct {
		Offset int `query:"offset"`
		Limit  int `query:"limit"`
	}
	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.nu.FindAll(ctx, domain.ItemId(id), p.Offset, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

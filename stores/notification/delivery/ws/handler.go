package ws

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/domain"
)

type handler struct {
	hub *Hub
}

func New(e *echo.Echo, hub *Hub) {
	h := &handler{hub: hub}
	e.GET("/ws/items/:id", h.subscribe)
}

func (h *handler) subscribe(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid item id")
	}

	// the upgrader has already answered on failure
	_ = h.hub.Serve(ctx, c.Response(), c.Request(), domain.ItemId(id))
	return nil
}

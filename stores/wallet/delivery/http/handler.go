package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/wallet"
	"github.com/x-xyz/escrowapi/middleware"
	authMiddleware "github.com/x-xyz/escrowapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	wu wallet.UseCase
}

func New(e *echo.Echo, wu wallet.UseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		wu: wu,
	}
	g := e.Group("/wallet")
	g.GET("/:address", h.balanceOf, middleware.IsValidAddress("address"))
	g.POST("/deposit", h.deposit, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

type balanceResp struct {
	Address domain.Address `json:"address"`
	Amount  domain.Amount  `json:"amount"`
	Ether   string         `json:"ether"`
}

func (h *handler) balanceOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("address")).ToLower()

	res, err := h.wu.BalanceOf(ctx, address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, balanceResp{address, res, res.Ether().String()})
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		To     domain.Address `json:"to" validate:"required,eth_addr"`
		Amount domain.Amount  `json:"amount"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	to := p.To.ToLower()
	res, err := h.wu.Deposit(ctx, to, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	ctx.WithFields(log.Fields{"to": to, "amount": p.Amount.String()}).Info("deposited")
	return delivery.MakeJsonResp(c, http.StatusOK, balanceResp{to, res, res.Ether().String()})
}

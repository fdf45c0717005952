package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/auth"
	"github.com/x-xyz/escrowapi/middleware"
)

type authHandler struct {
	auth               auth.UseCase
	signingMsgTemplate string
}

func New(e *echo.Echo, au auth.UseCase, template string) {
	handler := &authHandler{
		auth:               au,
		signingMsgTemplate: template,
	}
	g := e.Group("/auth")
	g.GET("/nonce/:address", handler.nonce, middleware.IsValidAddress("address"))
	g.POST("/sign", handler.sign)
	g.GET("/signingMsgTemplate", handler.getSigningMsgTemplate)
}

func (h *authHandler) nonce(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	nonce, err := h.auth.Nonce(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nonce)
}

func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address   domain.Address `json:"address" validate:"required,eth_addr"`
		Signature string         `json:"signature" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if tkn, err := h.auth.Login(ctx, p.Address, p.Signature); err != nil {
		ctx.WithField("err", err).Warn("auth.Login failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}

func (h *authHandler) getSigningMsgTemplate(c echo.Context) error {
	res := struct {
		Msg string `json:"template"`
	}{
		Msg: h.signingMsgTemplate,
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

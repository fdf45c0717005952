package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/middleware"
	authMiddleware "github.com/x-xyz/escrowapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	cu       custody.UseCase
	operator domain.Address
}

// New registers the custody routes. Approvals are always granted to operator,
// the marketplace.
func New(e *echo.Echo, cu custody.UseCase, operator domain.Address, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		cu:       cu,
		operator: operator.ToLower(),
	}
	g := e.Group("/custody")
	g.GET("/:nft/:tokenId", h.ownerOf, middleware.IsValidAddress("nft"))
	g.GET("/:nft/approvals/:owner", h.isApproved, middleware.IsValidAddress("nft"), middleware.IsValidAddress("owner"))
	g.POST("/approval", h.setApproval, authMiddleware.Auth())
	g.POST("/deposit", h.deposit, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) ownerOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	nft := domain.Address(c.Param("nft")).ToLower()
	tokenId := domain.TokenId(c.Param("tokenId"))

	owner, err := h.cu.OwnerOf(ctx, nft, tokenId)
	if errors.Is(err, domain.ErrAssetNotFound) {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err.Error())
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, custody.Ownership{Nft: nft, TokenId: tokenId, Owner: owner})
}

func (h *handler) isApproved(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	nft := domain.Address(c.Param("nft")).ToLower()
	owner := domain.Address(c.Param("owner")).ToLower()

	approved, err := h.cu.IsApprovedForAll(ctx, nft, owner, h.operator)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, approved)
}

func (h *handler) setApproval(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type payload struct {
		Nft      domain.Address `json:"nft" validate:"required,eth_addr"`
		Approved bool           `json:"approved"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if err := h.cu.SetApprovalForAll(ctx, p.Nft.ToLower(), address.ToLower(), h.operator, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, p.Approved)
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Nft     domain.Address `json:"nft" validate:"required,eth_addr"`
		TokenId domain.TokenId `json:"tokenId" validate:"required,numeric"`
		Owner   domain.Address `json:"owner" validate:"required,eth_addr"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	o := custody.Ownership{Nft: p.Nft.ToLower(), TokenId: p.TokenId, Owner: p.Owner.ToLower()}
	if err := h.cu.Deposit(ctx, o.Nft, o.TokenId, o.Owner); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, o)
}

package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/item"
	"github.com/x-xyz/escrowapi/middleware"
	authMiddleware "github.com/x-xyz/escrowapi/stores/auth/delivery/http/middleware"
)

// longest auction window in seconds that fits a time.Duration
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

type handler struct {
	iu item.UseCase
}

// New registers the marketplace routes. listCache, when not nil, wraps the
// item listing.
func New(e *echo.Echo, iu item.UseCase, authMiddleware *authMiddleware.AuthMiddleware, listCache echo.MiddlewareFunc) {
	h := &handler{
		iu: iu,
	}
	g := e.Group("/items")

	listMiddlewares := []echo.MiddlewareFunc{}
	if listCache != nil {
		listMiddlewares = append(listMiddlewares, listCache)
	}
	g.GET("", h.findAll, listMiddlewares...)
	g.GET("/count", h.count)
	g.GET("/:id", h.getItem)
	g.GET("/:id/bids", h.getBids)
	g.GET("/:id/bids/:bidder", h.getBid, middleware.IsValidAddress("bidder"))
	g.GET("/:id/bidders/:index", h.getBidderAt)

	g.POST("", h.listItem, authMiddleware.Auth())
	g.POST("/:id/start", h.startAuction, authMiddleware.Auth())
	g.POST("/:id/stop", h.stopAuction, authMiddleware.Auth())
	g.POST("/:id/bids", h.bid, authMiddleware.Auth())
	g.POST("/:id/end", h.endAuction, authMiddleware.Auth())
}

func itemId(c echo.Context) (domain.ItemId, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadParamInput
	}
	return domain.ItemId(id), nil
}

func (h *handler) listItem(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	type payload struct {
		Nft        domain.Address `json:"nft" validate:"required,eth_addr"`
		TokenId    domain.TokenId `json:"tokenId" validate:"required,numeric"`
		StartPrice domain.Amount  `json:"startPrice"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.iu.ListItem(ctx, address, p.Nft, p.TokenId, p.StartPrice)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Seller    string `query:"seller"`
		IsSold    string `query:"isSold"`
		IsStarted string `query:"isStarted"`
		Offset    int32  `query:"offset"`
		Limit     int32  `query:"limit"`
		Sort      string `query:"sort"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	opts := []item.FindAllOptionsFunc{item.WithPagination(p.Offset, p.Limit)}
	if p.Seller != "" {
		opts = append(opts, item.WithSeller(domain.Address(p.Seller)))
	}
	if p.IsSold != "" {
		isSold, err := strconv.ParseBool(p.IsSold)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, item.WithIsSold(isSold))
	}
	if p.IsStarted != "" {
		isStarted, err := strconv.ParseBool(p.IsStarted)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		opts = append(opts, item.WithIsStarted(isStarted))
	}
	if p.Sort != "" {
		opts = append(opts, item.WithSort(p.Sort))
	}

	res, err := h.iu.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) count(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.iu.ItemCount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getItem(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := itemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.iu.GetItem(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) startAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	id, err := itemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		// Duration of the window in seconds
		Duration int64 `json:"duration"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if p.Duration > maxDurationSeconds {
		err := xerrors.Errorf("duration exceeds %d seconds: %w", maxDurationSeconds, domain.ErrInvalidDuration)
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.iu.StartAuction(ctx, address, id, time.Duration(p.Duration)*time.Second)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) stopAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	id, err := itemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.iu.StopAuction(ctx, address, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) bid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	id, err := itemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type payload struct {
		Amount domain.Amount `json:"amount"`
	}

	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.iu.Bid(ctx, address, id, p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) endAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	id, err := itemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.iu.EndAuction(ctx, address, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := itemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.iu.GetBids(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := itemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.iu.GetBid(ctx, id, domain.Address(c.Param("bidder")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBidderAt(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := itemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.iu.GetBidderAt(ctx, id, index)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/delivery"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
	authMiddleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.Usecase
}

func New(e *echo.Echo, listing listing.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{listing}

	gs := e.Group("/listings")

	gs.GET("", h.getAll)

	gs.POST("", h.create, authMiddleware.Auth())

	g := gs.Group("/:id", h.parseId)

	g.GET("", h.get)

	g.GET("/activities", h.getActivities)

	g.POST("/buy", h.buy, authMiddleware.Auth())

	g.POST("/cancel", h.cancel, authMiddleware.Auth())

	admin := e.Group("/admin/listings/:id", authMiddleware.Auth(), authMiddleware.IsAdmin(), h.parseId)

	admin.POST("/cancel", h.adminCancel)
}

func (h *handler) parseId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid listing id")
		}
		c.Set("listingId", listing.ListingId(id))
		return next(c)
	}
}

type searchParams struct {
	OnlyActive bool `query:"onlyActive"`
}

// getAll
//
//	@Summary		List listings
//	@Description	Every listing in ascending id order, optionally only the active ones
//	@Tags			listing
//	@Produce		json
//	@Param			onlyActive	query		bool	false	"only active listings"
//	@Success		200			{object}	object{data=[]listing.Entry}
//	@Failure		400
//	@Failure		500
//	@Router			/listings [get]
func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &searchParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.listing.ListListings(ctx, p.OnlyActive)
	if err != nil {
		ctx.WithField("err", err).Error("listing.ListListings failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if res == nil {
		res = []listing.Entry{}
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// get
//
//	@Summary	Get listing
//	@Tags		listing
//	@Produce	json
//	@Param		id	path		int	true	"listing id"
//	@Success	200	{object}	object{data=listing.Listing}
//	@Failure	400
//	@Failure	404
//	@Router		/listings/{id} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Get("listingId").(listing.ListingId)

	res, err := h.listing.FindOne(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getActivities
//
//	@Summary	Get listing activities
//	@Tags		listing
//	@Produce	json
//	@Param		id	path		int	true	"listing id"
//	@Success	200	{object}	object{data=[]listing.Activity}
//	@Failure	400
//	@Failure	404
//	@Router		/listings/{id}/activities [get]
func (h *handler) getActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Get("listingId").(listing.ListingId)

	res, err := h.listing.Activities(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if res == nil {
		res = []listing.Activity{}
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type createResult struct {
	Id listing.ListingId `json:"id"`
}

// create
//
//	@Summary		Create listing
//	@Description	List an asset owned by the caller at a fixed price
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		listing.ListingParams	true	"params"
//	@Success		201		{object}	object{data=http.createResult}
//	@Failure		400
//	@Failure		401
//	@Failure		403
//	@Failure		409
//	@Failure		502
//	@Router			/listings [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := authMiddleware.Caller(c)

	p := &listing.ListingParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id, err := h.listing.CreateListing(ctx, caller, *p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, createResult{id})
}

// buy
//
//	@Summary		Buy listing
//	@Description	Pay the listing price from the caller's allowance and receive the asset
//	@Tags			listing
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path	int	true	"listing id"
//	@Success		200
//	@Failure		401
//	@Failure		402
//	@Failure		404
//	@Failure		502
//	@Router			/listings/{id}/buy [post]
func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Get("listingId").(listing.ListingId)

	if err := h.listing.Buy(ctx, authMiddleware.Caller(c), id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// cancel
//
//	@Summary	Cancel listing
//	@Tags		listing
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path	int	true	"listing id"
//	@Success	200
//	@Failure	401
//	@Failure	403
//	@Failure	404
//	@Router		/listings/{id}/cancel [post]
func (h *handler) cancel(c echo.Context) error {
	return h.doCancel(c, authMiddleware.Caller(c))
}

// adminCancel cancels on behalf of the marketplace.
//
//	@Summary	Cancel listing as marketplace
//	@Tags		admin
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		id	path	int	true	"listing id"
//	@Success	200
//	@Failure	401
//	@Failure	403
//	@Failure	404
//	@Router		/admin/listings/{id}/cancel [post]
func (h *handler) adminCancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	ctx.WithField("admin", authMiddleware.Caller(c)).Info("cancel as marketplace")
	return h.doCancel(c, h.listing.MarketAddress())
}

func (h *handler) doCancel(c echo.Context, caller domain.Address) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Get("listingId").(listing.ListingId)

	if err := h.listing.Cancel(ctx, caller, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

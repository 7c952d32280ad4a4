package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/delivery"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/middleware"
	authMiddleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
)

type handler struct {
	ledger asset.Ledger
}

// New registers the sandbox ledger endpoints. Writes act as the caller,
// minting is for admins only.
func New(e *echo.Echo, ledger asset.Ledger, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{ledger}

	e.GET("/sandbox/registries", h.getRegistries)

	g := e.Group("/sandbox/registries/:registry", middleware.IsValidAddress("registry"))

	g.GET("/balances/:owner", h.getBalance, middleware.IsValidAddress("owner"))

	g.GET("/allowances/:owner/:spender", h.getAllowance, middleware.IsValidAddress("owner"), middleware.IsValidAddress("spender"))

	g.GET("/assets/:id/owner", h.getOwner)

	g.POST("/approve", h.approve, authMiddleware.Auth())

	g.POST("/approveAsset", h.approveAsset, authMiddleware.Auth())

	g.POST("/transferAsset", h.transferAsset, authMiddleware.Auth())

	g.POST("/mint", h.mint, authMiddleware.Auth(), authMiddleware.IsAdmin())

	g.POST("/mintAsset", h.mintAsset, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

// getRegistries
//
//	@Summary	List sandbox registries
//	@Tags		sandbox
//	@Produce	json
//	@Success	200	{object}	object{data=[]asset.Registry}
//	@Router		/sandbox/registries [get]
func (h *handler) getRegistries(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.ledger.Registries(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("ledger.Registries failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getBalance
//
//	@Summary	Get fungible balance
//	@Tags		sandbox
//	@Produce	json
//	@Param		registry	path		string	true	"fungible registry"
//	@Param		owner		path		string	true	"owner"
//	@Success	200			{object}	object{data=string}
//	@Failure	400
//	@Failure	404
//	@Router		/sandbox/registries/{registry}/balances/{owner} [get]
func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.ledger.BalanceOf(ctx, domain.Address(c.Param("registry")), domain.Address(c.Param("owner")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getAllowance
//
//	@Summary	Get fungible allowance
//	@Tags		sandbox
//	@Produce	json
//	@Param		registry	path		string	true	"fungible registry"
//	@Param		owner		path		string	true	"owner"
//	@Param		spender		path		string	true	"spender"
//	@Success	200			{object}	object{data=string}
//	@Failure	400
//	@Failure	404
//	@Router		/sandbox/registries/{registry}/allowances/{owner}/{spender} [get]
func (h *handler) getAllowance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.ledger.FungibleAllowance(ctx,
		domain.Address(c.Param("registry")), domain.Address(c.Param("owner")), domain.Address(c.Param("spender")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getOwner
//
//	@Summary	Get asset owner
//	@Tags		sandbox
//	@Produce	json
//	@Param		registry	path		string	true	"non-fungible registry"
//	@Param		id			path		string	true	"asset id"
//	@Success	200			{object}	object{data=string}
//	@Failure	404
//	@Router		/sandbox/registries/{registry}/assets/{id}/owner [get]
func (h *handler) getOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.ledger.OwnerOf(ctx, domain.Address(c.Param("registry")), domain.TokenId(c.Param("id")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type approveParams struct {
	Spender domain.Address  `json:"spender" validate:"required,address"`
	Amount  decimal.Decimal `json:"amount" validate:"amount"`
}

// approve
//
//	@Summary		Approve fungible spender
//	@Description	Set the allowance the caller grants to spender
//	@Tags			sandbox
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			registry	path	string				true	"fungible registry"
//	@Param			params		body	http.approveParams	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		404
//	@Router			/sandbox/registries/{registry}/approve [post]
func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &approveParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.ledger.ApproveFungible(ctx, domain.Address(c.Param("registry")), authMiddleware.Caller(c), p.Spender, p.Amount); err != nil {
		ctx.WithField("err", err).Warn("ledger.ApproveFungible failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// approveAssetParams with an empty AssetId approves every asset of the caller.
type approveAssetParams struct {
	Operator domain.Address `json:"operator" validate:"required,address"`
	AssetId  domain.TokenId `json:"assetId"`
	Approved bool           `json:"approved"`
}

// approveAsset
//
//	@Summary		Approve non-fungible operator
//	@Description	Grant or revoke operator for one asset of the caller, or for all of them when assetId is empty
//	@Tags			sandbox
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			registry	path	string					true	"non-fungible registry"
//	@Param			params		body	http.approveAssetParams	true	"params"
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Failure		404
//	@Router			/sandbox/registries/{registry}/approveAsset [post]
func (h *handler) approveAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &approveAssetParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.ledger.ApproveNonFungible(ctx, domain.Address(c.Param("registry")), authMiddleware.Caller(c), p.Operator, p.AssetId, p.Approved); err != nil {
		ctx.WithField("err", err).Warn("ledger.ApproveNonFungible failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

type transferAssetParams struct {
	To      domain.Address `json:"to" validate:"required,address"`
	AssetId domain.TokenId `json:"assetId" validate:"required"`
}

// transferAsset
//
//	@Summary	Transfer an asset of the caller
//	@Tags		sandbox
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		registry	path	string						true	"non-fungible registry"
//	@Param		params		body	http.transferAssetParams	true	"params"
//	@Success	200
//	@Failure	400
//	@Failure	403
//	@Failure	404
//	@Router		/sandbox/registries/{registry}/transferAsset [post]
func (h *handler) transferAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := authMiddleware.Caller(c)

	p := &transferAssetParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	nft, err := h.ledger.NonFungible(ctx, domain.Address(c.Param("registry")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if err := nft.TransferFrom(ctx, caller, caller, p.To, p.AssetId, nil); err != nil {
		ctx.WithField("err", err).Warn("TransferFrom failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

type mintParams struct {
	To     domain.Address  `json:"to" validate:"required,address"`
	Amount decimal.Decimal `json:"amount" validate:"amount"`
}

// mint
//
//	@Summary	Mint fungible balance
//	@Tags		sandbox
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		registry	path	string			true	"fungible registry"
//	@Param		params		body	http.mintParams	true	"params"
//	@Success	201
//	@Failure	400
//	@Failure	403
//	@Failure	404
//	@Router		/sandbox/registries/{registry}/mint [post]
func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &mintParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.ledger.MintFungible(ctx, domain.Address(c.Param("registry")), p.To, p.Amount); err != nil {
		ctx.WithField("err", err).Error("ledger.MintFungible failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

type mintAssetParams struct {
	To      domain.Address `json:"to" validate:"required,address"`
	AssetId domain.TokenId `json:"assetId" validate:"required"`
}

// mintAsset
//
//	@Summary	Mint non-fungible asset
//	@Tags		sandbox
//	@Accept		json
//	@Produce	json
//	@Security	ApiKeyAuth
//	@Param		registry	path	string				true	"non-fungible registry"
//	@Param		params		body	http.mintAssetParams	true	"params"
//	@Success	201
//	@Failure	400
//	@Failure	403
//	@Failure	404
//	@Failure	409
//	@Router		/sandbox/registries/{registry}/mintAsset [post]
func (h *handler) mintAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &mintAssetParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.ledger.MintNonFungible(ctx, domain.Address(c.Param("registry")), p.To, p.AssetId); err != nil {
		ctx.WithField("err", err).Warn("ledger.MintNonFungible failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

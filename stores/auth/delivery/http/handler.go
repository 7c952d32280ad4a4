package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/delivery"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/middleware"
)

type authHandler struct {
	auth     domain.AuthUsecase
	template string
}

func New(e *echo.Echo, auth domain.AuthUsecase, template string) {
	h := &authHandler{
		auth:     auth,
		template: template,
	}
	g := e.Group("/auth")
	g.POST("/sign", h.sign)
	g.GET("/signingMsgTemplate", h.signingMsgTemplate)
	g.GET("/signingMsg/:address", h.signingMsg, middleware.IsValidAddress("address"))
}

type signParams struct {
	Address   domain.Address `json:"address" validate:"required,address" example:"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"`
	Signature string         `json:"signature" validate:"required" example:"0x..."`
}

// sign
//
//	@Summary		Get access token
//	@Description	Verify the wallet signature over the signing message and issue an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.signParams	true	"params"
//	@Success		201		{object}	object{data=string}
//	@Failure		400
//	@Failure		401
//	@Failure		500
//	@Router			/auth/sign [post]
func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &signParams{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.auth.SignToken(ctx, p.Address, p.Signature)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": p.Address}).Warn("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
}

// signingMsgTemplate
//
//	@Summary		Get signature template
//	@Description	Replace %s with the lower cased wallet address to build the signing message
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	object{data=object{template=string}}	"signing message template"
//	@Router			/auth/signingMsgTemplate [get]
func (h *authHandler) signingMsgTemplate(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"template": h.template})
}

// signingMsg
//
//	@Summary		Get signing message
//	@Description	The exact message the wallet has to sign for POST /auth/sign
//	@Tags			auth
//	@Produce		json
//	@Param			address	path		string	true	"wallet address"
//	@Success		200		{object}	object{data=object{message=string}}
//	@Failure		400
//	@Router			/auth/signingMsg/{address} [get]
func (h *authHandler) signingMsg(c echo.Context) error {
	address := domain.Address(c.Param("address"))
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]string{"message": h.auth.SigningMessage(address)})
}

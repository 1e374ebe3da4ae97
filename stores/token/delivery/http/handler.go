package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/delivery"
	"github.com/rsandx/oasis-nft-port/base/validator"
	authMiddleware "github.com/rsandx/oasis-nft-port/stores/auth/delivery/http/middleware"

	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/token"
)

type handler struct {
	token token.Usecase
}

// New registers the token registry endpoints. Minting and transferring
// act on behalf of the signed-in wallet.
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, token token.Usecase) {
	h := &handler{token}

	g := e.Group("/tokens")

	g.GET("/:tokenId", h.getToken)
	g.POST("/mint", h.mint, authMiddleware.Auth())
	g.POST("/transfer", h.transfer, authMiddleware.Auth())
}

func (h *handler) getToken(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	type params struct {
		TokenId domain.TokenId `param:"tokenId" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	owner, err := h.token.OwnerOf(context, p.TokenId)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	tokenUri, err := h.token.TokenURI(context, p.TokenId)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	res := struct {
		TokenId  domain.TokenId `json:"tokenId"`
		Owner    domain.Address `json:"owner"`
		TokenUri string         `json:"tokenUri"`
	}{p.TokenId, owner, tokenUri}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) mint(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	minter := c.Get("address").(domain.Address)

	type params struct {
		TokenUri string `json:"tokenUri" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	minted, err := h.token.Mint(context, minter, p.TokenUri)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, minted)
}

func (h *handler) transfer(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	from := c.Get("address").(domain.Address)

	type params struct {
		TokenId domain.TokenId `json:"tokenId" validate:"required"`
		To      domain.Address `json:"to" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAddress(string(p.To)) {
		return delivery.MakeErrResp(c, domain.ErrInvalidAddress)
	}

	if err := h.token.Transfer(context, p.TokenId, from, p.To); err != nil {
		return delivery.MakeErrResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/delivery"
	"github.com/rsandx/oasis-nft-port/base/validator"
	"github.com/rsandx/oasis-nft-port/domain"
)

type handler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase) {
	h := &handler{auth}

	e.POST("/auth/sign", h.sign)
}

func (h *handler) sign(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address   string `json:"address" validate:"required"`
		Signature string `json:"signature" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if !validator.IsValidAddress(p.Address) {
		return delivery.MakeErrResp(c, domain.ErrInvalidAddress)
	}

	token, err := h.auth.SignToken(context, domain.Address(p.Address), p.Signature)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, token)
}

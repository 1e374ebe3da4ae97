package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) {
			status = http.StatusNotFound
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

// MakeErrResp maps registry/ledger errors onto HTTP statuses so handlers
// can return usecase errors directly.
func MakeErrResp(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrUnknownToken),
		errors.Is(err, domain.ErrUnknownListing),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, query.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotSeller),
		errors.Is(err, domain.ErrSelfTradeForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotActive),
		errors.Is(err, domain.ErrAlreadyListed),
		errors.Is(err, domain.ErrAlreadySold):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFee),
		errors.Is(err, domain.ErrExcessFee),
		errors.Is(err, domain.ErrWrongPaymentAmount),
		errors.Is(err, domain.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidSignature):
		status = http.StatusBadRequest
	}

	return MakeJsonResp(c, status, err)
}

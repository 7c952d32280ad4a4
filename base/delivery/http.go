package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/service/query"
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

var errStatus = []struct {
	err    error
	status int
}{
	{listing.ErrNotOwner, http.StatusForbidden},
	{listing.ErrNotApproved, http.StatusForbidden},
	{listing.ErrNotAuthorized, http.StatusForbidden},
	{listing.ErrNoSuchListing, http.StatusNotFound},
	{listing.ErrInsufficientFunds, http.StatusPaymentRequired},
	{listing.ErrIdSpaceExhausted, http.StatusConflict},
	{listing.ErrCollaboratorFailure, http.StatusBadGateway},
	{listing.ErrRegistryClosed, http.StatusServiceUnavailable},
	{asset.ErrUnknownRegistry, http.StatusNotFound},
	{asset.ErrAssetNotFound, http.StatusNotFound},
	{asset.ErrAssetExists, http.StatusConflict},
	{asset.ErrInsufficientBalance, http.StatusPaymentRequired},
	{asset.ErrInsufficientAllowance, http.StatusForbidden},
	{asset.ErrNotAssetOwner, http.StatusForbidden},
	{asset.ErrNotAllowed, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{query.ErrNotFound, http.StatusNotFound},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrBadParamInput, http.StatusBadRequest},
	{domain.ErrInvalidNumberFormat, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrInvalidSignature, http.StatusUnauthorized},
}

// StatusOf maps a known error to its http status, falling back to def.
func StatusOf(err error, def int) int {
	for _, e := range errStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return def
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
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

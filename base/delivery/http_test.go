package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
)

func TestStatusOf(t *testing.T) {
	req := require.New(t)
	cases := []struct {
		err    error
		status int
	}{
		{listing.ErrNotOwner, http.StatusForbidden},
		{xerrors.Errorf("listing 3: %w", listing.ErrNoSuchListing), http.StatusNotFound},
		{listing.ErrInsufficientFunds, http.StatusPaymentRequired},
		{listing.ErrIdSpaceExhausted, http.StatusConflict},
		{xerrors.Errorf("OwnerOf: %w", listing.ErrCollaboratorFailure), http.StatusBadGateway},
		{domain.ErrBadParamInput, http.StatusBadRequest},
		{xerrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		req.Equal(tc.status, StatusOf(tc.err, http.StatusInternalServerError), tc.err.Error())
	}
}

func TestMakeJsonResp(t *testing.T) {
	req := require.New(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	req.NoError(MakeJsonResp(c, http.StatusInternalServerError, listing.ErrNotAuthorized))
	req.Equal(http.StatusForbidden, rec.Code)

	var resp JsonResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal(JsonResponseStatusFail, resp.Status)
	req.Equal(listing.ErrNotAuthorized.Error(), resp.Data)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	req.NoError(MakeJsonResp(c, http.StatusOK, map[string]int{"id": 1}))
	req.Equal(http.StatusOK, rec.Code)
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal(JsonResponseStatusSuccess, resp.Status)
}

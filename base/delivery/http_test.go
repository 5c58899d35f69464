package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/ledger"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidBid, http.StatusBadRequest},
		{domain.ErrBadParamInput, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrWalletNotFound, http.StatusNotFound},
		{domain.ErrAuctionClosed, http.StatusConflict},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrAccountNotActivated, http.StatusPreconditionFailed},
		{domain.NewSettlementError(domain.ErrAccountNotActivated), http.StatusBadGateway},
		{domain.NewSettlementError(ledger.ErrTimeout), http.StatusBadGateway},
		{xerrors.Errorf("%w: dial tcp", domain.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusOf(c.err, http.StatusInternalServerError), c.err.Error())
	}
}

func TestMakeJsonResp(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, MakeJsonResp(c, http.StatusInternalServerError, domain.ErrInvalidBid))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	res := JsonResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, JsonResponseStatusFail, res.Status)
	assert.Equal(t, domain.ErrInvalidBid.Error(), res.Data)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, MakeJsonResp(c, http.StatusOK, map[string]string{"id": "1"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, JsonResponseStatusSuccess, res.Status)
}

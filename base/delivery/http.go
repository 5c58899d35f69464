package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/service/query"
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

// errStatuses is checked in order, the first match wins
var errStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrSettlementFailed, http.StatusBadGateway},
	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{domain.ErrNotFound, http.StatusNotFound},
	{query.ErrNotFound, http.StatusNotFound},
	{domain.ErrWalletNotFound, http.StatusNotFound},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrAuctionClosed, http.StatusConflict},
	{domain.ErrAuctionNotEnded, http.StatusConflict},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrAccountNotActivated, http.StatusPreconditionFailed},
	{domain.ErrInvalidBid, http.StatusBadRequest},
	{domain.ErrBadParamInput, http.StatusBadRequest},
	{domain.ErrInvalidNumberFormat, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrUnsupportedContentType, http.StatusBadRequest},
}

// StatusOf maps an error to its HTTP status, fallback when unknown
func StatusOf(err error, fallback int) int {
	for _, e := range errStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return fallback
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

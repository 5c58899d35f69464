package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/swiftbid/base/ctx"
)

func TestAddContext(t *testing.T) {
	e := echo.New()
	m := InitMiddleware("")

	var seen interface{}
	e.GET("/", func(c echo.Context) error {
		seen = c.Get("ctx").(ctx.Ctx).Value("requestID")
		return c.NoContent(http.StatusOK)
	}, m.AddContext(), m.ResponseLogger(), m.CORS)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), seen)
}

func TestResponseLoggerHandlesErrors(t *testing.T) {
	e := echo.New()
	m := InitMiddleware("https://swiftbid.app")
	e.GET("/", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	}, m.CORS, m.AddContext(), m.ResponseLogger())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "https://swiftbid.app", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

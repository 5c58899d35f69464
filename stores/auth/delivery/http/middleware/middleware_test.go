package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/swiftbid/base/ctx"
	mDomain "github.com/x-xyz/swiftbid/domain/mocks"
)

func TestAuth(t *testing.T) {
	auth := &mDomain.AuthUsecase{}
	defer auth.AssertExpectations(t)
	auth.On("ParseToken", mock.Anything, "good").Return("user-1", nil).Once()
	auth.On("ParseToken", mock.Anything, "bad").Return("", errors.New("invalid")).Once()

	e := echo.New()
	m := New(auth)
	var seen string
	h := m.Auth()(func(c echo.Context) error {
		seen = ctx.UserID(c.Get("ctx").(ctx.Ctx))
		return c.NoContent(http.StatusOK)
	})

	run := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("ctx", ctx.Background())
		if err := h(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	assert.Equal(t, http.StatusOK, run("good").Code)
	assert.Equal(t, "user-1", seen)
	assert.Equal(t, http.StatusUnauthorized, run("bad").Code)
}

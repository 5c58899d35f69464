package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/delivery"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/account"
	authMiddleware "github.com/x-xyz/swiftbid/stores/auth/delivery/http/middleware"
)

type handler struct {
	au   account.Usecase
	auth domain.AuthUsecase
}

type signUpResp struct {
	Token   string        `json:"token"`
	Account *account.Info `json:"account"`
}

// New registers the account routes
func New(e *echo.Echo, au account.Usecase, auth domain.AuthUsecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		au:   au,
		auth: auth,
	}
	g := e.Group("/account")
	g.POST("/signup", h.signUp)

	// self
	g.GET("/me", h.getMe, authMiddleware.Auth())
	g.PATCH("/me", h.updateMe, authMiddleware.Auth())
}

// signUp
//
//	@Summary		Sign up
//	@Description	Create an account and return an access token
//	@Tags			account
//	@Accept			json
//	@Produce		json
//	@Param			params	body		account.SignUpParams	true	"params"
//	@Success		201		{object}	object{data=http.signUpResp}
//	@Failure		400
//	@Failure		409
//	@Router			/account/signup [post]
func (h *handler) signUp(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &account.SignUpParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	info, err := h.au.SignUp(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	tkn, err := h.auth.SignToken(ctx, info.Id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, signUpResp{Token: tkn, Account: info})
}

// getMe
//
//	@Summary		Get profile
//	@Tags			account
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	object{data=account.Info}
//	@Failure		401
//	@Router			/account/me [get]
func (h *handler) getMe(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	info, err := h.au.Get(ctx, c.Get("userId").(string))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, info)
}

// updateMe
//
//	@Summary		Update profile
//	@Tags			account
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		account.Updater	true	"params"
//	@Success		200		{object}	object{data=account.Info}
//	@Failure		400
//	@Router			/account/me [patch]
func (h *handler) updateMe(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	updater := &account.Updater{}
	if err := c.Bind(updater); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	info, err := h.au.Update(ctx, c.Get("userId").(string), updater)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, info)
}

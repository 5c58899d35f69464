package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/delivery"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/account"
)

type authHandler struct {
	auth     domain.AuthUsecase
	accounts account.Usecase
}

type tokenResp struct {
	Token   string        `json:"token"`
	Account *account.Info `json:"account"`
}

func New(e *echo.Echo, auth domain.AuthUsecase, accounts account.Usecase) {
	handler := &authHandler{
		auth:     auth,
		accounts: accounts,
	}
	g := e.Group("/auth")
	g.POST("/signin", handler.signIn)
}

// signIn
//
//	@Summary		Sign in
//	@Description	Exchange email and password for an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.signIn.params	true	"params"
//	@Success		201		{object}	object{data=http.tokenResp}
//	@Failure		400
//	@Failure		401
//	@Router			/auth/signin [post]
func (h *authHandler) signIn(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	info, err := h.accounts.Authenticate(ctx, p.Email, p.Password)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	if tkn, err := h.auth.SignToken(ctx, info.Id); err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tokenResp{Token: tkn, Account: info})
	}
}

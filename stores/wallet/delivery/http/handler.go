package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/delivery"
	"github.com/x-xyz/swiftbid/domain/wallet"
	authMiddleware "github.com/x-xyz/swiftbid/stores/auth/delivery/http/middleware"
)

type handler struct {
	wallets wallet.Usecase
}

func New(e *echo.Echo, wallets wallet.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{wallets: wallets}
	g := e.Group("/wallet", authMiddleware.Auth())
	g.POST("", h.create)
	g.GET("", h.get)
	g.GET("/balance", h.balance)
}

// create
//
//	@Summary		Create wallet
//	@Description	Create the custodial wallet of the signed in user
//	@Tags			wallet
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		201	{object}	object{data=wallet.Wallet}
//	@Failure		409
//	@Router			/wallet [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	w, err := h.wallets.Create(ctx, c.Get("userId").(string))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, w)
}

// get
//
//	@Summary		Get wallet
//	@Tags			wallet
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	object{data=wallet.Wallet}
//	@Failure		404
//	@Router			/wallet [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	w, err := h.wallets.Get(ctx, c.Get("userId").(string))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, w)
}

// balance
//
//	@Summary		Get wallet balance
//	@Tags			wallet
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	object{data=wallet.Balance}
//	@Failure		404
//	@Router			/wallet/balance [get]
func (h *handler) balance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	b, err := h.wallets.Balance(ctx, c.Get("userId").(string))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, b)
}

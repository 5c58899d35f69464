package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/delivery"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/listing"
	"github.com/x-xyz/swiftbid/domain/session"
	authMiddleware "github.com/x-xyz/swiftbid/stores/auth/delivery/http/middleware"
	webresource "github.com/x-xyz/swiftbid/stores/web_resource/usecase"
)

type handler struct {
	lu     listing.Usecase
	opener session.Opener
}

type createReq struct {
	Title        string    `json:"title" validate:"required,max=120"`
	Description  string    `json:"description" validate:"max=4000"`
	StartingBid  string    `json:"startingBid" validate:"required,amount"`
	AuctionStart time.Time `json:"auctionStart"`
	AuctionEnd   time.Time `json:"auctionEnd" validate:"required"`
	// Image is a base64 data uri, optional
	Image string `json:"image"`
}

type bidReq struct {
	Amount string `json:"amount" validate:"required,amount"`
}

// New registers the listing routes. The event stream is served by hub.
func New(e *echo.Echo, lu listing.Usecase, opener session.Opener, hub *Hub, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		lu:     lu,
		opener: opener,
	}

	g := e.Group("/listings")
	g.GET("", h.list)
	g.GET("/events", hub.Serve)
	g.GET("/:id", h.get)
	g.GET("/:id/settlements", h.settlements)

	g.POST("", h.create, authMiddleware.Auth())
	g.POST("/:id/bids", h.placeBid, authMiddleware.Auth())
	g.POST("/:id/buy", h.buyNow, authMiddleware.Auth())
}

// list
//
//	@Summary		List listings
//	@Description	Every listing, open and settling ones first
//	@Tags			listing
//	@Produce		json
//	@Success		200	{object}	object{data=[]listing.Listing}
//	@Router			/listings [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	ls, err := h.lu.List(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, ls)
}

// get
//
//	@Summary		Get listing
//	@Tags			listing
//	@Produce		json
//	@Param			id	path		string	true	"listing id"
//	@Success		200	{object}	object{data=listing.Listing}
//	@Failure		404
//	@Router			/listings/{id} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	l, err := h.lu.Get(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

// settlements
//
//	@Summary		List settlement attempts
//	@Tags			listing
//	@Produce		json
//	@Param			id	path		string	true	"listing id"
//	@Success		200	{object}	object{data=[]settlement.Attempt}
//	@Failure		404
//	@Router			/listings/{id}/settlements [get]
func (h *handler) settlements(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	as, err := h.lu.Settlements(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, as)
}

// create
//
//	@Summary		Create listing
//	@Description	The signed in user must own a wallet, it receives the proceeds
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		http.createReq	true	"params"
//	@Success		201		{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		404
//	@Router			/listings [post]
func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := &createReq{}
	if err := c.Bind(req); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	startingBid, err := domain.NewAmountFromString(req.StartingBid)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	params := &listing.CreateParams{
		Title:        req.Title,
		Description:  req.Description,
		StartingBid:  startingBid,
		AuctionStart: req.AuctionStart,
		AuctionEnd:   req.AuctionEnd,
	}
	if req.Image != "" {
		if params.Image, err = webresource.DecodeImageData(req.Image); err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
	}

	sess, err := h.opener.Open(ctx, c.Get("userId").(string))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	defer sess.Close()

	l, err := h.lu.Create(ctx, sess, params)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, l)
}

// placeBid
//
//	@Summary		Place bid
//	@Description	Raise the current bid, the amount must strictly exceed it
//	@Tags			listing
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path		string		true	"listing id"
//	@Param			params	body		http.bidReq	true	"params"
//	@Success		200		{object}	object{data=listing.Listing}
//	@Failure		400
//	@Failure		409
//	@Router			/listings/{id}/bids [post]
func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req := &bidReq{}
	if err := c.Bind(req); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	sess, err := h.opener.Open(ctx, c.Get("userId").(string))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	defer sess.Close()

	l, err := h.lu.PlaceBid(ctx, sess, c.Param("id"), req.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

// buyNow
//
//	@Summary		Buy now
//	@Description	Settle immediately at the buy now price
//	@Tags			listing
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		string	true	"listing id"
//	@Success		200	{object}	object{data=listing.SettleResult}
//	@Failure		409
//	@Failure		502
//	@Router			/listings/{id}/buy [post]
func (h *handler) buyNow(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	sess, err := h.opener.Open(ctx, c.Get("userId").(string))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	defer sess.Close()

	res, err := h.lu.BuyNow(ctx, sess, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/validator"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/listing"
	mListing "github.com/x-xyz/swiftbid/domain/listing/mocks"
	mDomain "github.com/x-xyz/swiftbid/domain/mocks"
	mSession "github.com/x-xyz/swiftbid/domain/session/mocks"
	authMiddleware "github.com/x-xyz/swiftbid/stores/auth/delivery/http/middleware"
)

const token = "token-alice"

type handlerSuite struct {
	suite.Suite
	e      *echo.Echo
	lu     *mListing.Usecase
	opener *mSession.Opener
	sess   *mSession.Session
	auth   *mDomain.AuthUsecase
	hub    *Hub
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.lu = &mListing.Usecase{}
	s.opener = &mSession.Opener{}
	s.sess = &mSession.Session{}
	s.auth = &mDomain.AuthUsecase{}
	s.hub = NewHub()

	s.auth.On("ParseToken", mock.Anything, token).Return("alice", nil).Maybe()
	s.auth.On("ParseToken", mock.Anything, mock.Anything).Return("", domain.ErrUnauthorized).Maybe()

	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(s.e, s.lu, s.opener, s.hub, authMiddleware.New(s.auth))
}

func (s *handlerSuite) TearDownTest() {
	s.lu.AssertExpectations(s.T())
	s.opener.AssertExpectations(s.T())
	s.sess.AssertExpectations(s.T())
}

func (s *handlerSuite) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) openSession() {
	s.opener.On("Open", mock.Anything, "alice").Return(s.sess, nil).Once()
	s.sess.On("Close").Return().Once()
}

func (s *handlerSuite) TestPlaceBid() {
	id := primitive.NewObjectID()
	s.openSession()
	s.lu.On("PlaceBid", mock.Anything, s.sess, id.Hex(), "12.5").Return(&listing.Listing{
		Id:         id,
		CurrentBid: domain.MustAmount("12.5"),
	}, nil).Once()

	rec := s.do(http.MethodPost, "/listings/"+id.Hex()+"/bids", `{"amount":"12.5"}`, token)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"currentBid":"12.5"`)
}

func (s *handlerSuite) TestPlaceBidErrors() {
	id := primitive.NewObjectID().Hex()

	// rejected by validation before any session is opened
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/listings/"+id+"/bids", `{"amount":"-1"}`, token).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/listings/"+id+"/bids", `{"amount":"abc"}`, token).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/listings/"+id+"/bids", `{"amount":"3"}`, "forged").Code)

	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidBid, http.StatusBadRequest},
		{domain.ErrAuctionClosed, http.StatusConflict},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		s.openSession()
		s.lu.On("PlaceBid", mock.Anything, s.sess, id, "3").Return(nil, tc.err).Once()
		s.Equal(tc.code, s.do(http.MethodPost, "/listings/"+id+"/bids", `{"amount":"3"}`, token).Code, tc.err.Error())
	}
}

func (s *handlerSuite) TestPlaceBidWithoutWallet() {
	id := primitive.NewObjectID().Hex()
	s.opener.On("Open", mock.Anything, "alice").Return(nil, domain.ErrWalletNotFound).Once()

	rec := s.do(http.MethodPost, "/listings/"+id+"/bids", `{"amount":"3"}`, token)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *handlerSuite) TestBuyNow() {
	id := primitive.NewObjectID()
	s.openSession()
	s.lu.On("BuyNow", mock.Anything, s.sess, id.Hex()).Return(&listing.SettleResult{
		Listing: &listing.Listing{Id: id, Status: listing.StatusSold},
	}, nil).Once()

	rec := s.do(http.MethodPost, "/listings/"+id.Hex()+"/buy", "", token)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"sold"`)
}

func (s *handlerSuite) TestBuyNowSettlementFailed() {
	id := primitive.NewObjectID().Hex()
	s.openSession()
	s.lu.On("BuyNow", mock.Anything, s.sess, id).Return(nil, domain.NewSettlementError(errors.New("rejected"))).Once()

	rec := s.do(http.MethodPost, "/listings/"+id+"/buy", "", token)
	s.Equal(http.StatusBadGateway, rec.Code)
	s.Contains(rec.Body.String(), "rejected")
}

func (s *handlerSuite) TestCreate() {
	s.openSession()
	s.lu.On("Create", mock.Anything, s.sess, mock.MatchedBy(func(p *listing.CreateParams) bool {
		return p.Title == "lamp" && p.StartingBid.Equal(domain.MustAmount("10").Decimal) && string(p.Image) == "png"
	})).Return(&listing.Listing{Title: "lamp"}, nil).Once()

	body := `{"title":"lamp","startingBid":"10","auctionEnd":"2026-03-02T12:00:00Z","image":"data:image/png;base64,cG5n"}`
	rec := s.do(http.MethodPost, "/listings", body, token)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *handlerSuite) TestCreateBadImage() {
	body := `{"title":"lamp","startingBid":"10","auctionEnd":"2026-03-02T12:00:00Z","image":"data:image/png;base64,%%%"}`
	rec := s.do(http.MethodPost, "/listings", body, token)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestGetAndList() {
	id := primitive.NewObjectID().Hex()
	s.lu.On("Get", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()
	s.lu.On("List", mock.Anything).Return([]*listing.Listing{{Title: "a"}, {Title: "b"}}, nil).Once()
	s.lu.On("Settlements", mock.Anything, id).Return(nil, nil).Once()

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/listings/"+id, "", "").Code)

	rec := s.do(http.MethodGet, "/listings", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"title":"b"`)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/listings/"+id+"/settlements", "", "").Code)
}

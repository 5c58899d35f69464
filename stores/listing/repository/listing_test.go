package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/ptr"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/listing"
	"github.com/x-xyz/swiftbid/service/cache"
	cachePrimitive "github.com/x-xyz/swiftbid/service/cache/provider/primitive"
	"github.com/x-xyz/swiftbid/service/query"
	mQuery "github.com/x-xyz/swiftbid/service/query/mocks"
)

var mockCtx = ctx.Background()

type listingRepoSuite struct {
	suite.Suite
	q    *mQuery.Mongo
	repo *listingRepo
}

func (s *listingRepoSuite) SetupTest() {
	s.q = &mQuery.Mongo{}
	s.repo = New(s.q, cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "listing-test",
		Cache: cachePrimitive.NewPrimitive("listing-test", 1),
	})).(*listingRepo)
}

func (s *listingRepoSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func TestListingRepoSuite(t *testing.T) {
	suite.Run(t, new(listingRepoSuite))
}

func (s *listingRepoSuite) TestStatusSelector() {
	s.Equal(bson.M{"$in": bson.A{listing.StatusOpen, nil, listing.StatusSettling}},
		statusSelector([]listing.Status{listing.StatusOpen, listing.StatusSettling}))
	s.Equal(bson.M{"$in": bson.A{listing.StatusSold}},
		statusSelector([]listing.Status{listing.StatusSold}))
}

func (s *listingRepoSuite) TestMakeFindQuery() {
	now := time.Now()
	qry, sort, offset, limit, err := makeFindQuery(
		listing.WithStatus(listing.StatusSettling),
		listing.WithEndedBefore(now),
		listing.WithPagination(5, 10),
	)
	s.Require().NoError(err)
	s.Equal(bson.M{
		"status":     bson.M{"$in": bson.A{listing.StatusSettling}},
		"auctionEnd": bson.M{"$lt": now},
	}, qry)
	s.Equal("-_id", sort)
	s.Equal(5, offset)
	s.Equal(10, limit)

	_, _, _, _, err = makeFindQuery(listing.WithPagination(-1, 0))
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *listingRepoSuite) TestMakeFindQueryExpiryDue() {
	now := time.Now()
	qry, sort, _, _, err := makeFindQuery(
		listing.WithStatus(listing.StatusOpen),
		listing.WithEndedBefore(now),
		listing.WithExpiryDue(now),
		listing.WithSort("auctionEnd"),
	)
	s.Require().NoError(err)
	s.Equal(bson.M{
		"status":       bson.M{"$in": bson.A{listing.StatusOpen, nil}},
		"auctionEnd":   bson.M{"$lt": now},
		"expiryGaveUp": bson.M{"$ne": true},
		"$or": bson.A{
			bson.M{"expiryRetryAt": bson.M{"$exists": false}},
			bson.M{"expiryRetryAt": bson.M{"$lte": now}},
		},
	}, qry)
	s.Equal("auctionEnd", sort)
}

func (s *listingRepoSuite) TestFindAllSorted() {
	now := time.Now()
	s.q.On("Search", mockCtx, domain.TableListings, 0, 3, "auctionEnd", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := s.repo.FindAll(mockCtx, listing.WithEndedBefore(now), listing.WithSort("auctionEnd"), listing.WithPagination(0, 3))
	s.Require().NoError(err)
}

func (s *listingRepoSuite) TestFindOne() {
	id := primitive.NewObjectID()
	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": id}, mock.Anything).Return(query.ErrNotFound).Once()
	_, err := s.repo.FindOne(mockCtx, id)
	s.Equal(domain.ErrNotFound, err)

	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": id}, mock.Anything).Return(errors.New("socket closed")).Once()
	_, err = s.repo.FindOne(mockCtx, id)
	s.True(errors.Is(err, domain.ErrStoreUnavailable))
}

func (s *listingRepoSuite) TestFindAllIsCachedUntilWrite() {
	stored := []*listing.Listing{{Id: primitive.NewObjectID(), Title: "bike"}}
	fill := func(args mock.Arguments) {
		res := args.Get(6).(*[]*listing.Listing)
		*res = stored
	}

	s.q.On("Search", mockCtx, domain.TableListings, 0, 0, "-_id", bson.M{}, mock.Anything).Run(fill).Return(nil).Twice()

	for i := 0; i < 2; i++ {
		res, err := s.repo.FindAll(mockCtx)
		s.Require().NoError(err)
		s.Require().Len(res, 1)
		s.Equal("bike", res[0].Title)
	}

	s.q.On("Insert", mockCtx, domain.TableListings, mock.Anything).Return(nil).Once()
	l := &listing.Listing{Title: "car"}
	s.Require().NoError(s.repo.Create(mockCtx, l))
	s.False(l.Id.IsZero())
	s.Equal(int64(1), l.Version)

	_, err := s.repo.FindAll(mockCtx)
	s.Require().NoError(err)
}

func (s *listingRepoSuite) TestCompareAndSwap() {
	id := primitive.NewObjectID()
	bid := domain.MustAmount("12")
	now := time.Now()
	patch := &listing.Patch{
		CurrentBid:      &bid,
		HighestBidderId: ptr.String("u2"),
		UpdatedAt:       now,
		Unset:           []string{"pendingTxHash"},
	}

	selector := bson.M{
		"_id":     id,
		"version": int64(3),
		"status":  bson.M{"$in": bson.A{listing.StatusOpen, nil}},
	}
	update := bson.M{
		"$inc":   bson.M{"version": 1},
		"$set":   bson.M{"currentBid": bid, "highestBidderId": "u2", "updatedAt": now},
		"$unset": bson.M{"pendingTxHash": ""},
	}
	s.q.On("FindOneAndUpdate", mockCtx, domain.TableListings, selector, update, mock.Anything).Run(func(args mock.Arguments) {
		res := args.Get(4).(*listing.Listing)
		res.Id = id
		res.Version = 4
	}).Return(nil).Once()

	res, err := s.repo.CompareAndSwap(mockCtx, id, 3, []listing.Status{listing.StatusOpen}, patch)
	s.Require().NoError(err)
	s.Equal(int64(4), res.Version)
}

func (s *listingRepoSuite) TestCompareAndSwapConflict() {
	id := primitive.NewObjectID()
	s.q.On("FindOneAndUpdate", mockCtx, domain.TableListings, mock.Anything, mock.Anything, mock.Anything).Return(query.ErrNotFound).Once()
	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": id}, mock.Anything).Return(nil).Once()

	_, err := s.repo.CompareAndSwap(mockCtx, id, 1, nil, &listing.Patch{UpdatedAt: time.Now()})
	s.Equal(domain.ErrConflict, err)
}

func (s *listingRepoSuite) TestCompareAndSwapNotFound() {
	id := primitive.NewObjectID()
	s.q.On("FindOneAndUpdate", mockCtx, domain.TableListings, mock.Anything, mock.Anything, mock.Anything).Return(query.ErrNotFound).Once()
	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": id}, mock.Anything).Return(query.ErrNotFound).Once()

	_, err := s.repo.CompareAndSwap(mockCtx, id, 1, nil, &listing.Patch{UpdatedAt: time.Now()})
	s.Equal(domain.ErrNotFound, err)
}

package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/settlement"
	"github.com/x-xyz/swiftbid/service/query"
	mQuery "github.com/x-xyz/swiftbid/service/query/mocks"
)

var mockCtx = ctx.Background()

type settlementRepoSuite struct {
	suite.Suite
	q    *mQuery.Mongo
	repo settlement.Repo
}

func (s *settlementRepoSuite) SetupTest() {
	s.q = &mQuery.Mongo{}
	s.repo = New(s.q)
}

func (s *settlementRepoSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func TestSettlementRepoSuite(t *testing.T) {
	suite.Run(t, new(settlementRepoSuite))
}

func (s *settlementRepoSuite) TestFinish() {
	hash := domain.TxHash("0x01")
	s.q.On("Patch", mockCtx, domain.TableSettlements, bson.M{"_id": "a1"}, mock.MatchedBy(func(m bson.M) bool {
		_, hasReason := m["reason"]
		_, hasUpdatedAt := m["updatedAt"]
		return m["status"] == settlement.StatusSucceeded && m["txHash"] == hash && !hasReason && hasUpdatedAt
	})).Return(nil).Once()

	s.NoError(s.repo.Finish(mockCtx, "a1", &settlement.Result{Status: settlement.StatusSucceeded, TxHash: &hash}))
}

func (s *settlementRepoSuite) TestFinishNotFound() {
	s.q.On("Patch", mockCtx, domain.TableSettlements, bson.M{"_id": "a1"}, mock.Anything).Return(query.ErrNotFound).Once()
	s.Equal(domain.ErrNotFound, s.repo.Finish(mockCtx, "a1", &settlement.Result{Status: settlement.StatusFailed}))
}

func (s *settlementRepoSuite) TestFindByListing() {
	s.q.On("Search", mockCtx, domain.TableSettlements, 0, 5, "-createdAt", bson.M{"listingId": "l1"}, mock.Anything).
		Run(func(args mock.Arguments) {
			res := args.Get(6).(*[]*settlement.Attempt)
			*res = append(*res, &settlement.Attempt{Id: "a2"}, &settlement.Attempt{Id: "a1"})
		}).Return(nil).Once()

	res, err := s.repo.FindByListing(mockCtx, "l1", 5)
	s.Require().NoError(err)
	s.Len(res, 2)
	s.Equal("a2", res[0].Id)
}

func (s *settlementRepoSuite) TestFindByListingError() {
	s.q.On("Search", mockCtx, domain.TableSettlements, 0, 5, "-createdAt", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
	_, err := s.repo.FindByListing(mockCtx, "l1", 5)
	s.Error(err)
}

func (s *settlementRepoSuite) TestCountFailed() {
	s.q.On("Count", mockCtx, domain.TableSettlements, bson.M{
		"listingId": "l1",
		"kind":      settlement.KindExpiry,
		"status":    settlement.StatusFailed,
	}).Return(2, nil).Once()

	n, err := s.repo.CountFailed(mockCtx, "l1", settlement.KindExpiry)
	s.Require().NoError(err)
	s.Equal(2, n)
}

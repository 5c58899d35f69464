package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/ptr"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/account"
	mAccount "github.com/x-xyz/swiftbid/domain/account/mocks"
)

var mockCtx = ctx.Background()

type accountUsecaseSuite struct {
	suite.Suite
	repo *mAccount.Repo
	uc   account.Usecase
}

func (s *accountUsecaseSuite) SetupTest() {
	s.repo = &mAccount.Repo{}
	s.uc = New(&AccountUseCaseCfg{Repo: s.repo, BcryptCost: bcrypt.MinCost})
}

func (s *accountUsecaseSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func TestAccountUsecaseSuite(t *testing.T) {
	suite.Run(t, new(accountUsecaseSuite))
}

func (s *accountUsecaseSuite) TestSignUpAndAuthenticate() {
	var stored *account.Account
	s.repo.On("GetByEmail", mockCtx, "ann@example.com").Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Insert", mockCtx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*account.Account)
		stored.Id = primitive.NewObjectID()
	}).Return(nil).Once()

	info, err := s.uc.SignUp(mockCtx, &account.SignUpParams{Email: " Ann@Example.com", Password: "password1", Username: "ann"})
	s.Require().NoError(err)
	s.Equal("ann@example.com", info.Email)
	s.NotEqual("password1", stored.PasswordHash)

	s.repo.On("GetByEmail", mockCtx, "ann@example.com").Return(stored, nil).Twice()
	info, err = s.uc.Authenticate(mockCtx, "ann@example.com", "password1")
	s.Require().NoError(err)
	s.Equal(stored.Id.Hex(), info.Id)

	_, err = s.uc.Authenticate(mockCtx, "ann@example.com", "wrong-password")
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *accountUsecaseSuite) TestSignUpDuplicate() {
	s.repo.On("GetByEmail", mockCtx, "ann@example.com").Return(&account.Account{}, nil).Once()
	_, err := s.uc.SignUp(mockCtx, &account.SignUpParams{Email: "ann@example.com", Password: "password1", Username: "ann"})
	s.Equal(domain.ErrConflict, err)
}

func (s *accountUsecaseSuite) TestSignUpShortPassword() {
	_, err := s.uc.SignUp(mockCtx, &account.SignUpParams{Email: "ann@example.com", Password: "short", Username: "ann"})
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *accountUsecaseSuite) TestAuthenticateUnknown() {
	s.repo.On("GetByEmail", mockCtx, "bob@example.com").Return(nil, domain.ErrNotFound).Once()
	_, err := s.uc.Authenticate(mockCtx, "bob@example.com", "password1")
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *accountUsecaseSuite) TestUpdate() {
	id := primitive.NewObjectID()
	addr := domain.Address("0xab")
	s.repo.On("Update", mockCtx, id, mock.MatchedBy(func(u *account.Updater) bool {
		return *u.Username == "ann2" && u.WalletAddress == nil && !u.UpdatedAt.IsZero()
	})).Return(nil).Once()
	s.repo.On("Get", mockCtx, id).Return(&account.Account{Id: id, Username: "ann2"}, nil).Once()

	info, err := s.uc.Update(mockCtx, id.Hex(), &account.Updater{Username: ptr.String("ann2"), WalletAddress: &addr})
	s.Require().NoError(err)
	s.Equal("ann2", info.Username)

	_, err = s.uc.Get(mockCtx, "nope")
	s.Equal(domain.ErrNotFound, err)
}

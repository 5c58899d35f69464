package session

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/swiftbid/base/ctx"
	bEthereum "github.com/x-xyz/swiftbid/base/ethereum"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/ledger"
	mLedger "github.com/x-xyz/swiftbid/domain/ledger/mocks"
	"github.com/x-xyz/swiftbid/domain/wallet"
	mWallet "github.com/x-xyz/swiftbid/domain/wallet/mocks"
)

var mockCtx = ctx.Background()

type sessionSuite struct {
	suite.Suite
	wallets   *mWallet.Usecase
	connector *mLedger.Connector
	client    *mLedger.Client
	opener    *opener

	released int
	identity *wallet.Identity
}

func (s *sessionSuite) SetupTest() {
	s.wallets = &mWallet.Usecase{}
	s.connector = &mLedger.Connector{}
	s.client = &mLedger.Client{}
	s.opener = NewOpener(s.wallets, s.connector).(*opener)
	s.released = 0
	s.identity = &wallet.Identity{UserId: "u1", Address: "0xaaaa"}
}

func (s *sessionSuite) TearDownTest() {
	s.wallets.AssertExpectations(s.T())
	s.connector.AssertExpectations(s.T())
	s.client.AssertExpectations(s.T())
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(sessionSuite))
}

func (s *sessionSuite) open() *impl {
	s.wallets.On("Identity", mockCtx, "u1").Return(s.identity, nil).Once()
	s.connector.On("Connect", mockCtx).Return(s.client, func() { s.released++ }, nil).Once()
	sess, err := s.opener.Open(mockCtx, "u1")
	s.Require().NoError(err)
	return sess.(*impl)
}

func (s *sessionSuite) TestOpen() {
	sess := s.open()
	s.Equal(*s.identity, sess.Identity())
	s.Equal(s.client, sess.Ledger())

	sess.Close()
	sess.Close()
	s.Equal(1, s.released)
}

func (s *sessionSuite) TestOpenWithoutWallet() {
	s.wallets.On("Identity", mockCtx, "u1").Return(nil, domain.ErrWalletNotFound).Once()
	_, err := s.opener.Open(mockCtx, "u1")
	s.Equal(domain.ErrWalletNotFound, err)
}

func (s *sessionSuite) TestOpenNoSlot() {
	boom := errors.New("no slot")
	s.wallets.On("Identity", mockCtx, "u1").Return(s.identity, nil).Once()
	s.connector.On("Connect", mockCtx).Return(nil, nil, boom).Once()
	_, err := s.opener.Open(mockCtx, "u1")
	s.Equal(boom, err)
}

func (s *sessionSuite) TestSignZeroesCredential() {
	sess := s.open()
	defer sess.Close()

	key, _, err := bEthereum.GenerateKey()
	s.Require().NoError(err)
	cred := &wallet.Credential{Address: s.identity.Address, PrivateKey: key}
	credReleased := false
	s.wallets.On("Acquire", mockCtx, "u1").Return(cred, func() {
		credReleased = true
		cred.Zero()
	}, nil).Once()

	tx := &ledger.UnsignedTransfer{From: "0xAAAA", ChainId: big.NewInt(1)}
	signed := &ledger.SignedTransfer{From: "0xaaaa", Hash: "0x01"}
	s.client.On("Sign", mockCtx, tx, key).Return(signed, nil).Once()

	res, err := sess.Sign(mockCtx, tx)
	s.Require().NoError(err)
	s.Equal(signed, res)
	s.True(credReleased)
	s.Nil(cred.PrivateKey)
	s.Equal(int64(0), key.D.Int64())
}

func (s *sessionSuite) TestSignOtherAddress() {
	sess := s.open()
	defer sess.Close()

	_, err := sess.Sign(mockCtx, &ledger.UnsignedTransfer{From: "0xbbbb"})
	s.Equal(ledger.ErrSignerMismatch, err)
}

func (s *sessionSuite) TestSignAfterClose() {
	sess := s.open()
	sess.Close()

	_, err := sess.Sign(mockCtx, &ledger.UnsignedTransfer{From: "0xaaaa"})
	s.Equal(ledger.ErrSessionClosed, err)
}

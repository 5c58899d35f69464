package session

import (
	"sync"
	"sync/atomic"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain/ledger"
	"github.com/x-xyz/swiftbid/domain/session"
	"github.com/x-xyz/swiftbid/domain/wallet"
)

type impl struct {
	identity wallet.Identity
	client   ledger.Client
	wallets  wallet.Usecase

	closed    int32
	closeOnce sync.Once
	release   func()
}

func (s *impl) Identity() wallet.Identity {
	return s.identity
}

func (s *impl) Ledger() ledger.Client {
	return s.client
}

func (s *impl) Sign(c ctx.Ctx, tx *ledger.UnsignedTransfer) (*ledger.SignedTransfer, error) {
	if atomic.LoadInt32(&s.closed) == 1 {
		return nil, ledger.ErrSessionClosed
	}
	if !tx.From.Equals(s.identity.Address) {
		c.WithFields(log.Fields{
			"from":     tx.From,
			"identity": s.identity.Address,
		}).Warn("refusing to sign for another address")
		return nil, ledger.ErrSignerMismatch
	}

	cred, release, err := s.wallets.Acquire(c, s.identity.UserId)
	if err != nil {
		c.WithField("err", err).Error("wallets.Acquire failed")
		return nil, err
	}
	defer release()

	return s.client.Sign(c, tx, cred.PrivateKey)
}

func (s *impl) Close() {
	s.closeOnce.Do(func() {
		atomic.StoreInt32(&s.closed, 1)
		s.release()
	})
}

type opener struct {
	wallets   wallet.Usecase
	connector ledger.Connector
}

// NewOpener opens sessions for users owning a wallet
func NewOpener(wallets wallet.Usecase, connector ledger.Connector) session.Opener {
	return &opener{
		wallets:   wallets,
		connector: connector,
	}
}

func (o *opener) Open(c ctx.Ctx, userId string) (session.Session, error) {
	identity, err := o.wallets.Identity(c, userId)
	if err != nil {
		return nil, err
	}

	client, release, err := o.connector.Connect(c)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "userId": userId}).Error("connector.Connect failed")
		return nil, err
	}

	return &impl{
		identity: *identity,
		client:   client,
		wallets:  o.wallets,
		release:  release,
	}, nil
}

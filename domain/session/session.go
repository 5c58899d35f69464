package session

import (
	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain/ledger"
	"github.com/x-xyz/swiftbid/domain/wallet"
)

// Session binds an identity to a ledger connection for the lifetime of one
// user interaction. It never holds key material between calls.
type Session interface {
	Identity() wallet.Identity
	Ledger() ledger.Client
	// Sign acquires the identity's credential, signs tx and releases the
	// credential before returning.
	Sign(c ctx.Ctx, tx *ledger.UnsignedTransfer) (*ledger.SignedTransfer, error)
	Close()
}

// Opener starts sessions
type Opener interface {
	Open(c ctx.Ctx, userId string) (Session, error)
}

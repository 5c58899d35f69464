package wallet

import (
	"crypto/ecdsa"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
)

// Wallet is a custodial wallet. The private key only exists encrypted in
// Keystore.
type Wallet struct {
	UserId    string         `json:"userId" bson:"userId"`
	Address   domain.Address `json:"address" bson:"address"`
	Keystore  string         `json:"-" bson:"keystore"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

// Identity is who acts in a session
type Identity struct {
	UserId  string         `json:"userId"`
	Address domain.Address `json:"address"`
}

// Credential is a decrypted signing key, valid until its release func runs
type Credential struct {
	Address    domain.Address
	PrivateKey *ecdsa.PrivateKey
}

// Zero wipes the key material in place
func (c *Credential) Zero() {
	if c == nil || c.PrivateKey == nil {
		return
	}
	if c.PrivateKey.D != nil {
		b := c.PrivateKey.D.Bits()
		for i := range b {
			b[i] = 0
		}
		c.PrivateKey.D.SetInt64(0)
	}
	c.PrivateKey = nil
}

type Balance struct {
	Address   domain.Address  `json:"address"`
	Balance   decimal.Decimal `json:"balance"`
	Activated bool            `json:"activated"`
}

type Repo interface {
	FindByUserId(c ctx.Ctx, userId string) (*Wallet, error)
	Insert(c ctx.Ctx, w *Wallet) error
}

// Usecase is the identity/wallet provider
type Usecase interface {
	Create(c ctx.Ctx, userId string) (*Wallet, error)
	Get(c ctx.Ctx, userId string) (*Wallet, error)
	// Identity returns domain.ErrWalletNotFound when the user has no wallet
	Identity(c ctx.Ctx, userId string) (*Identity, error)
	Balance(c ctx.Ctx, userId string) (*Balance, error)
	// Acquire decrypts the user's signing key. The caller must call release
	// as soon as the key is no longer needed.
	Acquire(c ctx.Ctx, userId string) (cred *Credential, release func(), err error)
}

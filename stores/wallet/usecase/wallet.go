package usecase

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/ethereum"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/account"
	"github.com/x-xyz/swiftbid/domain/ledger"
	"github.com/x-xyz/swiftbid/domain/wallet"
)

type Config struct {
	// Passphrase encrypts every keystore
	Passphrase string
	// ScryptN and ScryptP tune keystore encryption, defaulting to the light parameters
	ScryptN int
	ScryptP int
}

type impl struct {
	repo     wallet.Repo
	accounts account.Repo
	ledger   ledger.Client
	cfg      Config
}

func New(repo wallet.Repo, accounts account.Repo, ledger ledger.Client, cfg Config) wallet.Usecase {
	if cfg.ScryptN <= 0 || cfg.ScryptP <= 0 {
		cfg.ScryptN, cfg.ScryptP = keystore.LightScryptN, keystore.LightScryptP
	}
	return &impl{
		repo:     repo,
		accounts: accounts,
		ledger:   ledger,
		cfg:      cfg,
	}
}

func (im *impl) Create(c ctx.Ctx, userId string) (*wallet.Wallet, error) {
	if _, err := im.repo.FindByUserId(c, userId); err == nil {
		return nil, domain.ErrConflict
	} else if err != domain.ErrWalletNotFound {
		return nil, err
	}

	privateKey, _, err := ethereum.GenerateKey()
	if err != nil {
		c.WithField("err", err).Error("ethereum.GenerateKey failed")
		return nil, err
	}
	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}
	cred := &wallet.Credential{PrivateKey: privateKey}
	defer cred.Zero()

	encrypted, err := keystore.EncryptKey(key, im.cfg.Passphrase, im.cfg.ScryptN, im.cfg.ScryptP)
	if err != nil {
		c.WithField("err", err).Error("keystore.EncryptKey failed")
		return nil, err
	}

	w := &wallet.Wallet{
		UserId:    userId,
		Address:   ethereum.KeyAddress(privateKey),
		Keystore:  string(encrypted),
		CreatedAt: time.Now(),
	}
	if err := im.repo.Insert(c, w); err != nil {
		return nil, err
	}

	if oid, err := primitive.ObjectIDFromHex(userId); err == nil {
		if err := im.accounts.Update(c, oid, &account.Updater{WalletAddress: &w.Address, UpdatedAt: time.Now()}); err != nil {
			c.WithFields(log.Fields{
				"userId": userId,
				"err":    err,
			}).Warn("accounts.Update failed")
		}
	}
	return w, nil
}

func (im *impl) Get(c ctx.Ctx, userId string) (*wallet.Wallet, error) {
	return im.repo.FindByUserId(c, userId)
}

func (im *impl) Identity(c ctx.Ctx, userId string) (*wallet.Identity, error) {
	w, err := im.repo.FindByUserId(c, userId)
	if err != nil {
		return nil, err
	}
	return &wallet.Identity{UserId: w.UserId, Address: w.Address}, nil
}

func (im *impl) Balance(c ctx.Ctx, userId string) (*wallet.Balance, error) {
	w, err := im.repo.FindByUserId(c, userId)
	if err != nil {
		return nil, err
	}
	balance, err := im.ledger.Balance(c, w.Address)
	if err != nil {
		c.WithField("err", err).Error("ledger.Balance failed")
		return nil, err
	}
	activated, err := im.ledger.CheckFundable(c, w.Address)
	if err != nil {
		c.WithField("err", err).Error("ledger.CheckFundable failed")
		return nil, err
	}
	return &wallet.Balance{Address: w.Address, Balance: balance, Activated: activated}, nil
}

func (im *impl) Acquire(c ctx.Ctx, userId string) (*wallet.Credential, func(), error) {
	w, err := im.repo.FindByUserId(c, userId)
	if err != nil {
		return nil, nil, err
	}
	key, err := keystore.DecryptKey([]byte(w.Keystore), im.cfg.Passphrase)
	if err != nil {
		c.WithFields(log.Fields{
			"userId": userId,
			"err":    err,
		}).Error("keystore.DecryptKey failed")
		return nil, nil, err
	}

	cred := &wallet.Credential{Address: w.Address, PrivateKey: key.PrivateKey}
	once := sync.Once{}
	return cred, func() { once.Do(cred.Zero) }, nil
}

package usecase

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/account"
)

type AccountUseCaseCfg struct {
	Repo account.Repo
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
}

type impl struct {
	repo       account.Repo
	bcryptCost int
}

// New creates account usecase
func New(cfg *AccountUseCaseCfg) account.Usecase {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &impl{
		repo:       cfg.Repo,
		bcryptCost: cost,
	}
}

func (im *impl) SignUp(c ctx.Ctx, params *account.SignUpParams) (*account.Info, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || len(params.Password) < 8 || strings.TrimSpace(params.Username) == "" {
		return nil, domain.ErrBadParamInput
	}

	if _, err := im.repo.GetByEmail(c, email); err == nil {
		return nil, domain.ErrConflict
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), im.bcryptCost)
	if err != nil {
		c.WithField("err", err).Error("bcrypt.GenerateFromPassword failed")
		return nil, err
	}

	now := time.Now()
	a := &account.Account{
		Email:        email,
		PasswordHash: string(hash),
		Username:     strings.TrimSpace(params.Username),
		Contact:      params.Contact,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := im.repo.Insert(c, a); err != nil {
		return nil, err
	}
	return a.ToInfo(), nil
}

func (im *impl) Authenticate(c ctx.Ctx, email, password string) (*account.Info, error) {
	a, err := im.repo.GetByEmail(c, strings.ToLower(strings.TrimSpace(email)))
	if err == domain.ErrNotFound {
		return nil, domain.ErrUnauthorized
	} else if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return a.ToInfo(), nil
}

func (im *impl) Get(c ctx.Ctx, id string) (*account.Info, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	a, err := im.repo.Get(c, oid)
	if err != nil {
		return nil, err
	}
	return a.ToInfo(), nil
}

func (im *impl) Update(c ctx.Ctx, id string, updater *account.Updater) (*account.Info, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	// wallet address is owned by the wallet store
	updater.WalletAddress = nil
	updater.UpdatedAt = time.Now()
	if err := im.repo.Update(c, oid, updater); err != nil {
		return nil, err
	}
	return im.Get(c, id)
}

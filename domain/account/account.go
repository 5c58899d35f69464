package account

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
)

// Account is a user of the marketplace
type Account struct {
	Id            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"passwordHash"`
	Username      string             `bson:"username"`
	Contact       string             `bson:"contact"`
	WalletAddress domain.Address     `bson:"walletAddress,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt     time.Time          `bson:"updatedAt,omitempty"`
}

func (a *Account) ToInfo() *Info {
	return &Info{
		Id:            a.Id.Hex(),
		Email:         a.Email,
		Username:      a.Username,
		Contact:       a.Contact,
		WalletAddress: a.WalletAddress,
		CreatedAt:     a.CreatedAt,
	}
}

// Info is the account returned to clients
type Info struct {
	Id            string         `json:"id"`
	Email         string         `json:"email"`
	Username      string         `json:"username"`
	Contact       string         `json:"contact"`
	WalletAddress domain.Address `json:"walletAddress,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Updater to update account info
type Updater struct {
	Username      *string         `json:"username" bson:"username"`
	Contact       *string         `json:"contact" bson:"contact"`
	WalletAddress *domain.Address `json:"-" bson:"walletAddress"`
	UpdatedAt     time.Time       `json:"-" bson:"updatedAt,omitempty"`
}

type SignUpParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Username string `json:"username" validate:"required,min=2,max=32"`
	Contact  string `json:"contact" validate:"max=64"`
}

// Usecase is account usecase
type Usecase interface {
	SignUp(c ctx.Ctx, params *SignUpParams) (*Info, error)
	// Authenticate returns domain.ErrUnauthorized on unknown email or wrong password
	Authenticate(c ctx.Ctx, email, password string) (*Info, error)
	Get(c ctx.Ctx, id string) (*Info, error)
	Update(c ctx.Ctx, id string, updater *Updater) (*Info, error)
}

// Repo is account repo
type Repo interface {
	Get(c ctx.Ctx, id primitive.ObjectID) (*Account, error)
	GetByEmail(c ctx.Ctx, email string) (*Account, error)
	Insert(c ctx.Ctx, account *Account) error
	Update(c ctx.Ctx, id primitive.ObjectID, updater *Updater) error
}

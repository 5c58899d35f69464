package listing

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
)

type Status string

const (
	StatusOpen          Status = "open"
	StatusSettling      Status = "settling"
	StatusSold          Status = "sold"
	StatusExpiredUnsold Status = "expired_unsold"
)

// Normalize maps a missing status to open
func (s Status) Normalize() Status {
	if s == "" {
		return StatusOpen
	}
	return s
}

// IsClosed reports whether no further bid or settlement can happen
func (s Status) IsClosed() bool {
	s = s.Normalize()
	return s == StatusSold || s == StatusExpiredUnsold
}

type SaleKind string

const (
	SaleKindBuyNow SaleKind = "buy_now"
	SaleKindExpiry SaleKind = "expiry"
)

type Listing struct {
	Id              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description" bson:"description"`
	ImageUrl        string             `json:"imageUrl" bson:"imageUrl"`
	SellerId        string             `json:"sellerId" bson:"sellerId"`
	Seller          domain.Address     `json:"seller" bson:"seller"`
	StartingBid     domain.Amount      `json:"startingBid" bson:"startingBid"`
	CurrentBid      domain.Amount      `json:"currentBid" bson:"currentBid"`
	HighestBidderId string             `json:"highestBidderId,omitempty" bson:"highestBidderId,omitempty"`
	HighestBidder   domain.Address     `json:"highestBidder,omitempty" bson:"highestBidder,omitempty"`
	AuctionStart    time.Time          `json:"auctionStart" bson:"auctionStart"`
	AuctionEnd      time.Time          `json:"auctionEnd" bson:"auctionEnd"`
	Status          Status             `json:"status" bson:"status,omitempty"`
	TxHash          domain.TxHash      `json:"transactionHash,omitempty" bson:"transactionHash,omitempty"`
	PendingTxHash   domain.TxHash      `json:"-" bson:"pendingTxHash,omitempty"`
	PendingNonce    *uint64            `json:"-" bson:"pendingNonce,omitempty"`
	BuyerId         string             `json:"buyerId,omitempty" bson:"buyerId,omitempty"`
	Buyer           domain.Address     `json:"buyer,omitempty" bson:"buyer,omitempty"`
	SalePrice       *domain.Amount     `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	SaleKind        SaleKind           `json:"saleKind,omitempty" bson:"saleKind,omitempty"`
	ExpiryRetryAt   *time.Time         `json:"-" bson:"expiryRetryAt,omitempty"`
	ExpiryGaveUp    bool               `json:"-" bson:"expiryGaveUp,omitempty"`
	Version         int64              `json:"version" bson:"version"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// HasBids reports whether anyone has bid on the listing
func (l *Listing) HasBids() bool {
	return l.HighestBidderId != "" && l.CurrentBid.IsPositive()
}

// InWindow reports whether t is within [AuctionStart, AuctionEnd]
func (l *Listing) InWindow(t time.Time) bool {
	return !t.Before(l.AuctionStart) && !t.After(l.AuctionEnd)
}

// IsExpired reports whether the bidding window closed before t
func (l *Listing) IsExpired(t time.Time) bool {
	return t.After(l.AuctionEnd)
}

// Patch is a conditional update of a listing. Nil fields are left untouched;
// Unset lists fields to remove.
type Patch struct {
	CurrentBid      *domain.Amount  `bson:"currentBid,omitempty"`
	HighestBidderId *string         `bson:"highestBidderId,omitempty"`
	HighestBidder   *domain.Address `bson:"highestBidder,omitempty"`
	Status          *Status         `bson:"status,omitempty"`
	TxHash          *domain.TxHash  `bson:"transactionHash,omitempty"`
	PendingTxHash   *domain.TxHash  `bson:"pendingTxHash,omitempty"`
	PendingNonce    *uint64         `bson:"pendingNonce,omitempty"`
	BuyerId         *string         `bson:"buyerId,omitempty"`
	Buyer           *domain.Address `bson:"buyer,omitempty"`
	SalePrice       *domain.Amount  `bson:"salePrice,omitempty"`
	SaleKind        *SaleKind       `bson:"saleKind,omitempty"`
	ExpiryRetryAt   *time.Time      `bson:"expiryRetryAt,omitempty"`
	ExpiryGaveUp    *bool           `bson:"expiryGaveUp,omitempty"`
	UpdatedAt       time.Time       `bson:"updatedAt,omitempty"`

	Unset []string `bson:"-"`
}

type CreateParams struct {
	Title        string
	Description  string
	StartingBid  domain.Amount
	AuctionStart time.Time
	AuctionEnd   time.Time
	// Image is the raw image content, optional
	Image []byte
}

type findAllOptions struct {
	Statuses     []Status
	EndedBefore  *time.Time
	UpdatedUntil *time.Time
	ExpiryDue    *time.Time
	Sort         string
	Offset       int
	Limit        int
}

type FindAllOptionsFunc func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (findAllOptions, error) {
	res := findAllOptions{}
	for _, o := range opts {
		if err := o(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// WithStatus filters by status. StatusOpen also matches documents without status.
func WithStatus(statuses ...Status) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Statuses = statuses
		return nil
	}
}

func WithEndedBefore(t time.Time) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.EndedBefore = &t
		return nil
	}
}

func WithUpdatedUntil(t time.Time) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.UpdatedUntil = &t
		return nil
	}
}

// WithExpiryDue keeps listings whose expiry settlement is neither given up
// nor held back past t
func WithExpiryDue(t time.Time) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.ExpiryDue = &t
		return nil
	}
}

// WithSort orders results by a field, a leading "-" sorts descending
func WithSort(sort string) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		opts.Sort = sort
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(opts *findAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		opts.Offset = offset
		opts.Limit = limit
		return nil
	}
}

// Repo is the listing store
type Repo interface {
	FindOne(c ctx.Ctx, id primitive.ObjectID) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	// Create assigns Id and Version to l
	Create(c ctx.Ctx, l *Listing) error
	// CompareAndSwap applies patch only when the stored version equals version
	// and, if non-empty, the stored status is one of statuses. It returns the
	// updated listing, domain.ErrNotFound when the listing does not exist and
	// domain.ErrConflict when the condition does not hold.
	CompareAndSwap(c ctx.Ctx, id primitive.ObjectID, version int64, statuses []Status, patch *Patch) (*Listing, error)
}

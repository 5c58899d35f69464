package settlement

import (
	"time"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

type Kind string

const (
	KindBuyNow Kind = "buy_now"
	KindExpiry Kind = "expiry"
)

// Attempt records one try to move funds for a listing
type Attempt struct {
	Id        string         `json:"id" bson:"_id"`
	ListingId string         `json:"listingId" bson:"listingId"`
	Kind      Kind           `json:"kind" bson:"kind"`
	From      domain.Address `json:"from" bson:"from"`
	To        domain.Address `json:"to" bson:"to"`
	Amount    domain.Amount  `json:"amount" bson:"amount"`
	TxHash    domain.TxHash  `json:"txHash,omitempty" bson:"txHash,omitempty"`
	Status    Status         `json:"status" bson:"status"`
	Reason    string         `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type Result struct {
	TxHash *domain.TxHash `bson:"txHash,omitempty"`
	Status Status         `bson:"status"`
	Reason *string        `bson:"reason,omitempty"`
}

type Repo interface {
	Insert(c ctx.Ctx, a *Attempt) error
	Finish(c ctx.Ctx, id string, result *Result) error
	// FindByListing returns attempts newest first
	FindByListing(c ctx.Ctx, listingId string, limit int) ([]*Attempt, error)
	CountFailed(c ctx.Ctx, listingId string, kind Kind) (int, error)
}

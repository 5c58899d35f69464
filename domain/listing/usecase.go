package listing

import (
	"time"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain/ledger"
	"github.com/x-xyz/swiftbid/domain/session"
	"github.com/x-xyz/swiftbid/domain/settlement"
)

// SettleResult is the outcome of a settlement path. AlreadySettled is set
// when the listing was closed before the call and nothing happened.
type SettleResult struct {
	Listing        *Listing `json:"listing"`
	AlreadySettled bool     `json:"alreadySettled"`
}

// Usecase is the auction lifecycle controller
type Usecase interface {
	Create(c ctx.Ctx, sess session.Session, params *CreateParams) (*Listing, error)
	Get(c ctx.Ctx, id string) (*Listing, error)
	// List returns every listing, active ones first
	List(c ctx.Ctx) ([]*Listing, error)
	Settlements(c ctx.Ctx, id string) ([]*settlement.Attempt, error)

	PlaceBid(c ctx.Ctx, sess session.Session, id string, amount string) (*Listing, error)
	BuyNow(c ctx.Ctx, sess session.Session, id string) (*SettleResult, error)
	// SettleExpired runs the auction-expiry path with the highest bidder's session
	SettleExpired(c ctx.Ctx, sess session.Session, id string) (*SettleResult, error)
	// CloseUnsold moves an expired listing without bids to ExpiredUnsold
	CloseUnsold(c ctx.Ctx, id string) (*SettleResult, error)
	// FindExpired lists open listings whose window closed before now, oldest
	// first, skipping listings deferred past now or given up on
	FindExpired(c ctx.Ctx, now time.Time, limit int) ([]*Listing, error)
	// DeferExpiry hides an open listing from FindExpired until retryAt
	DeferExpiry(c ctx.Ctx, id string, retryAt time.Time) error
	// AbandonExpiry hides an open listing from FindExpired for good
	AbandonExpiry(c ctx.Ctx, id string) error
	// FindStaleSettling lists settling listings not updated since before
	FindStaleSettling(c ctx.Ctx, before time.Time, limit int) ([]*Listing, error)
	ReconcileSettling(c ctx.Ctx, client ledger.Client, id string) (*Listing, error)
}

type EventType string

const (
	EventBidPlaced        EventType = "bid_placed"
	EventSold             EventType = "sold"
	EventExpiredUnsold    EventType = "expired_unsold"
	EventSettlementFailed EventType = "settlement_failed"
)

type Event struct {
	Type    EventType `json:"type"`
	Listing *Listing  `json:"listing"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier publishes listing events. Publishing is best effort.
type Notifier interface {
	Publish(c ctx.Ctx, ev *Event) error
}

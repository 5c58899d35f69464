package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/base/metrics"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/listing"
	"github.com/x-xyz/swiftbid/domain/session"
	"github.com/x-xyz/swiftbid/domain/settlement"
)

const (
	imageFolder      = "listings"
	settlementsLimit = 50
)

var (
	timeNow = time.Now
	met     = metrics.New("listing")

	// fields describing a sale in progress, dropped when a claim is released
	saleFields = []string{"pendingTxHash", "pendingNonce", "buyerId", "buyer", "salePrice", "saleKind"}
)

type Config struct {
	// BuyNowMultiplier is applied to max(currentBid, startingBid)
	BuyNowMultiplier decimal.Decimal
	// MaxBidAttempts bounds re-validation after losing a bid race
	MaxBidAttempts int
	// SettlementTimeout bounds one settlement, detached from the caller
	SettlementTimeout time.Duration
	// AbandonAfter is how long a broadcast transfer may stay unknown to the
	// ledger before the reconciler releases the listing
	AbandonAfter time.Duration
}

func (cfg Config) withDefaults() Config {
	if !cfg.BuyNowMultiplier.IsPositive() {
		cfg.BuyNowMultiplier = decimal.RequireFromString("1.5")
	}
	if cfg.MaxBidAttempts <= 0 {
		cfg.MaxBidAttempts = 3
	}
	if cfg.SettlementTimeout <= 0 {
		cfg.SettlementTimeout = 90 * time.Second
	}
	if cfg.AbandonAfter <= 0 {
		cfg.AbandonAfter = 30 * time.Minute
	}
	return cfg
}

type impl struct {
	repo        listing.Repo
	settlements settlement.Repo
	images      domain.ImageUseCase
	notifier    listing.Notifier
	cfg         Config
}

func New(
	repo listing.Repo,
	settlements settlement.Repo,
	images domain.ImageUseCase,
	notifier listing.Notifier,
	cfg Config,
) listing.Usecase {
	return &impl{
		repo:        repo,
		settlements: settlements,
		images:      images,
		notifier:    notifier,
		cfg:         cfg.withDefaults(),
	}
}

func parseId(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

func statusPtr(s listing.Status) *listing.Status {
	return &s
}

func (im *impl) Create(c ctx.Ctx, sess session.Session, params *listing.CreateParams) (*listing.Listing, error) {
	identity := sess.Identity()
	now := timeNow()

	if strings.TrimSpace(params.Title) == "" ||
		!params.StartingBid.IsPositive() ||
		!params.AuctionStart.Before(params.AuctionEnd) ||
		!params.AuctionEnd.After(now) {
		return nil, domain.ErrBadParamInput
	}

	l := &listing.Listing{
		Title:        strings.TrimSpace(params.Title),
		Description:  params.Description,
		SellerId:     identity.UserId,
		Seller:       identity.Address.ToLower(),
		StartingBid:  params.StartingBid,
		CurrentBid:   domain.ZeroAmount,
		AuctionStart: params.AuctionStart,
		AuctionEnd:   params.AuctionEnd,
		Status:       listing.StatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if len(params.Image) > 0 {
		url, err := im.images.Upload(c, imageFolder, params.Image)
		if err != nil {
			c.WithField("err", err).Error("images.Upload failed")
			return nil, err
		}
		l.ImageUrl = url
	}

	if err := im.repo.Create(c, l); err != nil {
		c.WithField("err", err).Error("repo.Create failed")
		return nil, err
	}
	return l, nil
}

func (im *impl) Get(c ctx.Ctx, id string) (*listing.Listing, error) {
	oid, err := parseId(id)
	if err != nil {
		return nil, err
	}
	l, err := im.repo.FindOne(c, oid)
	if err != nil {
		return nil, err
	}
	l.Status = l.Status.Normalize()
	return l, nil
}

func statusRank(s listing.Status) int {
	if s.IsClosed() {
		return 1
	}
	return 0
}

func (im *impl) List(c ctx.Ctx) ([]*listing.Listing, error) {
	ls, err := im.repo.FindAll(c)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	for _, l := range ls {
		l.Status = l.Status.Normalize()
	}
	sort.SliceStable(ls, func(i, j int) bool {
		return statusRank(ls[i].Status) < statusRank(ls[j].Status)
	})
	return ls, nil
}

func (im *impl) Settlements(c ctx.Ctx, id string) ([]*settlement.Attempt, error) {
	if _, err := parseId(id); err != nil {
		return nil, err
	}
	return im.settlements.FindByListing(c, id, settlementsLimit)
}

func (im *impl) PlaceBid(c ctx.Ctx, sess session.Session, id string, amount string) (*listing.Listing, error) {
	defer met.BumpTime("time", "func", "placeBid").End()

	oid, err := parseId(id)
	if err != nil {
		return nil, err
	}
	bid, err := domain.NewAmountFromString(amount)
	if err != nil {
		return nil, domain.ErrBadParamInput
	}
	if !bid.IsPositive() {
		return nil, domain.ErrInvalidBid
	}

	identity := sess.Identity()
	c = ctx.WithValues(c, map[string]interface{}{"listingId": id, "bidder": identity.UserId})

	funded := false
	for attempt := 0; attempt < im.cfg.MaxBidAttempts; attempt++ {
		l, err := im.repo.FindOne(c, oid)
		if err != nil {
			return nil, err
		}
		if err := validateBid(l, identity.UserId, bid, timeNow()); err != nil {
			return nil, err
		}
		if !funded {
			if fundable, err := sess.Ledger().CheckFundable(c, identity.Address); err != nil {
				c.WithField("err", err).Error("ledger.CheckFundable failed")
				return nil, err
			} else if !fundable {
				return nil, domain.ErrAccountNotActivated
			}
			funded = true
		}

		updated, err := im.repo.CompareAndSwap(c, oid, l.Version, []listing.Status{listing.StatusOpen}, &listing.Patch{
			CurrentBid:      &bid,
			HighestBidderId: &identity.UserId,
			HighestBidder:   &identity.Address,
			UpdatedAt:       timeNow(),
		})
		if err == domain.ErrConflict {
			met.BumpSum("bid.conflict", 1)
			c.WithField("attempt", attempt).Info("bid lost a race, re-validating")
			continue
		} else if err != nil {
			c.WithField("err", err).Error("repo.CompareAndSwap failed")
			return nil, err
		}

		im.notify(c, listing.EventBidPlaced, updated, "")
		return updated, nil
	}
	return nil, domain.ErrConflict
}

func validateBid(l *listing.Listing, bidderId string, bid domain.Amount, now time.Time) error {
	if l.Status.Normalize() != listing.StatusOpen || !l.InWindow(now) {
		return domain.ErrAuctionClosed
	}
	if l.SellerId == bidderId {
		return domain.ErrInvalidBid
	}
	if !bid.GreaterThan(l.CurrentBid.Decimal) || bid.LessThan(l.StartingBid.Decimal) {
		return domain.ErrInvalidBid
	}
	return nil
}

// BuyNowPrice is max(currentBid, startingBid) times multiplier
func BuyNowPrice(l *listing.Listing, multiplier decimal.Decimal) domain.Amount {
	return l.CurrentBid.Max(l.StartingBid).Mul(multiplier)
}

func (im *impl) BuyNow(c ctx.Ctx, sess session.Session, id string) (*listing.SettleResult, error) {
	defer met.BumpTime("time", "func", "buyNow").End()

	oid, err := parseId(id)
	if err != nil {
		return nil, err
	}
	identity := sess.Identity()
	c = ctx.WithValues(c, map[string]interface{}{"listingId": id, "buyer": identity.UserId})

	l, err := im.repo.FindOne(c, oid)
	if err != nil {
		return nil, err
	}
	switch l.Status.Normalize() {
	case listing.StatusSold:
		return &listing.SettleResult{Listing: l, AlreadySettled: true}, nil
	case listing.StatusSettling:
		return nil, domain.ErrConflict
	case listing.StatusExpiredUnsold:
		return nil, domain.ErrAuctionClosed
	}
	if !l.InWindow(timeNow()) {
		return nil, domain.ErrAuctionClosed
	}
	if l.SellerId == identity.UserId {
		return nil, domain.ErrInvalidBid
	}

	if fundable, err := sess.Ledger().CheckFundable(c, identity.Address); err != nil {
		c.WithField("err", err).Error("ledger.CheckFundable failed")
		return nil, domain.NewSettlementError(err)
	} else if !fundable {
		return nil, domain.NewSettlementError(domain.ErrAccountNotActivated)
	}

	return im.settle(c, sess, l, listing.SaleKindBuyNow, BuyNowPrice(l, im.cfg.BuyNowMultiplier))
}

func (im *impl) SettleExpired(c ctx.Ctx, sess session.Session, id string) (*listing.SettleResult, error) {
	defer met.BumpTime("time", "func", "settleExpired").End()

	oid, err := parseId(id)
	if err != nil {
		return nil, err
	}
	c = ctx.WithValue(c, "listingId", id)

	l, err := im.repo.FindOne(c, oid)
	if err != nil {
		return nil, err
	}
	if l.Status.Normalize() != listing.StatusOpen {
		return &listing.SettleResult{Listing: l, AlreadySettled: true}, nil
	}
	if !l.IsExpired(timeNow()) {
		return nil, domain.ErrAuctionNotEnded
	}
	if !l.HasBids() {
		return im.closeUnsold(c, l)
	}
	if sess == nil || sess.Identity().UserId != l.HighestBidderId {
		return nil, domain.ErrUnauthorized
	}

	return im.settle(c, sess, l, listing.SaleKindExpiry, l.CurrentBid)
}

func (im *impl) CloseUnsold(c ctx.Ctx, id string) (*listing.SettleResult, error) {
	oid, err := parseId(id)
	if err != nil {
		return nil, err
	}
	c = ctx.WithValue(c, "listingId", id)

	l, err := im.repo.FindOne(c, oid)
	if err != nil {
		return nil, err
	}
	if l.Status.Normalize() != listing.StatusOpen {
		return &listing.SettleResult{Listing: l, AlreadySettled: true}, nil
	}
	if !l.IsExpired(timeNow()) {
		return nil, domain.ErrAuctionNotEnded
	}
	if l.HasBids() {
		return nil, domain.ErrConflict
	}
	return im.closeUnsold(c, l)
}

func (im *impl) closeUnsold(c ctx.Ctx, l *listing.Listing) (*listing.SettleResult, error) {
	updated, err := im.repo.CompareAndSwap(c, l.Id, l.Version, []listing.Status{listing.StatusOpen}, &listing.Patch{
		Status:    statusPtr(listing.StatusExpiredUnsold),
		UpdatedAt: timeNow(),
	})
	if err == domain.ErrConflict {
		return im.afterLostClaim(c, l.Id)
	} else if err != nil {
		c.WithField("err", err).Error("repo.CompareAndSwap failed")
		return nil, err
	}

	met.BumpSum("expiredUnsold", 1)
	im.notify(c, listing.EventExpiredUnsold, updated, "")
	return &listing.SettleResult{Listing: updated}, nil
}

// afterLostClaim reports a no-op when another path already closed the listing
func (im *impl) afterLostClaim(c ctx.Ctx, id primitive.ObjectID) (*listing.SettleResult, error) {
	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if l.Status.IsClosed() {
		return &listing.SettleResult{Listing: l, AlreadySettled: true}, nil
	}
	return nil, domain.ErrConflict
}

func (im *impl) FindExpired(c ctx.Ctx, now time.Time, limit int) ([]*listing.Listing, error) {
	return im.repo.FindAll(c,
		listing.WithStatus(listing.StatusOpen),
		listing.WithEndedBefore(now),
		listing.WithExpiryDue(now),
		listing.WithSort("auctionEnd"),
		listing.WithPagination(0, limit),
	)
}

func (im *impl) DeferExpiry(c ctx.Ctx, id string, retryAt time.Time) error {
	return im.patchExpiry(c, id, &listing.Patch{ExpiryRetryAt: &retryAt})
}

func (im *impl) AbandonExpiry(c ctx.Ctx, id string) error {
	gaveUp := true
	if err := im.patchExpiry(c, id, &listing.Patch{ExpiryGaveUp: &gaveUp}); err != nil {
		return err
	}
	met.BumpSum("expiryAbandoned", 1)
	return nil
}

// patchExpiry is a no-op once the listing left open
func (im *impl) patchExpiry(c ctx.Ctx, id string, patch *listing.Patch) error {
	oid, err := parseId(id)
	if err != nil {
		return err
	}
	c = ctx.WithValue(c, "listingId", id)

	for i := 0; i < im.cfg.MaxBidAttempts; i++ {
		l, err := im.repo.FindOne(c, oid)
		if err != nil {
			return err
		}
		if l.Status.Normalize() != listing.StatusOpen {
			return nil
		}
		patch.UpdatedAt = timeNow()
		if _, err := im.repo.CompareAndSwap(c, l.Id, l.Version, []listing.Status{listing.StatusOpen}, patch); err == nil {
			return nil
		} else if err != domain.ErrConflict {
			c.WithField("err", err).Error("repo.CompareAndSwap failed")
			return err
		}
	}
	return domain.ErrConflict
}

func (im *impl) FindStaleSettling(c ctx.Ctx, before time.Time, limit int) ([]*listing.Listing, error) {
	return im.repo.FindAll(c,
		listing.WithStatus(listing.StatusSettling),
		listing.WithUpdatedUntil(before),
		listing.WithPagination(0, limit),
	)
}

func (im *impl) notify(c ctx.Ctx, t listing.EventType, l *listing.Listing, reason string) {
	if im.notifier == nil {
		return
	}
	if err := im.notifier.Publish(c, &listing.Event{Type: t, Listing: l, Reason: reason, At: timeNow()}); err != nil {
		c.WithFields(log.Fields{"err": err, "event": t}).Warn("notifier.Publish failed")
	}
}

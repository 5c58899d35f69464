package usecase

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/ledger"
	"github.com/x-xyz/swiftbid/domain/listing"
	"github.com/x-xyz/swiftbid/domain/session"
	"github.com/x-xyz/swiftbid/domain/settlement"
)

var (
	errNoTransfer = errors.New("settlement abandoned before broadcast")
	errDropped    = errors.New("transfer dropped, its nonce was used by another transaction")
)

// settle claims l for the session's identity and moves price from buyer to
// seller. The listing ends up sold, back to open when no funds moved, or
// still settling with a pending hash when finality is unknown.
func (im *impl) settle(c ctx.Ctx, sess session.Session, l *listing.Listing, kind listing.SaleKind, price domain.Amount) (*listing.SettleResult, error) {
	buyer := sess.Identity()

	claimed, err := im.repo.CompareAndSwap(c, l.Id, l.Version, []listing.Status{listing.StatusOpen}, &listing.Patch{
		Status:    statusPtr(listing.StatusSettling),
		BuyerId:   &buyer.UserId,
		Buyer:     &buyer.Address,
		SalePrice: &price,
		SaleKind:  &kind,
		UpdatedAt: timeNow(),
	})
	if err == domain.ErrConflict {
		return im.afterLostClaim(c, l.Id)
	} else if err != nil {
		c.WithField("err", err).Error("repo.CompareAndSwap failed")
		return nil, err
	}

	// the transfer must not be cut short by the caller going away
	dc, cancel := ctx.Detach(c, im.cfg.SettlementTimeout)
	defer cancel()
	dc = ctx.WithValues(dc, map[string]interface{}{"listingId": l.Id.Hex(), "kind": kind})

	attempt := im.startAttempt(dc, claimed, kind, buyer.Address, price)
	client := sess.Ledger()

	unsigned, err := client.BuildTransfer(dc, buyer.Address, claimed.Seller, price.Decimal)
	if err != nil {
		dc.WithField("err", err).Warn("ledger.BuildTransfer failed")
		return nil, im.abort(dc, claimed.Id, attempt, err)
	}
	signed, err := sess.Sign(dc, unsigned)
	if err != nil {
		dc.WithField("err", err).Error("session.Sign failed")
		return nil, im.abort(dc, claimed.Id, attempt, err)
	}

	// record the hash before broadcasting so the reconciler can always find the transfer
	claimed, err = im.repo.CompareAndSwap(dc, claimed.Id, claimed.Version, []listing.Status{listing.StatusSettling}, &listing.Patch{
		PendingTxHash: &signed.Hash,
		PendingNonce:  &signed.Nonce,
		UpdatedAt:     timeNow(),
	})
	if err != nil {
		dc.WithField("err", err).Error("repo.CompareAndSwap failed")
		return nil, im.abort(dc, l.Id, attempt, err)
	}

	res, err := client.Submit(dc, signed)
	if err != nil {
		dc.WithFields(log.Fields{"err": err, "txHash": signed.Hash}).Error("ledger.Submit failed")
		im.finishAttempt(dc, attempt, settlement.StatusPending, signed.Hash, err)
		return nil, domain.NewSettlementError(err)
	}

	switch res.Status {
	case ledger.TransferSucceeded:
		sold, err := im.markSold(dc, claimed, res.Hash)
		if err != nil {
			// funds moved; the reconciler finishes via pendingTxHash
			dc.WithFields(log.Fields{"err": err, "txHash": res.Hash}).Error("markSold failed")
			im.finishAttempt(dc, attempt, settlement.StatusSucceeded, res.Hash, nil)
			return nil, err
		}
		im.finishAttempt(dc, attempt, settlement.StatusSucceeded, res.Hash, nil)
		im.notify(dc, listing.EventSold, sold, "")
		return &listing.SettleResult{Listing: sold}, nil

	case ledger.TransferFailed:
		reason := ledger.ErrRejected
		if res.Reason != "" && !strings.Contains(res.Reason, ledger.ErrRejected.Error()) {
			reason = xerrors.Errorf("%w: %s", ledger.ErrRejected, res.Reason)
		}
		dc.WithFields(log.Fields{"txHash": res.Hash, "reason": res.Reason}).Warn("transfer rejected")
		return nil, im.abort(dc, claimed.Id, attempt, reason)

	default:
		dc.WithField("txHash", res.Hash).Warn("transfer finality unknown, left settling")
		im.finishAttempt(dc, attempt, settlement.StatusPending, res.Hash, ledger.ErrTimeout)
		return nil, domain.NewSettlementError(ledger.ErrTimeout)
	}
}

func (im *impl) markSold(c ctx.Ctx, l *listing.Listing, hash domain.TxHash) (*listing.Listing, error) {
	return im.repo.CompareAndSwap(c, l.Id, l.Version, []listing.Status{listing.StatusSettling}, &listing.Patch{
		Status:    statusPtr(listing.StatusSold),
		TxHash:    &hash,
		UpdatedAt: timeNow(),
		Unset:     []string{"pendingTxHash", "pendingNonce"},
	})
}

// abort releases the claim on a listing when no funds moved and returns the
// settlement error for cause
func (im *impl) abort(c ctx.Ctx, id primitive.ObjectID, attempt *settlement.Attempt, cause error) error {
	var hash domain.TxHash
	if attempt != nil {
		hash = attempt.TxHash
	}
	im.finishAttempt(c, attempt, settlement.StatusFailed, hash, cause)
	if l, err := im.release(c, id); err != nil {
		c.WithField("err", err).Error("release failed")
	} else if l != nil {
		im.notify(c, listing.EventSettlementFailed, l, cause.Error())
	}
	return domain.NewSettlementError(cause)
}

// release moves a settling listing back to open and drops the sale fields. It
// returns nil without error when the listing is no longer settling.
func (im *impl) release(c ctx.Ctx, id primitive.ObjectID) (*listing.Listing, error) {
	l, err := im.repo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if l.Status.Normalize() != listing.StatusSettling {
		return nil, nil
	}
	return im.repo.CompareAndSwap(c, id, l.Version, []listing.Status{listing.StatusSettling}, &listing.Patch{
		Status:    statusPtr(listing.StatusOpen),
		UpdatedAt: timeNow(),
		Unset:     saleFields,
	})
}

func (im *impl) startAttempt(c ctx.Ctx, l *listing.Listing, kind listing.SaleKind, from domain.Address, amount domain.Amount) *settlement.Attempt {
	now := timeNow()
	a := &settlement.Attempt{
		Id:        uuid.NewString(),
		ListingId: l.Id.Hex(),
		Kind:      settlement.Kind(kind),
		From:      from,
		To:        l.Seller,
		Amount:    amount,
		Status:    settlement.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := im.settlements.Insert(c, a); err != nil {
		c.WithField("err", err).Warn("settlements.Insert failed")
		return nil
	}
	return a
}

func (im *impl) finishAttempt(c ctx.Ctx, a *settlement.Attempt, status settlement.Status, hash domain.TxHash, cause error) {
	if a == nil {
		return
	}
	res := &settlement.Result{Status: status}
	if !hash.IsEmpty() {
		res.TxHash = &hash
	}
	if cause != nil {
		reason := cause.Error()
		res.Reason = &reason
	}
	if err := im.settlements.Finish(c, a.Id, res); err != nil {
		c.WithFields(log.Fields{"err": err, "attemptId": a.Id}).Warn("settlements.Finish failed")
	}
}

func (im *impl) ReconcileSettling(c ctx.Ctx, client ledger.Client, id string) (*listing.Listing, error) {
	oid, err := parseId(id)
	if err != nil {
		return nil, err
	}
	c = ctx.WithValue(c, "listingId", id)

	l, err := im.repo.FindOne(c, oid)
	if err != nil {
		return nil, err
	}
	if l.Status.Normalize() != listing.StatusSettling {
		return l, nil
	}

	if l.PendingTxHash.IsEmpty() {
		c.Info("no transfer recorded, releasing listing")
		released, err := im.release(c, oid)
		if err != nil {
			return nil, err
		}
		im.finishLatest(c, id, settlement.StatusFailed, "", errNoTransfer)
		return orElse(released, l), nil
	}

	status, err := client.TransferStatus(c, l.PendingTxHash)
	if err != nil {
		c.WithField("err", err).Error("ledger.TransferStatus failed")
		return nil, err
	}
	if status == ledger.TransferPending {
		if timeNow().Sub(l.UpdatedAt) < im.cfg.AbandonAfter {
			return l, nil
		}
		if status, err = im.droppedStatus(c, client, l); err != nil {
			return nil, err
		}
	}

	switch status {
	case ledger.TransferSucceeded:
		sold, err := im.markSold(c, l, l.PendingTxHash)
		if err != nil {
			c.WithField("err", err).Error("markSold failed")
			return nil, err
		}
		im.finishLatest(c, id, settlement.StatusSucceeded, l.PendingTxHash, nil)
		im.notify(c, listing.EventSold, sold, "")
		return sold, nil

	case ledger.TransferFailed:
		return im.reconcileRelease(c, l, ledger.ErrRejected)

	case transferDropped:
		c.WithField("txHash", l.PendingTxHash).Warn("transfer dropped, releasing listing")
		return im.reconcileRelease(c, l, errDropped)

	default:
		c.WithField("txHash", l.PendingTxHash).Warn("transfer unconfirmed past abandon deadline, kept settling")
		return l, nil
	}
}

// transferDropped marks a transfer that can never be included
const transferDropped ledger.TransferStatus = "dropped"

// droppedStatus tells a transfer still waiting in a mempool from one that can
// never be included. Once the sender's confirmed nonce moved past the
// transfer's nonce without a receipt for its hash, the nonce went to another
// transaction.
func (im *impl) droppedStatus(c ctx.Ctx, client ledger.Client, l *listing.Listing) (ledger.TransferStatus, error) {
	if l.PendingNonce == nil {
		return ledger.TransferPending, nil
	}
	confirmed, err := client.ConfirmedNonce(c, l.Buyer)
	if err != nil {
		c.WithField("err", err).Error("ledger.ConfirmedNonce failed")
		return "", err
	}
	if confirmed <= *l.PendingNonce {
		return ledger.TransferPending, nil
	}
	// the transfer itself may have used the nonce since the first look
	status, err := client.TransferStatus(c, l.PendingTxHash)
	if err != nil {
		c.WithField("err", err).Error("ledger.TransferStatus failed")
		return "", err
	}
	if status == ledger.TransferPending {
		return transferDropped, nil
	}
	return status, nil
}

func (im *impl) reconcileRelease(c ctx.Ctx, l *listing.Listing, cause error) (*listing.Listing, error) {
	released, err := im.release(c, l.Id)
	if err != nil {
		c.WithField("err", err).Error("release failed")
		return nil, err
	}
	im.finishLatest(c, l.Id.Hex(), settlement.StatusFailed, l.PendingTxHash, cause)
	if released != nil {
		im.notify(c, listing.EventSettlementFailed, released, cause.Error())
	}
	return orElse(released, l), nil
}

// finishLatest closes the newest attempt of a listing when it is still pending
func (im *impl) finishLatest(c ctx.Ctx, listingId string, status settlement.Status, hash domain.TxHash, cause error) {
	attempts, err := im.settlements.FindByListing(c, listingId, 1)
	if err != nil {
		c.WithField("err", err).Warn("settlements.FindByListing failed")
		return
	}
	if len(attempts) == 0 || attempts[0].Status != settlement.StatusPending {
		return
	}
	im.finishAttempt(c, attempts[0], status, hash, cause)
}

func orElse(l, fallback *listing.Listing) *listing.Listing {
	if l != nil {
		return l
	}
	return fallback
}

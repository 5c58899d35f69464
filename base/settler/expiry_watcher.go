package settler

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/goroutine"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/base/metrics"
	"github.com/x-xyz/swiftbid/domain/listing"
	"github.com/x-xyz/swiftbid/domain/session"
	"github.com/x-xyz/swiftbid/domain/settlement"
)

var (
	met     metrics.Service
	metOnce sync.Once

	timeNow = time.Now
)

func initMetrics() {
	metOnce.Do(func() {
		met = metrics.New("settler")
	})
}

type ExpiryWatcherCfg struct {
	Listings    listing.Usecase
	Opener      session.Opener
	Settlements settlement.Repo
	Interval    time.Duration
	Batch       int
	Workers     int
	// RetryAfter is the pause after a failed expiry settlement before the next try
	RetryAfter  time.Duration
	MaxAttempts int
}

// ExpiryWatcher settles listings whose bidding window has closed
type ExpiryWatcher struct {
	listings    listing.Usecase
	opener      session.Opener
	settlements settlement.Repo
	interval    time.Duration
	batch       int
	retryAfter  time.Duration
	maxAttempts int
	pool        *goroutines.Pool
	stoppedCh   chan struct{}
}

func NewExpiryWatcher(cfg *ExpiryWatcherCfg) *ExpiryWatcher {
	initMetrics()
	w := &ExpiryWatcher{
		listings:    cfg.Listings,
		opener:      cfg.Opener,
		settlements: cfg.Settlements,
		interval:    cfg.Interval,
		batch:       cfg.Batch,
		retryAfter:  cfg.RetryAfter,
		maxAttempts: cfg.MaxAttempts,
		stoppedCh:   make(chan struct{}),
	}
	if w.interval <= 0 {
		w.interval = time.Second
	}
	if w.batch <= 0 {
		w.batch = 50
	}
	if w.maxAttempts <= 0 {
		w.maxAttempts = 3
	}
	if w.retryAfter <= 0 {
		w.retryAfter = time.Minute
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	w.pool = goroutines.NewPool(workers)
	return w
}

func (w *ExpiryWatcher) Start(c ctx.Ctx) {
	go w.loop(c)
}

// Wait blocks until the watcher stopped
func (w *ExpiryWatcher) Wait() {
	<-w.stoppedCh
}

func (w *ExpiryWatcher) loop(c ctx.Ctx) {
	defer close(w.stoppedCh)
	defer w.pool.Release()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.Done():
			c.Info("expiry watcher stopped")
			return
		case <-ticker.C:
			if ev := <-goroutine.RecoverableGo(func() { w.RunOnce(c) }, goroutine.WithName("expiryWatcher"), goroutine.WithLogger(c.Logger)); ev != nil {
				met.BumpSum("expiry.panic", 1)
			}
		}
	}
}

// RunOnce settles one batch of expired listings and returns how many were handled
func (w *ExpiryWatcher) RunOnce(c ctx.Ctx) int {
	ls, err := w.listings.FindExpired(c, timeNow(), w.batch)
	if err != nil {
		c.WithField("err", err).Error("listings.FindExpired failed")
		return 0
	}
	if len(ls) == 0 {
		return 0
	}
	met.BumpAvg("expiry.batch", float64(len(ls)))

	wg := sync.WaitGroup{}
	for _, l := range ls {
		l := l
		wg.Add(1)
		if err := w.pool.Schedule(func() {
			defer wg.Done()
			<-goroutine.RecoverableGo(func() { w.settle(c, l) }, goroutine.WithName("settleExpired"), goroutine.WithLogger(c.Logger))
		}); err != nil {
			wg.Done()
			c.WithField("err", err).Error("pool.Schedule failed")
		}
	}
	wg.Wait()
	return len(ls)
}

func (w *ExpiryWatcher) settle(c ctx.Ctx, l *listing.Listing) {
	id := l.Id.Hex()
	c = ctx.WithValue(c, "listingId", id)

	if !l.HasBids() {
		if _, err := w.listings.CloseUnsold(c, id); err != nil {
			c.WithField("err", err).Error("listings.CloseUnsold failed")
			met.BumpSum("expiry.err", 1, "path", "unsold")
			w.backoff(c, id)
		}
		return
	}

	sess, err := w.opener.Open(c, l.HighestBidderId)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "bidder": l.HighestBidderId}).Error("opener.Open failed")
		met.BumpSum("expiry.err", 1, "path", "session")
		w.recordFailure(c, l, err)
		w.backoff(c, id)
		return
	}
	defer sess.Close()

	res, err := w.listings.SettleExpired(c, sess, id)
	if err != nil {
		c.WithField("err", err).Warn("listings.SettleExpired failed")
		met.BumpSum("expiry.err", 1, "path", "settle")
		w.backoff(c, id)
		return
	}
	if !res.AlreadySettled {
		met.BumpSum("expiry.settled", 1, "status", string(res.Listing.Status))
	}
}

// recordFailure keeps a failed attempt for an expiry that never reached the ledger
func (w *ExpiryWatcher) recordFailure(c ctx.Ctx, l *listing.Listing, cause error) {
	now := timeNow()
	a := &settlement.Attempt{
		Id:        uuid.NewString(),
		ListingId: l.Id.Hex(),
		Kind:      settlement.KindExpiry,
		To:        l.Seller,
		Amount:    l.CurrentBid,
		Status:    settlement.StatusFailed,
		Reason:    cause.Error(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := w.settlements.Insert(c, a); err != nil {
		c.WithField("err", err).Warn("settlements.Insert failed")
	}
}

// backoff hides a failed listing from the next batches, for good once its
// failed attempts reach maxAttempts
func (w *ExpiryWatcher) backoff(c ctx.Ctx, listingId string) {
	failed, err := w.settlements.CountFailed(c, listingId, settlement.KindExpiry)
	if err != nil {
		c.WithField("err", err).Error("settlements.CountFailed failed")
	}
	if failed >= w.maxAttempts {
		c.WithField("failed", failed).Warn("expiry settlement attempts exhausted")
		if err := w.listings.AbandonExpiry(c, listingId); err != nil {
			c.WithField("err", err).Error("listings.AbandonExpiry failed")
		}
		met.BumpSum("expiry.abandoned", 1)
		return
	}
	if err := w.listings.DeferExpiry(c, listingId, timeNow().Add(w.retryAfter)); err != nil {
		c.WithField("err", err).Error("listings.DeferExpiry failed")
	}
}

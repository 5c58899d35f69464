package settler

import (
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/goroutine"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain/keys"
	"github.com/x-xyz/swiftbid/domain/ledger"
	"github.com/x-xyz/swiftbid/domain/listing"
	"github.com/x-xyz/swiftbid/service/redis"
)

type ReconcilerCfg struct {
	Listings  listing.Usecase
	Connector ledger.Connector
	Redis     redis.Service
	// Schedule is a cron spec, "@every 1m" by default
	Schedule string
	// StaleAfter is how long a listing must sit in settling before it is picked up
	StaleAfter time.Duration
	Batch      int
	LockTTL    time.Duration
}

// Reconciler resolves listings left in settling by a ledger timeout or a crash
type Reconciler struct {
	listings   listing.Usecase
	connector  ledger.Connector
	redis      redis.Service
	schedule   string
	staleAfter time.Duration
	batch      int
	lockTTL    time.Duration
	owner      []byte
	cron       *cron.Cron
}

func NewReconciler(cfg *ReconcilerCfg) *Reconciler {
	initMetrics()
	r := &Reconciler{
		listings:   cfg.Listings,
		connector:  cfg.Connector,
		redis:      cfg.Redis,
		schedule:   cfg.Schedule,
		staleAfter: cfg.StaleAfter,
		batch:      cfg.Batch,
		lockTTL:    cfg.LockTTL,
		cron:       cron.New(),
	}
	if r.schedule == "" {
		r.schedule = "@every 1m"
	}
	if r.staleAfter <= 0 {
		r.staleAfter = 2 * time.Minute
	}
	if r.batch <= 0 {
		r.batch = 50
	}
	if r.lockTTL <= 0 {
		r.lockTTL = 5 * time.Minute
	}
	// unique per process so a restarted pod never releases its predecessor's lock
	host, _ := os.Hostname()
	r.owner = []byte(host + "-" + uuid.NewString())
	return r
}

func (r *Reconciler) Start(c ctx.Ctx) error {
	if _, err := r.cron.AddFunc(r.schedule, func() {
		if ev := <-goroutine.RecoverableGo(func() { r.RunOnce(c) }, goroutine.WithName("reconciler"), goroutine.WithLogger(c.Logger)); ev != nil {
			met.BumpSum("reconcile.panic", 1)
		}
	}); err != nil {
		c.WithFields(log.Fields{"err": err, "schedule": r.schedule}).Error("cron.AddFunc failed")
		return err
	}
	r.cron.Start()
	return nil
}

// Stop waits for a running job to finish
func (r *Reconciler) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce reconciles one batch of stale settling listings. Only one replica
// runs at a time; the others return without work.
func (r *Reconciler) RunOnce(c ctx.Ctx) (int, error) {
	lock := keys.RedisKey(keys.PfxReconcileLock)
	if err := r.redis.SetNX(c, lock, r.owner, r.lockTTL); err != nil {
		if errors.Is(err, redis.ErrNotAcquired) {
			c.Debug("reconcile lock held elsewhere")
			return 0, nil
		}
		c.WithField("err", err).Error("redis.SetNX failed")
		return 0, err
	}
	defer r.unlock(c, lock)

	ls, err := r.listings.FindStaleSettling(c, timeNow().Add(-r.staleAfter), r.batch)
	if err != nil {
		c.WithField("err", err).Error("listings.FindStaleSettling failed")
		return 0, err
	}
	if len(ls) == 0 {
		return 0, nil
	}

	client, release, err := r.connector.Connect(c)
	if err != nil {
		c.WithField("err", err).Error("connector.Connect failed")
		return 0, err
	}
	defer release()

	done := 0
	for _, l := range ls {
		id := l.Id.Hex()
		res, err := r.listings.ReconcileSettling(c, client, id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "listingId": id}).Warn("listings.ReconcileSettling failed")
			met.BumpSum("reconcile.err", 1)
			continue
		}
		done++
		met.BumpSum("reconcile.done", 1, "status", string(res.Status.Normalize()))
	}
	c.WithFields(log.Fields{"stale": len(ls), "reconciled": done}).Info("reconcile finished")
	return done, nil
}

// unlock leaves the lock alone once it expired and another replica took it
func (r *Reconciler) unlock(c ctx.Ctx, lock string) {
	released, err := r.redis.DelIfEqual(c, lock, r.owner)
	if err != nil {
		c.WithField("err", err).Warn("redis.DelIfEqual failed")
		return
	}
	if !released {
		met.BumpSum("reconcile.lockLost", 1)
		c.Warn("reconcile lock was taken over before release")
	}
}

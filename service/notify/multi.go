package notify

import (
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain/listing"
)

const publishTimeout = 10 * time.Second

type multi struct {
	pool      *goroutines.Pool
	notifiers []listing.Notifier
}

// NewMulti fans every event out to notifiers on pool. Publish returns once
// the deliveries are scheduled.
func NewMulti(pool *goroutines.Pool, notifiers ...listing.Notifier) listing.Notifier {
	return &multi{pool: pool, notifiers: notifiers}
}

func (m *multi) Publish(c ctx.Ctx, ev *listing.Event) error {
	for _, n := range m.notifiers {
		n := n
		if err := m.pool.Schedule(func() {
			dc, cancel := ctx.Detach(c, publishTimeout)
			defer cancel()
			if err := n.Publish(dc, ev); err != nil {
				dc.WithFields(log.Fields{"err": err, "event": ev.Type}).Warn("notifier.Publish failed")
			}
		}); err != nil {
			c.WithField("err", err).Error("pool.Schedule failed")
			return err
		}
	}
	return nil
}

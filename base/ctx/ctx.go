package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/swiftbid/base/log"
)

const (
	keyRequestID = "requestID"
	keyUserID    = "userId"
)

type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

func Todo() Ctx {
	return Ctx{
		Context: context.TODO(),
		Logger:  log.Log(),
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithValues(parent Ctx, kvs map[string]interface{}) Ctx {
	c := parent
	for k, v := range kvs {
		c = WithValue(c, k, v)
	}
	return c
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

// Detach keeps the logger and request scoped values of parent but drops its
// cancellation, bounded by timeout instead. Ledger settlements run on a
// detached context so a dropped client connection cannot abort a transfer
// half way.
func Detach(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	base := context.Background()
	for _, key := range []string{keyRequestID, keyUserID} {
		if v := parent.Value(key); v != nil {
			base = context.WithValue(base, key, v)
		}
	}
	ctx, cancel := context.WithTimeout(base, timeout)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

func WithRequestID(parent Ctx, id string) Ctx {
	return WithValue(parent, keyRequestID, id)
}

func WithUserID(parent Ctx, userID string) Ctx {
	return WithValue(parent, keyUserID, userID)
}

// UserID returns the authenticated user bound to the context, or empty string
func UserID(c Ctx) string {
	if v, ok := c.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

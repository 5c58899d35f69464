package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/swiftbid/base/ctx"
)

const (
	// Forever means the key never expires
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil
	// ErrNoTTL is returned by TTL when the key exists without expiry
	ErrNoTTL = errors.New("redis: key has no ttl")
	// ErrExpireNotExistOrTimeout is returned by Expire when the key is gone
	ErrExpireNotExistOrTimeout = errors.New("redis: key does not exist or timeout could not be set")
	// ErrNotAcquired is returned by SetNX when the key already exists
	ErrNotAcquired = errors.New("redis: key already exists")
)

// Message is a payload received on a subscribed channel
type Message struct {
	Channel string
	Data    []byte
}

// Service is the redis client used by caches, locks and listing events
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets key only when it does not exist, returning ErrNotAcquired otherwise
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	// DelIfEqual deletes key only when it holds val, reporting whether it did
	DelIfEqual(context ctx.Ctx, key string, val []byte) (bool, error)
	Expire(context ctx.Ctx, key string, ttl time.Duration) error
	Exists(context ctx.Ctx, key string) (bool, error)
	TTL(context ctx.Ctx, key string) (int, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)

	// Publish returns the number of receivers
	Publish(context ctx.Ctx, channel string, payload []byte) (int, error)
	// Subscribe delivers messages until context is done or the connection
	// breaks. The returned channel is closed when the subscription ends.
	Subscribe(context ctx.Ctx, channels ...string) (<-chan Message, error)

	Ping(context ctx.Ctx) error
	Name() string
}

package notify

import (
	"encoding/json"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain/listing"
	"github.com/x-xyz/swiftbid/service/redis"
)

type redisNotifier struct {
	redis   redis.Service
	channel string
}

// NewRedis publishes events as JSON on a redis pub/sub channel
func NewRedis(r redis.Service, channel string) listing.Notifier {
	return &redisNotifier{redis: r, channel: channel}
}

func (n *redisNotifier) Publish(c ctx.Ctx, ev *listing.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := n.redis.Publish(c, n.channel, payload); err != nil {
		c.WithField("err", err).Warn("redis.Publish failed")
		return err
	}
	return nil
}

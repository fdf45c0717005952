package sink

import (
	"encoding/json"
	"strconv"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/keys"
	"github.com/x-xyz/escrowapi/domain/notification"
	"github.com/x-xyz/escrowapi/service/redis"
)

type redisSink struct {
	redis redis.Service
}

// NewRedis publishes every notification on the pub/sub channel of its item
func NewRedis(redis redis.Service) notification.Sink {
	return &redisSink{redis: redis}
}

// Channel is the pub/sub channel carrying the notifications of an item
func Channel(id domain.ItemId) string {
	return keys.RedisKey(keys.PfxNotification, strconv.FormatInt(int64(id), 10))
}

func (s *redisSink) Name() string {
	return "redis"
}

func (s *redisSink) Publish(c ctx.Ctx, n notification.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": n.EventId}).Error("json.Marshal failed")
		return err
	}
	if _, err := s.redis.Publish(c, Channel(n.ItemId), data); err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": n.EventId}).Error("redis.Publish failed")
		return err
	}
	return nil
}

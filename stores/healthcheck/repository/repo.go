package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/database/mongoclient"
	hcdomain "github.com/x-xyz/escrowapi/domain/healthcheck"
	"github.com/x-xyz/escrowapi/domain/keys"
	"github.com/x-xyz/escrowapi/service/redis"
)

type impl struct {
	mgoClient  *mongoclient.Client
	redisCache redis.Service
}

// New returns the probes of the given services. A nil client or redis service
// has no probe.
func New(
	mgoClient *mongoclient.Client,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient:  mgoClient,
		redisCache: redisCache,
	}
}

func (im *impl) Probes() []hcdomain.Probe {
	probes := []hcdomain.Probe{}
	if im.mgoClient != nil {
		probes = append(probes, hcdomain.Probe{Name: "mongo", Ping: im.pingMongo})
	}
	if im.redisCache != nil {
		probes = append(probes, hcdomain.Probe{Name: "redis", Ping: im.pingRedis})
	}
	return probes
}

func (im *impl) pingMongo(c ctx.Ctx) error {
	if err := im.mgoClient.Ping(c, readpref.Primary()); err != nil {
		c.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

func (im *impl) pingRedis(c ctx.Ctx) error {
	if err := im.redisCache.Set(c, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		c.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}

package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/domain/keys"
)

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

// New redis service over the given pools
func New(name string, metrics metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   metrics,
		pools: pools,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	if r.pools == nil || r.pools.Src == nil {
		return nil, ErrGapTime
	}

	conn := r.pools.Src.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) closeConn(conn redis.Conn) {
	// closing asap returns the connection to the pool and keeps getConn time low
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
}

func (r *redImpl) connDo(commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}
	defer r.closeConn(conn)
	return conn.Do(commandName, args...)
}

func (r *redImpl) tags(fn, key string) []string {
	return []string{"func", fn, "cluster", r.name, "prefix", keys.GetPrefix(key)}
}

func (r *redImpl) bumpTTL(expire time.Duration, tags []string) {
	if expire == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
	} else {
		r.met.BumpAvg("ttl", expire.Seconds(), tags...)
	}
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := r.tags("get", key)
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo("GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		context.WithField("err", err).Error("get redis failed")
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := r.tags("set", key)
	defer r.met.BumpTime("time", tags...).End()
	r.bumpTTL(expire, tags)
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	args := []interface{}{key, val}
	if expire != Forever {
		args = append(args, "PX", int64(expire/time.Millisecond))
	}
	if _, err := r.connDo("SET", args...); err != nil {
		context.WithField("err", err).Error("set redis failed")
		return err
	}
	return nil
}

func (r *redImpl) SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error) {
	tags := r.tags("setnx", key)
	defer r.met.BumpTime("time", tags...).End()
	r.bumpTTL(expire, tags)

	args := []interface{}{key, val, "NX"}
	if expire != Forever {
		args = append(args, "PX", int64(expire/time.Millisecond))
	}
	// SET NX replies OK when set and nil when the key exists
	_, err := redis.String(r.connDo("SET", args...))
	if err == redis.ErrNil {
		return false, nil
	} else if err != nil {
		context.WithField("err", err).Error("setnx redis failed")
		return false, err
	}
	return true, nil
}

func (r *redImpl) Del(context ctx.Ctx, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	tags := r.tags("del", keys[0])
	defer r.met.BumpTime("time", tags...).End()

	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	if _, err := r.connDo("DEL", args...); err != nil {
		context.WithField("err", err).Error("del redis failed")
		return err
	}
	return nil
}

func (r *redImpl) Publish(context ctx.Ctx, channel string, msg []byte) (int, error) {
	tags := r.tags("publish", channel)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(msg)), tags...)

	n, err := redis.Int(r.connDo("PUBLISH", channel, msg))
	if err != nil {
		context.WithField("err", err).Error("publish redis failed")
		return 0, err
	}
	return n, nil
}

func (r *redImpl) ScriptDo(context ctx.Ctx, script *Script, keysAndArgs ...interface{}) (interface{}, error) {
	defer r.met.BumpTime("time", "func", "scriptdo", "cluster", r.name, "prefix", script.name).End()

	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}
	defer r.closeConn(conn)

	value, err := script.script.Do(conn, keysAndArgs...)
	if err != nil && err != redis.ErrNil {
		context.WithFields(log.Fields{"err": err, "script": script.name}).Error("ScriptDo redis failed")
	}
	return value, err
}

func (r *redImpl) Name() string {
	return r.name
}

package executor

import (
	"strconv"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/keys"
	"github.com/x-xyz/escrowapi/domain/notification"
	"github.com/x-xyz/escrowapi/service/lock"
)

// Executor runs mutating operations one at a time per key, each as a single
// transaction with a compensation journal
type Executor interface {
	Execute(c ctx.Ctx, key string, fn func(c ctx.Ctx, op *Op) error) error
}

// ItemKey serializes the operations of one item
func ItemKey(id domain.ItemId) string {
	return keys.RedisKey(keys.PfxLock, "item", strconv.FormatInt(int64(id), 10))
}

// RegistryKey serializes id allocation
func RegistryKey() string {
	return keys.RedisKey(keys.PfxLock, "registry")
}

type ExecutorCfg struct {
	Locker     lock.Locker
	Transactor domain.Transactor
	Notifier   notification.UseCase
}

type impl struct {
	locker   lock.Locker
	tx       domain.Transactor
	notifier notification.UseCase
	met      metrics.Service
}

func New(cfg *ExecutorCfg) Executor {
	return &impl{
		locker:   cfg.Locker,
		tx:       cfg.Transactor,
		notifier: cfg.Notifier,
		met:      metrics.New("executor"),
	}
}

func (im *impl) Execute(c ctx.Ctx, key string, fn func(ctx.Ctx, *Op) error) error {
	defer im.met.BumpTime("execute.time").End()

	unlock, err := im.locker.Lock(c, key)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("locker.Lock failed")
		return err
	}
	defer unlock()

	var (
		last      *Op
		committed []notification.Notification
	)
	err = im.tx.RunWithTransaction(c, func(tc ctx.Ctx) error {
		// the transaction may retry the callback, each attempt starts clean
		op := &Op{}
		last = op
		committed = nil

		if err := fn(tc, op); err != nil {
			im.compensate(tc, op)
			return err
		}

		ns, err := im.record(tc, op)
		if err != nil {
			im.compensate(tc, op)
			return err
		}
		committed = ns
		return nil
	})
	if err != nil {
		// a failed commit discards the journaled effects with the transaction
		if last != nil {
			last.seal()
		}
		im.met.BumpSum("execute.err", 1)
		return err
	}

	last.seal()
	if len(committed) > 0 {
		im.notifier.Dispatch(c, committed)
	}
	return nil
}

func (im *impl) compensate(c ctx.Ctx, op *Op) {
	if failed := op.rollback(c); len(failed) > 0 {
		im.met.BumpSum("compensate.err", float64(len(failed)))
	}
}

func (im *impl) record(c ctx.Ctx, op *Op) ([]notification.Notification, error) {
	var res []notification.Notification
	for _, e := range op.events {
		ns, err := im.notifier.Record(c, e.id, e.events...)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "itemId": e.id}).Error("notifier.Record failed")
			return nil, err
		}
		res = append(res, ns...)
	}
	return res, nil
}

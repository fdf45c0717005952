package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/notification"
)

const scheduleTimeout = 3 * time.Second

type NotificationUseCaseCfg struct {
	Repo  notification.Repo
	Sinks []notification.Sink
	// Workers bounds concurrent sink publishes
	Workers int
}

type impl struct {
	repo       notification.Repo
	sinks      []notification.Sink
	workerPool *goroutines.Pool
	met        metrics.Service
}

// Dispatcher is the notification log together with its worker pool
type Dispatcher interface {
	notification.UseCase
	// Release stops the workers, it is called on shutdown
	Release()
}

func New(cfg *NotificationUseCaseCfg) Dispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	return &impl{
		repo:       cfg.Repo,
		sinks:      cfg.Sinks,
		workerPool: goroutines.NewPool(workers, goroutines.WithTaskQueueLength(1024), goroutines.WithPreAllocWorkers(1)),
		met:        metrics.New("notification"),
	}
}

func (im *impl) Record(c ctx.Ctx, id domain.ItemId, events ...notification.Event) ([]notification.Notification, error) {
	now := time.Now()
	res := make([]notification.Notification, 0, len(events))
	for _, e := range events {
		n := notification.Notification{
			EventId:   uuid.NewString(),
			ItemId:    id,
			Name:      e.Name(),
			Args:      e.Args(),
			CreatedAt: now,
		}
		if err := im.repo.Insert(c, n); err != nil {
			c.WithFields(log.Fields{"err": err, "itemId": id, "name": n.Name}).Error("repo.Insert failed")
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func (im *impl) Dispatch(c ctx.Ctx, ns []notification.Notification) {
	if len(ns) == 0 {
		return
	}
	// sinks run after the request returned
	dc := ctx.Detach(c)
	for _, sink := range im.sinks {
		s := sink
		err := im.workerPool.ScheduleWithTimeout(scheduleTimeout, func() {
			for _, n := range ns {
				if err := s.Publish(dc, n); err != nil {
					im.met.BumpSum("publish.err", 1, "sink", s.Name())
					dc.WithFields(log.Fields{
						"err":     err,
						"sink":    s.Name(),
						"eventId": n.EventId,
					}).Error("sink.Publish failed")
				}
			}
		})
		if err != nil {
			im.met.BumpSum("schedule.err", 1, "sink", s.Name())
			c.WithFields(log.Fields{
				"err":  err,
				"sink": s.Name(),
			}).Error("failed to ScheduleWithTimeout")
		}
	}
}

func (im *impl) FindAll(c ctx.Ctx, id domain.ItemId, offset, limit int) ([]notification.Notification, error) {
	if offset < 0 || limit < 0 {
		return nil, domain.ErrBadParamInput
	}
	res, err := im.repo.FindAll(c, id, offset, limit)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id}).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Release() {
	im.workerPool.Release()
}

package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/notification"
	"github.com/x-xyz/escrowapi/service/query"
)

type notificationRepoImpl struct {
	q query.Mongo
}

func New(q query.Mongo) notification.Repo {
	return &notificationRepoImpl{q}
}

func (im *notificationRepoImpl) Insert(c ctx.Ctx, n notification.Notification) error {
	if err := im.q.Insert(c, domain.TableNotifications, n); err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": n.ItemId, "name": n.Name}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *notificationRepoImpl) FindAll(c ctx.Ctx, id domain.ItemId, offset, limit int) ([]notification.Notification, error) {
	res := []notification.Notification{}
	// object ids grow with insertion
	if err := im.q.Search(c, domain.TableNotifications, offset, limit, "_id", bson.M{"itemId": id}, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

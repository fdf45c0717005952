package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/database/mongoclient"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/item"
	"github.com/x-xyz/escrowapi/service/query"
)

const itemCounterId = "items"

type counter struct {
	Id  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type itemRepoImpl struct {
	q query.Mongo
}

func New(q query.Mongo) item.Repo {
	return &itemRepoImpl{q}
}

func (im *itemRepoImpl) makeQuery(opts ...item.FindAllOptionsFunc) (bson.M, item.FindAllOptions, error) {
	options, err := item.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}
	query := bson.M{}

	if options.Seller != nil {
		query["seller"] = *options.Seller
	}

	if options.Nft != nil {
		query["nft"] = *options.Nft
	}

	if options.TokenId != nil {
		query["tokenId"] = *options.TokenId
	}

	if options.IsSold != nil {
		query["isSold"] = *options.IsSold
	}

	if options.IsStarted != nil {
		query["isStarted"] = *options.IsStarted
	}

	return query, options, nil
}

func (im *itemRepoImpl) FindAll(c ctx.Ctx, opts ...item.FindAllOptionsFunc) ([]item.Item, error) {
	query, options, err := im.makeQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("im.makeQuery failed")
		return nil, err
	}

	var (
		offset, limit int
		sort          = "itemId"
	)
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []item.Item{}
	if err := im.q.Search(c, domain.TableItems, offset, limit, sort, query, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *itemRepoImpl) FindOne(c ctx.Ctx, id domain.ItemId) (*item.Item, error) {
	res := &item.Item{}
	if err := im.q.FindOne(c, domain.TableItems, bson.M{"itemId": id}, res); err == query.ErrNotFound {
		return nil, xerrors.Errorf("item %d: %w", id, domain.ErrItemNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *itemRepoImpl) Create(c ctx.Ctx, it item.Item) error {
	it.ToLower()
	if err := im.q.Insert(c, domain.TableItems, it); err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": it.ItemId}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *itemRepoImpl) Update(c ctx.Ctx, id domain.ItemId, patch item.PatchableItem) error {
	if patch.HighestBidder != nil {
		lower := patch.HighestBidder.ToLower()
		patch.HighestBidder = &lower
	}
	if patch.UpdatedAt == nil {
		now := time.Now()
		patch.UpdatedAt = &now
	}

	update, err := mongoclient.MakeBsonM(patch)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Patch(c, domain.TableItems, bson.M{"itemId": id}, update); err == query.ErrNotFound {
		return xerrors.Errorf("item %d: %w", id, domain.ErrItemNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id, "update": update}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *itemRepoImpl) NextId(c ctx.Ctx) (domain.ItemId, error) {
	res := counter{}
	if err := im.q.Increment(c, domain.TableCounters, bson.M{"_id": itemCounterId}, &res, "seq", 1); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.ItemId(res.Seq), nil
}

func (im *itemRepoImpl) Count(c ctx.Ctx) (int, error) {
	res := counter{}
	if err := im.q.FindOne(c, domain.TableCounters, bson.M{"_id": itemCounterId}, &res); err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return 0, err
	}
	return int(res.Seq), nil
}

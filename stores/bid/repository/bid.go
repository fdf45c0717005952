package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/bid"
	"github.com/x-xyz/escrowapi/service/query"
)

type bidRepoImpl struct {
	q query.Mongo
}

// New returns the mongo bid ledger. Writes for one item must be serialized by
// the caller, index assignment reads the current bidder count.
func New(q query.Mongo) bid.Repo {
	return &bidRepoImpl{q}
}

func bidderQuery(id domain.ItemId, bidder domain.Address) bson.M {
	return bson.M{"itemId": id, "bidder": bidder.ToLower()}
}

func (im *bidRepoImpl) RecordBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address, amount domain.Amount) (domain.Amount, error) {
	now := time.Now()
	selector := bidderQuery(id, bidder)

	existing := bid.Record{}
	err := im.q.FindOne(c, domain.TableBids, selector, &existing)
	if err == nil {
		update := bson.M{"amount": amount, "updatedAt": now}
		if err := im.q.Patch(c, domain.TableBids, selector, update); err != nil {
			c.WithFields(log.Fields{"err": err, "selector": selector}).Error("q.Patch failed")
			return domain.Amount{}, err
		}
		return existing.Amount, nil
	} else if err != query.ErrNotFound {
		c.WithFields(log.Fields{"err": err, "selector": selector}).Error("q.FindOne failed")
		return domain.Amount{}, err
	}

	index, err := im.Count(c, id)
	if err != nil {
		return domain.Amount{}, err
	}
	record := bid.Record{
		ItemId:    id,
		Bidder:    bidder.ToLower(),
		Amount:    amount,
		Index:     index,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := im.q.Insert(c, domain.TableBids, record); err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id, "bidder": bidder}).Error("q.Insert failed")
		return domain.Amount{}, err
	}
	return domain.Amount{}, nil
}

func (im *bidRepoImpl) GetBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address) (domain.Amount, error) {
	res := bid.Record{}
	if err := im.q.FindOne(c, domain.TableBids, bidderQuery(id, bidder), &res); err == query.ErrNotFound {
		return domain.Amount{}, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id, "bidder": bidder}).Error("q.FindOne failed")
		return domain.Amount{}, err
	}
	return res.Amount, nil
}

func (im *bidRepoImpl) GetBidderAt(c ctx.Ctx, id domain.ItemId, index int) (domain.Address, error) {
	if index < 0 {
		return "", domain.ErrIndexOutOfRange
	}
	res := bid.Record{}
	if err := im.q.FindOne(c, domain.TableBids, bson.M{"itemId": id, "index": index}, &res); err == query.ErrNotFound {
		return "", xerrors.Errorf("item %d index %d: %w", id, index, domain.ErrIndexOutOfRange)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id, "index": index}).Error("q.FindOne failed")
		return "", err
	}
	return res.Bidder, nil
}

func (im *bidRepoImpl) Count(c ctx.Ctx, id domain.ItemId) (int, error) {
	cnt, err := im.q.Count(c, domain.TableBids, bson.M{"itemId": id})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (im *bidRepoImpl) FindAll(c ctx.Ctx, id domain.ItemId) ([]bid.Record, error) {
	res := []bid.Record{}
	if err := im.q.Search(c, domain.TableBids, 0, 0, "index", bson.M{"itemId": id}, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

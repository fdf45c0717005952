package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/wallet"
	"github.com/x-xyz/escrowapi/service/query"
)

type walletRepoImpl struct {
	q query.Mongo
}

func New(q query.Mongo) wallet.Repo {
	return &walletRepoImpl{q}
}

func (im *walletRepoImpl) FindOne(c ctx.Ctx, address domain.Address) (*wallet.Balance, error) {
	res := &wallet.Balance{}
	if err := im.q.FindOne(c, domain.TableWallets, bson.M{"address": address.ToLower()}, res); err == query.ErrNotFound {
		return nil, xerrors.Errorf("wallet %s: %w", address, domain.ErrNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *walletRepoImpl) Upsert(c ctx.Ctx, b wallet.Balance) error {
	b.Address = b.Address.ToLower()
	if err := im.q.Upsert(c, domain.TableWallets, bson.M{"address": b.Address}, b); err != nil {
		c.WithFields(log.Fields{"err": err, "address": b.Address}).Error("q.Upsert failed")
		return err
	}
	return nil
}

package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/service/query"
)

type custodyRepoImpl struct {
	q query.Mongo
}

func New(q query.Mongo) custody.Repo {
	return &custodyRepoImpl{q}
}

func ownershipQuery(nft domain.Address, tokenId domain.TokenId) bson.M {
	return bson.M{"nft": nft.ToLower(), "tokenId": tokenId}
}

func approvalQuery(nft, owner, operator domain.Address) bson.M {
	return bson.M{"nft": nft.ToLower(), "owner": owner.ToLower(), "operator": operator.ToLower()}
}

func (im *custodyRepoImpl) FindOwnership(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId) (*custody.Ownership, error) {
	res := &custody.Ownership{}
	if err := im.q.FindOne(c, domain.TableCustody, ownershipQuery(nft, tokenId), res); err == query.ErrNotFound {
		return nil, xerrors.Errorf("%s/%s: %w", nft, tokenId, domain.ErrAssetNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "nft": nft, "tokenId": tokenId}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *custodyRepoImpl) UpsertOwnership(c ctx.Ctx, o custody.Ownership) error {
	o.Nft = o.Nft.ToLower()
	o.Owner = o.Owner.ToLower()
	if err := im.q.Upsert(c, domain.TableCustody, ownershipQuery(o.Nft, o.TokenId), o); err != nil {
		c.WithFields(log.Fields{"err": err, "nft": o.Nft, "tokenId": o.TokenId}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *custodyRepoImpl) FindApproval(c ctx.Ctx, nft, owner, operator domain.Address) (*custody.Approval, error) {
	res := &custody.Approval{}
	if err := im.q.FindOne(c, domain.TableApprovals, approvalQuery(nft, owner, operator), res); err == query.ErrNotFound {
		return nil, xerrors.Errorf("approval %s: %w", nft, domain.ErrNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "nft": nft, "owner": owner}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *custodyRepoImpl) UpsertApproval(c ctx.Ctx, a custody.Approval) error {
	a.Nft = a.Nft.ToLower()
	a.Owner = a.Owner.ToLower()
	a.Operator = a.Operator.ToLower()
	if err := im.q.Upsert(c, domain.TableApprovals, approvalQuery(a.Nft, a.Owner, a.Operator), a); err != nil {
		c.WithFields(log.Fields{"err": err, "nft": a.Nft, "owner": a.Owner}).Error("q.Upsert failed")
		return err
	}
	return nil
}

package usecase

import (
	"errors"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/custody"
)

type CustodyUseCaseCfg struct {
	Repo custody.Repo
	// Operator is the marketplace, the only identity that issues transfers
	Operator   domain.Address
	Transactor domain.Transactor
}

type impl struct {
	repo     custody.Repo
	operator domain.Address
	tx       domain.Transactor
}

func New(cfg *CustodyUseCaseCfg) custody.UseCase {
	return &impl{
		repo:     cfg.Repo,
		operator: cfg.Operator.ToLower(),
		tx:       cfg.Transactor,
	}
}

func (im *impl) OwnerOf(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	o, err := im.repo.FindOwnership(c, nft, tokenId)
	if err != nil {
		return "", err
	}
	return o.Owner, nil
}

func (im *impl) IsApprovedForAll(c ctx.Ctx, nft, owner, operator domain.Address) (bool, error) {
	a, err := im.repo.FindApproval(c, nft, owner, operator)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return a.Approved, nil
}

func (im *impl) TransferCustody(c ctx.Ctx, from, to domain.Address, nft domain.Address, tokenId domain.TokenId) error {
	owner, err := im.OwnerOf(c, nft, tokenId)
	if err != nil {
		return err
	}
	if !owner.Equals(from) {
		return xerrors.Errorf("%s/%s owned by %s: %w", nft, tokenId, owner, domain.ErrTransferNotAuthorized)
	}
	if !from.Equals(im.operator) {
		approved, err := im.IsApprovedForAll(c, nft, from, im.operator)
		if err != nil {
			return err
		}
		if !approved {
			return xerrors.Errorf("%s did not approve the marketplace: %w", from, domain.ErrTransferNotAuthorized)
		}
	}

	if err := im.repo.UpsertOwnership(c, custody.Ownership{
		Nft:       nft,
		TokenId:   tokenId,
		Owner:     to,
		UpdatedAt: time.Now(),
	}); err != nil {
		c.WithFields(log.Fields{"err": err, "nft": nft, "tokenId": tokenId}).Error("repo.UpsertOwnership failed")
		return err
	}
	return nil
}

func (im *impl) SetApprovalForAll(c ctx.Ctx, nft, owner, operator domain.Address, approved bool) error {
	if err := im.repo.UpsertApproval(c, custody.Approval{
		Nft:       nft,
		Owner:     owner,
		Operator:  operator,
		Approved:  approved,
		UpdatedAt: time.Now(),
	}); err != nil {
		c.WithFields(log.Fields{"err": err, "nft": nft, "owner": owner}).Error("repo.UpsertApproval failed")
		return err
	}
	return nil
}

func (im *impl) Deposit(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId, owner domain.Address) error {
	return im.tx.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if o, err := im.repo.FindOwnership(tc, nft, tokenId); err == nil {
			return xerrors.Errorf("%s/%s already held by %s: %w", nft, tokenId, o.Owner, domain.ErrBadParamInput)
		} else if !errors.Is(err, domain.ErrAssetNotFound) {
			return err
		}
		return im.repo.UpsertOwnership(tc, custody.Ownership{
			Nft:       nft,
			TokenId:   tokenId,
			Owner:     owner,
			UpdatedAt: time.Now(),
		})
	})
}

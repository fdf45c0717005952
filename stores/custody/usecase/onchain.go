package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/service/chain/contract"
)

type onchainVerifier struct {
	erc721   contract.Erc721Contract
	operator domain.Address
}

// NewOnchainVerifier checks listings against the erc721 contract itself
func NewOnchainVerifier(erc721 contract.Erc721Contract, operator domain.Address) custody.Verifier {
	return &onchainVerifier{
		erc721:   erc721,
		operator: operator.ToLower(),
	}
}

func (v *onchainVerifier) VerifyListing(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId, seller domain.Address) error {
	ok, err := v.erc721.Supports721Interface(c, nft)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "nft": nft}).Error("erc721.Supports721Interface failed")
		return err
	}
	if !ok {
		return xerrors.Errorf("%s is not an erc721 contract: %w", nft, domain.ErrBadParamInput)
	}

	owner, err := v.erc721.OwnerOf(c, nft, tokenId)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "nft": nft, "tokenId": tokenId}).Error("erc721.OwnerOf failed")
		return err
	}
	if !owner.Equals(seller) {
		return xerrors.Errorf("%s/%s owned on chain by %s: %w", nft, tokenId, owner, domain.ErrTransferNotAuthorized)
	}

	approved, err := v.erc721.IsApprovedForAll(c, nft, seller, v.operator)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "nft": nft, "owner": seller}).Error("erc721.IsApprovedForAll failed")
		return err
	}
	if !approved {
		return xerrors.Errorf("%s not approved on chain: %w", seller, domain.ErrTransferNotAuthorized)
	}
	return nil
}

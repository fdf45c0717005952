package custody

import (
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
)

// Ownership records who holds an asset
type Ownership struct {
	Nft       domain.Address `json:"nft" bson:"nft"`
	TokenId   domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner     domain.Address `json:"owner" bson:"owner"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Approval records an operator approved for every asset of owner in a collection
type Approval struct {
	Nft       domain.Address `json:"nft" bson:"nft"`
	Owner     domain.Address `json:"owner" bson:"owner"`
	Operator  domain.Address `json:"operator" bson:"operator"`
	Approved  bool           `json:"approved" bson:"approved"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type Repo interface {
	FindOwnership(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId) (*Ownership, error)
	UpsertOwnership(c ctx.Ctx, o Ownership) error
	FindApproval(c ctx.Ctx, nft, owner, operator domain.Address) (*Approval, error)
	UpsertApproval(c ctx.Ctx, a Approval) error
}

// Custodian is the capability the marketplace needs from the asset registry
type Custodian interface {
	OwnerOf(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId) (domain.Address, error)
	IsApprovedForAll(c ctx.Ctx, nft, owner, operator domain.Address) (bool, error)
	// TransferCustody is issued by the marketplace. It fails with
	// domain.ErrTransferNotAuthorized unless from is the marketplace itself or
	// has approved the marketplace as operator.
	TransferCustody(c ctx.Ctx, from, to domain.Address, nft domain.Address, tokenId domain.TokenId) error
}

// Verifier checks a listing against an authority outside the marketplace
type Verifier interface {
	VerifyListing(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId, seller domain.Address) error
}

type UseCase interface {
	Custodian
	SetApprovalForAll(c ctx.Ctx, nft, owner, operator domain.Address, approved bool) error
	// Deposit registers owner as the holder of an asset not yet known to the custodian
	Deposit(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId, owner domain.Address) error
}

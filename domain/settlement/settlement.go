package settlement

import (
	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
)

type StepKind string

const (
	StepRefund StepKind = "refund"
	StepPayout StepKind = "payout"
	StepAsset  StepKind = "asset"
)

// Step is one movement out of escrow
type Step struct {
	Kind    StepKind       `json:"kind"`
	To      domain.Address `json:"to"`
	Amount  domain.Amount  `json:"amount"`
	Nft     domain.Address `json:"nft,omitempty"`
	TokenId domain.TokenId `json:"tokenId,omitempty"`
}

// Receipt describes a completed settlement
type Receipt struct {
	ItemId     domain.ItemId  `json:"itemId"`
	Seller     domain.Address `json:"seller"`
	Winner     domain.Address `json:"winner"`
	WinningBid domain.Amount  `json:"winningBid"`
	Steps      []Step         `json:"steps"`
}

type UseCase interface {
	// EndAuction moves the asset to the highest bidder, pays the seller and
	// refunds every other bidder as one atomic operation
	EndAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*Receipt, error)
}

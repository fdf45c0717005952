package auction

import (
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/item"
)

// UseCase owns the auction window of an item and the bid admission rule
type UseCase interface {
	// StartAuction opens or restarts the window for duration from now. Seller only.
	StartAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId, duration time.Duration) (*item.Item, error)
	// StopAuction closes the window without settling. Seller only.
	StopAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*item.Item, error)
	// Bid escrows amount from caller and makes caller the highest bidder
	Bid(c ctx.Ctx, caller domain.Address, id domain.ItemId, amount domain.Amount) (*item.Item, error)
}

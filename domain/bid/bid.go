package bid

import (
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
)

// Record is the last recorded commitment of one bidder on one item. Index is the
// position of the bidder in the item's insertion ordered bidder list and never
// changes once assigned.
type Record struct {
	ItemId    domain.ItemId  `json:"itemId" bson:"itemId"`
	Bidder    domain.Address `json:"bidder" bson:"bidder"`
	Amount    domain.Amount  `json:"amount" bson:"amount"`
	Index     int            `json:"index" bson:"index"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Repo is the bid ledger
type Repo interface {
	// RecordBid upserts the amount of bidder and appends bidder to the list on
	// its first bid. It returns the amount recorded before this call.
	RecordBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address, amount domain.Amount) (prev domain.Amount, err error)
	// GetBid returns 0 for a bidder who never bid on the item
	GetBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address) (domain.Amount, error)
	// GetBidderAt fails with domain.ErrIndexOutOfRange past the last bidder
	GetBidderAt(c ctx.Ctx, id domain.ItemId, index int) (domain.Address, error)
	Count(c ctx.Ctx, id domain.ItemId) (int, error)
	// FindAll returns the records of an item ordered by index
	FindAll(c ctx.Ctx, id domain.ItemId) ([]Record, error)
}

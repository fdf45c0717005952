package item

import (
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/bid"
	"github.com/x-xyz/escrowapi/domain/settlement"
)

// Item is an asset held in escrow by the marketplace together with its auction state
type Item struct {
	ItemId         domain.ItemId  `json:"itemId" bson:"itemId"`
	Nft            domain.Address `json:"nft" bson:"nft"`
	TokenId        domain.TokenId `json:"tokenId" bson:"tokenId"`
	Seller         domain.Address `json:"seller" bson:"seller"`
	StartPrice     domain.Amount  `json:"startPrice" bson:"startPrice"`
	IsStarted      bool           `json:"isStarted" bson:"isStarted"`
	AuctionEndTime time.Time      `json:"auctionEndTime" bson:"auctionEndTime"`
	IsSold         bool           `json:"isSold" bson:"isSold"`
	HighestBid     domain.Amount  `json:"highestBid" bson:"highestBid"`
	HighestBidder  domain.Address `json:"highestBidder" bson:"highestBidder"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (i *Item) ToLower() {
	i.Nft = i.Nft.ToLower()
	i.Seller = i.Seller.ToLower()
	i.HighestBidder = i.HighestBidder.ToLower()
}

// IsOpen reports whether the item accepts bids at now
func (i *Item) IsOpen(now time.Time) bool {
	return !i.IsSold && i.IsStarted && now.Before(i.AuctionEndTime)
}

// PatchableItem holds the mutable fields of an item, nil fields are left untouched
type PatchableItem struct {
	IsStarted      *bool           `bson:"isStarted,omitempty"`
	AuctionEndTime *time.Time      `bson:"auctionEndTime,omitempty"`
	IsSold         *bool           `bson:"isSold,omitempty"`
	HighestBid     *domain.Amount  `bson:"highestBid,omitempty"`
	HighestBidder  *domain.Address `bson:"highestBidder,omitempty"`
	UpdatedAt      *time.Time      `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	Seller    *domain.Address
	Nft       *domain.Address
	TokenId   *domain.TokenId
	IsSold    *bool
	IsStarted *bool
	Offset    *int32
	Limit     *int32
	Sort      *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		seller = seller.ToLower()
		options.Seller = &seller
		return nil
	}
}

func WithAsset(nft domain.Address, tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		nft = nft.ToLower()
		options.Nft = &nft
		options.TokenId = &tokenId
		return nil
	}
}

func WithIsSold(isSold bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.IsSold = &isSold
		return nil
	}
}

func WithIsStarted(isStarted bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.IsStarted = &isStarted
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

// Repo is the single owned store of the catalog
type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]Item, error)
	FindOne(c ctx.Ctx, id domain.ItemId) (*Item, error)
	Create(c ctx.Ctx, item Item) error
	Update(c ctx.Ctx, id domain.ItemId, patch PatchableItem) error
	// NextId allocates the next item identity and bumps the listed item counter
	NextId(c ctx.Ctx) (domain.ItemId, error)
	// Count returns the number of items ever listed
	Count(c ctx.Ctx) (int, error)
}

// UseCase is the public surface of the marketplace. Auction and settlement
// operations are dispatched to their engines.
type UseCase interface {
	ListItem(c ctx.Ctx, caller domain.Address, nft domain.Address, tokenId domain.TokenId, startPrice domain.Amount) (*Item, error)
	ItemCount(c ctx.Ctx) (int, error)
	GetItem(c ctx.Ctx, id domain.ItemId) (*Item, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]Item, error)

	StartAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId, duration time.Duration) (*Item, error)
	StopAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*Item, error)
	Bid(c ctx.Ctx, caller domain.Address, id domain.ItemId, amount domain.Amount) (*Item, error)
	EndAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*settlement.Receipt, error)

	GetBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address) (domain.Amount, error)
	GetBidderAt(c ctx.Ctx, id domain.ItemId, index int) (domain.Address, error)
	GetBids(c ctx.Ctx, id domain.ItemId) ([]bid.Record, error)
}

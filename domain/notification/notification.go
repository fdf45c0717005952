package notification

import (
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
)

type Name string

const (
	NameOffered      Name = "Offered"
	NameStartAuction Name = "StartAuction"
	NameStopAuction  Name = "StopAuction"
	NameBid          Name = "Bid"
	NameAuctionEnded Name = "AuctionEnded"
)

// Event is an observable side effect of an operation. Args returns the fields in
// their wire order.
type Event interface {
	Name() Name
	Args() []interface{}
}

type Listing struct {
	ItemId        domain.ItemId
	Nft           domain.Address
	TokenId       domain.TokenId
	StartPrice    domain.Amount
	Seller        domain.Address
	IsSold        bool
	IsStarted     bool
	HighestBid    domain.Amount
	HighestBidder domain.Address
}

func (e Listing) Name() Name { return NameOffered }

func (e Listing) Args() []interface{} {
	return []interface{}{
		e.ItemId, e.Nft, e.TokenId, e.StartPrice, e.Seller,
		e.IsSold, e.IsStarted, e.HighestBid, e.HighestBidder,
	}
}

type AuctionStarted struct {
	Started bool
}

func (e AuctionStarted) Name() Name { return NameStartAuction }

func (e AuctionStarted) Args() []interface{} { return []interface{}{e.Started} }

type AuctionStopped struct {
	Started bool
}

func (e AuctionStopped) Name() Name { return NameStopAuction }

func (e AuctionStopped) Args() []interface{} { return []interface{}{e.Started} }

type BidPlaced struct {
	ItemId domain.ItemId
	Bidder domain.Address
	Amount domain.Amount
}

func (e BidPlaced) Name() Name { return NameBid }

func (e BidPlaced) Args() []interface{} {
	return []interface{}{e.ItemId, e.Bidder, e.Amount}
}

type AuctionEnded struct {
	ItemId domain.ItemId
	Winner domain.Address
	Amount domain.Amount
}

func (e AuctionEnded) Name() Name { return NameAuctionEnded }

func (e AuctionEnded) Args() []interface{} {
	return []interface{}{e.ItemId, e.Winner, e.Amount}
}

// Notification is one entry of the append only notification log
type Notification struct {
	EventId   string        `json:"eventId" bson:"eventId"`
	ItemId    domain.ItemId `json:"itemId" bson:"itemId"`
	Name      Name          `json:"name" bson:"name"`
	Args      []interface{} `json:"args" bson:"args"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

type Repo interface {
	Insert(c ctx.Ctx, n Notification) error
	// FindAll returns the log of an item in insertion order
	FindAll(c ctx.Ctx, id domain.ItemId, offset, limit int) ([]Notification, error)
}

// Sink receives committed notifications
type Sink interface {
	Name() string
	Publish(c ctx.Ctx, n Notification) error
}

type UseCase interface {
	// Record appends events to the log using the transaction carried by c
	Record(c ctx.Ctx, id domain.ItemId, events ...Event) ([]Notification, error)
	// Dispatch fans committed notifications out to every sink asynchronously
	Dispatch(c ctx.Ctx, ns []Notification)
	FindAll(c ctx.Ctx, id domain.ItemId, offset, limit int) ([]Notification, error)
}

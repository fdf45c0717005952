package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/base/ptr"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/auction"
	"github.com/x-xyz/escrowapi/domain/bid"
	"github.com/x-xyz/escrowapi/domain/item"
	"github.com/x-xyz/escrowapi/domain/notification"
	"github.com/x-xyz/escrowapi/domain/wallet"
	"github.com/x-xyz/escrowapi/service/executor"
)

type AuctionUseCaseCfg struct {
	ItemRepo item.Repo
	BidRepo  bid.Repo
	Ledger   wallet.Ledger
	Executor executor.Executor
	// Now defaults to time.Now
	Now func() time.Time
}

type impl struct {
	itemRepo item.Repo
	bidRepo  bid.Repo
	ledger   wallet.Ledger
	executor executor.Executor
	now      func() time.Time
	met      metrics.Service
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		itemRepo: cfg.ItemRepo,
		bidRepo:  cfg.BidRepo,
		ledger:   cfg.Ledger,
		executor: cfg.Executor,
		now:      now,
		met:      metrics.New("auction"),
	}
}

// sellerItem loads an unsold item and checks caller is its seller
func (im *impl) sellerItem(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*item.Item, error) {
	it, err := im.itemRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if it.IsSold {
		return nil, domain.ErrAlreadySold
	}
	if !it.Seller.Equals(caller) {
		return nil, xerrors.Errorf("%s is not the seller of item %d: %w", caller, id, domain.ErrNotAuthorized)
	}
	return it, nil
}

func (im *impl) StartAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId, duration time.Duration) (*item.Item, error) {
	defer im.met.BumpTime("start.time").End()

	if duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	var res *item.Item
	err := im.executor.Execute(c, executor.ItemKey(id), func(tc ctx.Ctx, op *executor.Op) error {
		it, err := im.sellerItem(tc, caller, id)
		if err != nil {
			return err
		}

		now := im.now()
		it.IsStarted = true
		it.AuctionEndTime = now.Add(duration)
		it.UpdatedAt = now
		if err := im.itemRepo.Update(tc, id, item.PatchableItem{
			IsStarted:      ptr.Bool(true),
			AuctionEndTime: ptr.Time(it.AuctionEndTime),
			UpdatedAt:      ptr.Time(now),
		}); err != nil {
			tc.WithFields(log.Fields{"err": err, "itemId": id}).Error("itemRepo.Update failed")
			return err
		}

		op.Emit(id, notification.AuctionStarted{Started: true})
		res = it
		return nil
	})
	if err != nil {
		im.met.BumpSum("start.err", 1)
		return nil, err
	}
	return res, nil
}

func (im *impl) StopAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*item.Item, error) {
	defer im.met.BumpTime("stop.time").End()

	var res *item.Item
	err := im.executor.Execute(c, executor.ItemKey(id), func(tc ctx.Ctx, op *executor.Op) error {
		it, err := im.sellerItem(tc, caller, id)
		if err != nil {
			return err
		}

		now := im.now()
		it.IsStarted = false
		it.UpdatedAt = now
		if err := im.itemRepo.Update(tc, id, item.PatchableItem{
			IsStarted: ptr.Bool(false),
			UpdatedAt: ptr.Time(now),
		}); err != nil {
			tc.WithFields(log.Fields{"err": err, "itemId": id}).Error("itemRepo.Update failed")
			return err
		}

		op.Emit(id, notification.AuctionStopped{Started: false})
		res = it
		return nil
	})
	if err != nil {
		im.met.BumpSum("stop.err", 1)
		return nil, err
	}
	return res, nil
}

// admit checks the bid against the state of it at now
func admit(it *item.Item, amount domain.Amount, now time.Time) error {
	switch {
	case it.IsSold:
		return domain.ErrAlreadySold
	case !it.IsStarted:
		return domain.ErrNotStarted
	case !now.Before(it.AuctionEndTime):
		return domain.ErrAuctionEnded
	case amount.Cmp(it.HighestBid) <= 0:
		return domain.ErrInsufficientBid
	}
	return nil
}

func (im *impl) Bid(c ctx.Ctx, caller domain.Address, id domain.ItemId, amount domain.Amount) (*item.Item, error) {
	defer im.met.BumpTime("bid.time").End()

	caller = caller.ToLower()
	var res *item.Item
	err := im.executor.Execute(c, executor.ItemKey(id), func(tc ctx.Ctx, op *executor.Op) error {
		it, err := im.itemRepo.FindOne(tc, id)
		if err != nil {
			return err
		}
		now := im.now()
		if err := admit(it, amount, now); err != nil {
			return err
		}

		if err := op.Apply(tc, "collect:"+caller.String(),
			func(sc ctx.Ctx) error { return im.ledger.Collect(sc, caller, amount) },
			func(sc ctx.Ctx) error { return im.ledger.Pay(sc, caller, amount) },
		); err != nil {
			return err
		}

		prev, err := im.bidRepo.RecordBid(tc, id, caller, amount)
		if err != nil {
			tc.WithFields(log.Fields{"err": err, "itemId": id, "bidder": caller}).Error("bidRepo.RecordBid failed")
			return err
		}

		// the superseded commitment of a repeat bidder goes back right away
		if prev.Sign() > 0 {
			if err := op.Apply(tc, "refund:"+caller.String(),
				func(sc ctx.Ctx) error { return im.ledger.Pay(sc, caller, prev) },
				func(sc ctx.Ctx) error { return im.ledger.Collect(sc, caller, prev) },
			); err != nil {
				return err
			}
		}

		it.HighestBid = amount
		it.HighestBidder = caller
		it.UpdatedAt = now
		if err := im.itemRepo.Update(tc, id, item.PatchableItem{
			HighestBid:    &amount,
			HighestBidder: &caller,
			UpdatedAt:     ptr.Time(now),
		}); err != nil {
			tc.WithFields(log.Fields{"err": err, "itemId": id}).Error("itemRepo.Update failed")
			return err
		}

		op.Emit(id, notification.BidPlaced{ItemId: id, Bidder: caller, Amount: amount})
		res = it
		return nil
	})
	if err != nil {
		im.met.BumpSum("bid.err", 1)
		return nil, err
	}
	return res, nil
}

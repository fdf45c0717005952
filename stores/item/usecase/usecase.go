package usecase

import (
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/auction"
	"github.com/x-xyz/escrowapi/domain/bid"
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/domain/item"
	"github.com/x-xyz/escrowapi/domain/notification"
	"github.com/x-xyz/escrowapi/domain/settlement"
	"github.com/x-xyz/escrowapi/service/executor"
)

type ItemUseCaseCfg struct {
	ItemRepo   item.Repo
	BidRepo    bid.Repo
	Custodian  custody.Custodian
	Auction    auction.UseCase
	Settlement settlement.UseCase
	Executor   executor.Executor
	// Verifier is optional, it cross checks listings against the chain
	Verifier    custody.Verifier
	Marketplace domain.Address
}

type impl struct {
	itemRepo    item.Repo
	bidRepo     bid.Repo
	custodian   custody.Custodian
	auction     auction.UseCase
	settlement  settlement.UseCase
	executor    executor.Executor
	verifier    custody.Verifier
	marketplace domain.Address
	met         metrics.Service
}

func New(cfg *ItemUseCaseCfg) item.UseCase {
	return &impl{
		itemRepo:    cfg.ItemRepo,
		bidRepo:     cfg.BidRepo,
		custodian:   cfg.Custodian,
		auction:     cfg.Auction,
		settlement:  cfg.Settlement,
		executor:    cfg.Executor,
		verifier:    cfg.Verifier,
		marketplace: cfg.Marketplace.ToLower(),
		met:         metrics.New("item"),
	}
}

func (im *impl) ListItem(c ctx.Ctx, caller domain.Address, nft domain.Address, tokenId domain.TokenId, startPrice domain.Amount) (*item.Item, error) {
	defer im.met.BumpTime("list.time").End()

	if startPrice.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	caller = caller.ToLower()
	nft = nft.ToLower()

	if im.verifier != nil {
		if err := im.verifier.VerifyListing(c, nft, tokenId, caller); err != nil {
			c.WithFields(log.Fields{"err": err, "nft": nft, "tokenId": tokenId}).Warn("verifier.VerifyListing failed")
			im.met.BumpSum("list.err", 1)
			return nil, err
		}
	}

	var res *item.Item
	err := im.executor.Execute(c, executor.RegistryKey(), func(tc ctx.Ctx, op *executor.Op) error {
		if err := op.Apply(tc, "custody:"+caller.String(),
			func(sc ctx.Ctx) error {
				return im.custodian.TransferCustody(sc, caller, im.marketplace, nft, tokenId)
			},
			func(sc ctx.Ctx) error {
				return im.custodian.TransferCustody(sc, im.marketplace, caller, nft, tokenId)
			},
		); err != nil {
			return err
		}

		id, err := im.itemRepo.NextId(tc)
		if err != nil {
			tc.WithField("err", err).Error("itemRepo.NextId failed")
			return err
		}

		now := time.Now()
		it := item.Item{
			ItemId:        id,
			Nft:           nft,
			TokenId:       tokenId,
			Seller:        caller,
			StartPrice:    startPrice,
			HighestBidder: domain.EmptyAddress,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := im.itemRepo.Create(tc, it); err != nil {
			tc.WithFields(log.Fields{"err": err, "itemId": id}).Error("itemRepo.Create failed")
			return err
		}

		op.Emit(id, notification.Listing{
			ItemId:        id,
			Nft:           nft,
			TokenId:       tokenId,
			StartPrice:    startPrice,
			Seller:        caller,
			HighestBidder: domain.EmptyAddress,
		})
		res = &it
		return nil
	})
	if err != nil {
		im.met.BumpSum("list.err", 1)
		return nil, err
	}
	return res, nil
}

func (im *impl) ItemCount(c ctx.Ctx) (int, error) {
	n, err := im.itemRepo.Count(c)
	if err != nil {
		c.WithField("err", err).Error("itemRepo.Count failed")
		return 0, err
	}
	return n, nil
}

func (im *impl) GetItem(c ctx.Ctx, id domain.ItemId) (*item.Item, error) {
	return im.itemRepo.FindOne(c, id)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...item.FindAllOptionsFunc) ([]item.Item, error) {
	res, err := im.itemRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("itemRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) StartAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId, duration time.Duration) (*item.Item, error) {
	return im.auction.StartAuction(c, caller, id, duration)
}

func (im *impl) StopAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*item.Item, error) {
	return im.auction.StopAuction(c, caller, id)
}

func (im *impl) Bid(c ctx.Ctx, caller domain.Address, id domain.ItemId, amount domain.Amount) (*item.Item, error) {
	return im.auction.Bid(c, caller, id, amount)
}

func (im *impl) EndAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*settlement.Receipt, error) {
	return im.settlement.EndAuction(c, caller, id)
}

func (im *impl) GetBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address) (domain.Amount, error) {
	return im.bidRepo.GetBid(c, id, bidder)
}

func (im *impl) GetBidderAt(c ctx.Ctx, id domain.ItemId, index int) (domain.Address, error) {
	return im.bidRepo.GetBidderAt(c, id, index)
}

func (im *impl) GetBids(c ctx.Ctx, id domain.ItemId) ([]bid.Record, error) {
	if _, err := im.itemRepo.FindOne(c, id); err != nil {
		return nil, err
	}
	res, err := im.bidRepo.FindAll(c, id)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id}).Error("bidRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

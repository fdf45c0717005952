package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/base/ptr"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/bid"
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/domain/item"
	"github.com/x-xyz/escrowapi/domain/notification"
	"github.com/x-xyz/escrowapi/domain/settlement"
	"github.com/x-xyz/escrowapi/domain/wallet"
	"github.com/x-xyz/escrowapi/service/executor"
)

type SettlementUseCaseCfg struct {
	ItemRepo  item.Repo
	BidRepo   bid.Repo
	Ledger    wallet.Ledger
	Custodian custody.Custodian
	Executor  executor.Executor
	// Marketplace holds the escrowed asset until settlement
	Marketplace domain.Address
}

type impl struct {
	itemRepo    item.Repo
	bidRepo     bid.Repo
	ledger      wallet.Ledger
	custodian   custody.Custodian
	executor    executor.Executor
	marketplace domain.Address
	met         metrics.Service
}

func New(cfg *SettlementUseCaseCfg) settlement.UseCase {
	return &impl{
		itemRepo:    cfg.ItemRepo,
		bidRepo:     cfg.BidRepo,
		ledger:      cfg.Ledger,
		custodian:   cfg.Custodian,
		executor:    cfg.Executor,
		marketplace: cfg.Marketplace.ToLower(),
		met:         metrics.New("settlement"),
	}
}

// Plan lists the movements out of escrow that conclude the auction of it.
// Every bidder except the highest is refunded in bidder list order, then the
// seller is paid and the asset goes to the winner. Without bids the asset goes
// back to the seller.
func Plan(it *item.Item, records []bid.Record) []settlement.Step {
	asset := settlement.Step{Kind: settlement.StepAsset, Nft: it.Nft, TokenId: it.TokenId}
	if it.HighestBidder.IsEmpty() {
		asset.To = it.Seller
		return []settlement.Step{asset}
	}

	steps := make([]settlement.Step, 0, len(records)+1)
	for _, r := range records {
		if r.Bidder.Equals(it.HighestBidder) || r.Amount.Sign() <= 0 {
			continue
		}
		steps = append(steps, settlement.Step{Kind: settlement.StepRefund, To: r.Bidder, Amount: r.Amount})
	}
	steps = append(steps, settlement.Step{Kind: settlement.StepPayout, To: it.Seller, Amount: it.HighestBid})
	asset.To = it.HighestBidder
	return append(steps, asset)
}

func (im *impl) apply(c ctx.Ctx, op *executor.Op, s settlement.Step) error {
	name := string(s.Kind) + ":" + s.To.String()
	if s.Kind == settlement.StepAsset {
		return op.Apply(c, name,
			func(sc ctx.Ctx) error {
				return im.custodian.TransferCustody(sc, im.marketplace, s.To, s.Nft, s.TokenId)
			},
			func(sc ctx.Ctx) error {
				return im.custodian.TransferCustody(sc, s.To, im.marketplace, s.Nft, s.TokenId)
			},
		)
	}
	return op.Apply(c, name,
		func(sc ctx.Ctx) error { return im.ledger.Pay(sc, s.To, s.Amount) },
		func(sc ctx.Ctx) error { return im.ledger.Collect(sc, s.To, s.Amount) },
	)
}

func (im *impl) EndAuction(c ctx.Ctx, caller domain.Address, id domain.ItemId) (*settlement.Receipt, error) {
	defer im.met.BumpTime("end.time").End()

	var res *settlement.Receipt
	err := im.executor.Execute(c, executor.ItemKey(id), func(tc ctx.Ctx, op *executor.Op) error {
		it, err := im.itemRepo.FindOne(tc, id)
		if err != nil {
			return err
		}
		if it.IsSold {
			return domain.ErrAlreadySold
		}

		records, err := im.bidRepo.FindAll(tc, id)
		if err != nil {
			tc.WithFields(log.Fields{"err": err, "itemId": id}).Error("bidRepo.FindAll failed")
			return err
		}

		steps := Plan(it, records)
		for i, s := range steps {
			if err := im.apply(tc, op, s); err != nil {
				tc.WithFields(log.Fields{"err": err, "itemId": id, "step": i, "kind": s.Kind}).Error("settlement step failed")
				return xerrors.Errorf("settle item %d step %d: %w", id, i, err)
			}
		}

		winner := domain.EmptyAddress
		if !it.HighestBidder.IsEmpty() {
			winner = it.HighestBidder
		}
		if err := im.itemRepo.Update(tc, id, item.PatchableItem{
			IsSold:        ptr.Bool(true),
			IsStarted:     ptr.Bool(false),
			HighestBidder: &winner,
			UpdatedAt:     ptr.Time(time.Now()),
		}); err != nil {
			tc.WithFields(log.Fields{"err": err, "itemId": id}).Error("itemRepo.Update failed")
			return err
		}

		op.Emit(id, notification.AuctionEnded{ItemId: id, Winner: winner, Amount: it.HighestBid})
		res = &settlement.Receipt{
			ItemId:     id,
			Seller:     it.Seller,
			Winner:     winner,
			WinningBid: it.HighestBid,
			Steps:      steps,
		}
		return nil
	})
	if err != nil {
		im.met.BumpSum("end.err", 1)
		return nil, err
	}
	c.WithFields(log.Fields{"itemId": id, "caller": caller, "winner": res.Winner}).Info("auction settled")
	return res, nil
}

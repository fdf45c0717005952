package usecase

import (
	"errors"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/wallet"
)

type WalletUseCaseCfg struct {
	Repo wallet.Repo
	// Escrow is the account holding bids until settlement
	Escrow     domain.Address
	Transactor domain.Transactor
}

type impl struct {
	repo   wallet.Repo
	escrow domain.Address
	tx     domain.Transactor
	met    metrics.Service
}

// New returns the currency ledger. Collect and Pay join the transaction carried
// by their ctx, Deposit opens its own.
func New(cfg *WalletUseCaseCfg) wallet.UseCase {
	return &impl{
		repo:   cfg.Repo,
		escrow: cfg.Escrow.ToLower(),
		tx:     cfg.Transactor,
		met:    metrics.New("wallet"),
	}
}

func (im *impl) BalanceOf(c ctx.Ctx, address domain.Address) (domain.Amount, error) {
	b, err := im.repo.FindOne(c, address)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Amount{}, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("repo.FindOne failed")
		return domain.Amount{}, err
	}
	return b.Amount, nil
}

func (im *impl) credit(c ctx.Ctx, to domain.Address, amount domain.Amount) (domain.Amount, error) {
	bal, err := im.BalanceOf(c, to)
	if err != nil {
		return domain.Amount{}, err
	}
	bal = bal.Add(amount)
	if err := im.repo.Upsert(c, wallet.Balance{Address: to, Amount: bal, UpdatedAt: time.Now()}); err != nil {
		c.WithFields(log.Fields{"err": err, "address": to}).Error("repo.Upsert failed")
		return domain.Amount{}, err
	}
	return bal, nil
}

func (im *impl) debit(c ctx.Ctx, from domain.Address, amount domain.Amount) error {
	bal, err := im.BalanceOf(c, from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return xerrors.Errorf("%s holds %s, needs %s: %w", from, bal, amount, domain.ErrInsufficientBalance)
	}
	if err := im.repo.Upsert(c, wallet.Balance{Address: from, Amount: bal.Sub(amount), UpdatedAt: time.Now()}); err != nil {
		c.WithFields(log.Fields{"err": err, "address": from}).Error("repo.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) move(c ctx.Ctx, from, to domain.Address, amount domain.Amount) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if amount.IsZero() || from.Equals(to) {
		return nil
	}
	if err := im.debit(c, from, amount); err != nil {
		return err
	}
	_, err := im.credit(c, to, amount)
	return err
}

func (im *impl) Collect(c ctx.Ctx, from domain.Address, amount domain.Amount) error {
	defer im.met.BumpTime("collect.time").End()
	if err := im.move(c, from, im.escrow, amount); err != nil {
		im.met.BumpSum("collect.err", 1)
		return err
	}
	return nil
}

func (im *impl) Pay(c ctx.Ctx, to domain.Address, amount domain.Amount) error {
	defer im.met.BumpTime("pay.time").End()
	if err := im.move(c, im.escrow, to, amount); err != nil {
		im.met.BumpSum("pay.err", 1)
		return err
	}
	return nil
}

func (im *impl) Deposit(c ctx.Ctx, to domain.Address, amount domain.Amount) (domain.Amount, error) {
	if amount.Sign() <= 0 {
		return domain.Amount{}, domain.ErrInvalidAmount
	}
	var bal domain.Amount
	err := im.tx.RunWithTransaction(c, func(tc ctx.Ctx) error {
		var err error
		bal, err = im.credit(tc, to, amount)
		return err
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "address": to}).Error("deposit failed")
		return domain.Amount{}, err
	}
	return bal, nil
}

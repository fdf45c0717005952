package wallet

import (
	"time"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
)

type Balance struct {
	Address   domain.Address `json:"address" bson:"address"`
	Amount    domain.Amount  `json:"amount" bson:"amount"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

type Repo interface {
	// FindOne returns domain.ErrNotFound for an address never credited
	FindOne(c ctx.Ctx, address domain.Address) (*Balance, error)
	Upsert(c ctx.Ctx, b Balance) error
}

// Ledger is the currency primitive used for escrow. Every call either fully
// succeeds or fails without effect.
type Ledger interface {
	// Collect moves amount from the account of from into escrow
	Collect(c ctx.Ctx, from domain.Address, amount domain.Amount) error
	// Pay moves amount out of escrow to the account of to
	Pay(c ctx.Ctx, to domain.Address, amount domain.Amount) error
}

type UseCase interface {
	Ledger
	BalanceOf(c ctx.Ctx, address domain.Address) (domain.Amount, error)
	// Deposit credits an account from outside the marketplace
	Deposit(c ctx.Ctx, to domain.Address, amount domain.Amount) (domain.Amount, error)
}

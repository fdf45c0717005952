package domain

import "github.com/x-xyz/escrowapi/base/ctx"

// ItemId is the catalog identity of a listed item, assigned from 1 upwards
type ItemId int64

// Transactor runs fn as one atomic unit of store writes. Writes issued with the
// ctx handed to fn are discarded when fn returns an error.
type Transactor interface {
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
}

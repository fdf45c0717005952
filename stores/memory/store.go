// Package memory keeps the whole marketplace state in process. It backs the
// memory store driver and the usecase tests. Transactions and writes outside a
// transaction are serialized, reads may observe uncommitted writes.
package memory

import (
	"context"
	"sync"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/bid"
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/domain/item"
	"github.com/x-xyz/escrowapi/domain/notification"
	"github.com/x-xyz/escrowapi/domain/wallet"
)

type txKey struct{}

type assetKey struct {
	nft     domain.Address
	tokenId domain.TokenId
}

type approvalKey struct {
	nft      domain.Address
	owner    domain.Address
	operator domain.Address
}

type state struct {
	seq           int64
	items         map[domain.ItemId]item.Item
	bids          map[domain.ItemId][]bid.Record
	balances      map[domain.Address]wallet.Balance
	owners        map[assetKey]custody.Ownership
	approvals     map[approvalKey]custody.Approval
	notifications map[domain.ItemId][]notification.Notification
}

func newState() state {
	return state{
		items:         map[domain.ItemId]item.Item{},
		bids:          map[domain.ItemId][]bid.Record{},
		balances:      map[domain.Address]wallet.Balance{},
		owners:        map[assetKey]custody.Ownership{},
		approvals:     map[approvalKey]custody.Approval{},
		notifications: map[domain.ItemId][]notification.Notification{},
	}
}

func (s state) clone() state {
	res := newState()
	res.seq = s.seq
	for k, v := range s.items {
		res.items[k] = v
	}
	for k, v := range s.bids {
		res.bids[k] = append([]bid.Record(nil), v...)
	}
	for k, v := range s.balances {
		res.balances[k] = v
	}
	for k, v := range s.owners {
		res.owners[k] = v
	}
	for k, v := range s.approvals {
		res.approvals[k] = v
	}
	for k, v := range s.notifications {
		res.notifications[k] = append([]notification.Notification(nil), v...)
	}
	return res
}

// Store implements every repository of the marketplace and domain.Transactor
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	st   state

	// FailWrite, when set, is asked before every write and aborts it with the
	// returned error. op is "<repo>.<method>".
	FailWrite func(op string) error
}

func New() *Store {
	return &Store{st: newState()}
}

func noop() {}

// write admits one write. Outside a transaction it holds txMu until release so
// that a concurrent rollback cannot restore a snapshot taken before it.
func (s *Store) write(c ctx.Ctx, op string) (release func(), err error) {
	if s.FailWrite != nil {
		if err := s.FailWrite(op); err != nil {
			return noop, err
		}
	}
	if c.Value(txKey{}) != nil {
		return noop, nil
	}
	s.txMu.Lock()
	return s.txMu.Unlock, nil
}

func (s *Store) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	if c.Value(txKey{}) != nil {
		return fn(c)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	tc := ctx.WithContext(c, context.WithValue(c.Context, txKey{}, true))
	if err := fn(tc); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Items() item.Repo {
	return &itemRepo{s}
}

func (s *Store) Bids() bid.Repo {
	return &bidRepo{s}
}

func (s *Store) Wallets() wallet.Repo {
	return &walletRepo{s}
}

func (s *Store) Custody() custody.Repo {
	return &custodyRepo{s}
}

func (s *Store) Notifications() notification.Repo {
	return &notificationRepo{s}
}

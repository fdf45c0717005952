package memory

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/wallet"
)

type walletRepo struct {
	s *Store
}

func (r *walletRepo) FindOne(c ctx.Ctx, address domain.Address) (*wallet.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.balances[address.ToLower()]
	if !ok {
		return nil, xerrors.Errorf("wallet %s: %w", address, domain.ErrNotFound)
	}
	return &b, nil
}

func (r *walletRepo) Upsert(c ctx.Ctx, b wallet.Balance) error {
	release, err := r.s.write(c, "wallets.Upsert")
	if err != nil {
		return err
	}
	defer release()
	b.Address = b.Address.ToLower()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.balances[b.Address] = b
	return nil
}

package memory

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/custody"
)

type custodyRepo struct {
	s *Store
}

func (r *custodyRepo) FindOwnership(c ctx.Ctx, nft domain.Address, tokenId domain.TokenId) (*custody.Ownership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.owners[assetKey{nft.ToLower(), tokenId}]
	if !ok {
		return nil, xerrors.Errorf("%s/%s: %w", nft, tokenId, domain.ErrAssetNotFound)
	}
	return &o, nil
}

func (r *custodyRepo) UpsertOwnership(c ctx.Ctx, o custody.Ownership) error {
	release, err := r.s.write(c, "custody.UpsertOwnership")
	if err != nil {
		return err
	}
	defer release()
	o.Nft = o.Nft.ToLower()
	o.Owner = o.Owner.ToLower()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.owners[assetKey{o.Nft, o.TokenId}] = o
	return nil
}

func (r *custodyRepo) FindApproval(c ctx.Ctx, nft, owner, operator domain.Address) (*custody.Approval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.approvals[approvalKey{nft.ToLower(), owner.ToLower(), operator.ToLower()}]
	if !ok {
		return nil, xerrors.Errorf("approval %s: %w", nft, domain.ErrNotFound)
	}
	return &a, nil
}

func (r *custodyRepo) UpsertApproval(c ctx.Ctx, a custody.Approval) error {
	release, err := r.s.write(c, "custody.UpsertApproval")
	if err != nil {
		return err
	}
	defer release()
	a.Nft = a.Nft.ToLower()
	a.Owner = a.Owner.ToLower()
	a.Operator = a.Operator.ToLower()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.approvals[approvalKey{a.Nft, a.Owner, a.Operator}] = a
	return nil
}

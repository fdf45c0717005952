package memory

import (
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/item"
)

type itemRepo struct {
	s *Store
}

func match(it item.Item, o item.FindAllOptions) bool {
	if o.Seller != nil && !it.Seller.Equals(*o.Seller) {
		return false
	}
	if o.Nft != nil && !it.Nft.Equals(*o.Nft) {
		return false
	}
	if o.TokenId != nil && it.TokenId != *o.TokenId {
		return false
	}
	if o.IsSold != nil && it.IsSold != *o.IsSold {
		return false
	}
	if o.IsStarted != nil && it.IsStarted != *o.IsStarted {
		return false
	}
	return true
}

func (r *itemRepo) FindAll(c ctx.Ctx, opts ...item.FindAllOptionsFunc) ([]item.Item, error) {
	o, err := item.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	res := []item.Item{}
	for _, it := range r.s.st.items {
		if match(it, o) {
			res = append(res, it)
		}
	}
	r.s.mu.Unlock()

	desc := o.Sort != nil && strings.HasPrefix(*o.Sort, "-")
	sort.Slice(res, func(i, j int) bool {
		if desc {
			return res[i].ItemId > res[j].ItemId
		}
		return res[i].ItemId < res[j].ItemId
	})

	if o.Offset != nil {
		if int(*o.Offset) >= len(res) {
			return []item.Item{}, nil
		}
		res = res[*o.Offset:]
	}
	if o.Limit != nil && *o.Limit > 0 && int(*o.Limit) < len(res) {
		res = res[:*o.Limit]
	}
	return res, nil
}

func (r *itemRepo) FindOne(c ctx.Ctx, id domain.ItemId) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.st.items[id]
	if !ok {
		return nil, xerrors.Errorf("item %d: %w", id, domain.ErrItemNotFound)
	}
	return &it, nil
}

func (r *itemRepo) Create(c ctx.Ctx, it item.Item) error {
	release, err := r.s.write(c, "items.Create")
	if err != nil {
		return err
	}
	defer release()
	it.ToLower()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.items[it.ItemId]; ok {
		return xerrors.Errorf("item %d exists: %w", it.ItemId, domain.ErrBadParamInput)
	}
	r.s.st.items[it.ItemId] = it
	return nil
}

func (r *itemRepo) Update(c ctx.Ctx, id domain.ItemId, patch item.PatchableItem) error {
	release, err := r.s.write(c, "items.Update")
	if err != nil {
		return err
	}
	defer release()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.st.items[id]
	if !ok {
		return xerrors.Errorf("item %d: %w", id, domain.ErrItemNotFound)
	}
	if patch.IsStarted != nil {
		it.IsStarted = *patch.IsStarted
	}
	if patch.AuctionEndTime != nil {
		it.AuctionEndTime = *patch.AuctionEndTime
	}
	if patch.IsSold != nil {
		it.IsSold = *patch.IsSold
	}
	if patch.HighestBid != nil {
		it.HighestBid = *patch.HighestBid
	}
	if patch.HighestBidder != nil {
		it.HighestBidder = patch.HighestBidder.ToLower()
	}
	if patch.UpdatedAt != nil {
		it.UpdatedAt = *patch.UpdatedAt
	}
	r.s.st.items[id] = it
	return nil
}

func (r *itemRepo) NextId(c ctx.Ctx) (domain.ItemId, error) {
	release, err := r.s.write(c, "items.NextId")
	if err != nil {
		return 0, err
	}
	defer release()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.seq++
	return domain.ItemId(r.s.st.seq), nil
}

func (r *itemRepo) Count(c ctx.Ctx) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int(r.s.st.seq), nil
}

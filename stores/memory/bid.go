package memory

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/bid"
)

type bidRepo struct {
	s *Store
}

func (r *bidRepo) RecordBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address, amount domain.Amount) (domain.Amount, error) {
	release, err := r.s.write(c, "bids.RecordBid")
	if err != nil {
		return domain.Amount{}, err
	}
	defer release()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	records := r.s.st.bids[id]
	for i, rec := range records {
		if rec.Bidder.Equals(bidder) {
			prev := rec.Amount
			records[i].Amount = amount
			records[i].UpdatedAt = now
			return prev, nil
		}
	}
	r.s.st.bids[id] = append(records, bid.Record{
		ItemId:    id,
		Bidder:    bidder.ToLower(),
		Amount:    amount,
		Index:     len(records),
		CreatedAt: now,
		UpdatedAt: now,
	})
	return domain.Amount{}, nil
}

func (r *bidRepo) GetBid(c ctx.Ctx, id domain.ItemId, bidder domain.Address) (domain.Amount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.st.bids[id] {
		if rec.Bidder.Equals(bidder) {
			return rec.Amount, nil
		}
	}
	return domain.Amount{}, nil
}

func (r *bidRepo) GetBidderAt(c ctx.Ctx, id domain.ItemId, index int) (domain.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	records := r.s.st.bids[id]
	if index < 0 || index >= len(records) {
		return "", xerrors.Errorf("item %d index %d: %w", id, index, domain.ErrIndexOutOfRange)
	}
	return records[index].Bidder, nil
}

func (r *bidRepo) Count(c ctx.Ctx, id domain.ItemId) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.st.bids[id]), nil
}

func (r *bidRepo) FindAll(c ctx.Ctx, id domain.ItemId) ([]bid.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]bid.Record{}, r.s.st.bids[id]...), nil
}

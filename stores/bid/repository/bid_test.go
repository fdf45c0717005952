package repository

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/database/mongoclient"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/bid"
	"github.com/x-xyz/escrowapi/service/query"
)

var (
	mockCtx = ctx.Background()
)

type bidSuite struct {
	suite.Suite
	im bid.Repo
	id domain.ItemId
}

func (s *bidSuite) SetupSuite() {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		s.T().Skip("TEST_MONGO_URI not set")
	}
	mongoClient := mongoclient.MustConnectMongoClient(uri, "admin", "escrow_test", false, true, 2)
	s.im = New(query.New(mongoClient, false))
}

func (s *bidSuite) SetupTest() {
	// a fresh item per test keeps the ledger empty
	s.id = domain.ItemId(time.Now().UnixNano())
}

func TestBidSuite(t *testing.T) {
	suite.Run(t, new(bidSuite))
}

func (s *bidSuite) TestRecordBid() {
	prev, err := s.im.RecordBid(mockCtx, s.id, "0xA", domain.NewAmount(2))
	s.NoError(err)
	s.True(prev.IsZero())

	_, err = s.im.RecordBid(mockCtx, s.id, "0xB", domain.NewAmount(5))
	s.NoError(err)

	prev, err = s.im.RecordBid(mockCtx, s.id, "0xa", domain.NewAmount(6))
	s.NoError(err)
	s.Equal("2", prev.String())

	amount, err := s.im.GetBid(mockCtx, s.id, "0xA")
	s.NoError(err)
	s.Equal("6", amount.String())

	cnt, err := s.im.Count(mockCtx, s.id)
	s.NoError(err)
	s.Equal(2, cnt)

	first, err := s.im.GetBidderAt(mockCtx, s.id, 0)
	s.NoError(err)
	s.Equal(domain.Address("0xa"), first)

	_, err = s.im.GetBidderAt(mockCtx, s.id, 2)
	s.ErrorIs(err, domain.ErrIndexOutOfRange)

	records, err := s.im.FindAll(mockCtx, s.id)
	s.NoError(err)
	s.Len(records, 2)
	s.Equal(0, records[0].Index)
	s.Equal(1, records[1].Index)
}

func (s *bidSuite) TestGetBidNeverBid() {
	amount, err := s.im.GetBid(mockCtx, s.id, "0xC")
	s.NoError(err)
	s.True(amount.IsZero())
}

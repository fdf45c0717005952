package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/stores/memory"
)

var (
	mockCtx     = ctx.Background()
	marketplace = domain.Address("0x00000000000000000000000000000000000e5c40")
	nft         = domain.Address("0x71c4658acc7b53ee814a29ce31100ff85ca23ca7")
)

type custodySuite struct {
	suite.Suite
	im custody.UseCase
}

func (s *custodySuite) SetupTest() {
	store := memory.New()
	s.im = New(&CustodyUseCaseCfg{
		Repo:       store.Custody(),
		Operator:   marketplace,
		Transactor: store,
	})
	s.Require().NoError(s.im.Deposit(mockCtx, nft, "1", "0xSeller"))
}

func TestCustodySuite(t *testing.T) {
	suite.Run(t, new(custodySuite))
}

func (s *custodySuite) TestOwnerOf() {
	owner, err := s.im.OwnerOf(mockCtx, nft, "1")
	s.NoError(err)
	s.Equal(domain.Address("0xseller"), owner)

	_, err = s.im.OwnerOf(mockCtx, nft, "2")
	s.True(errors.Is(err, domain.ErrAssetNotFound))
}

func (s *custodySuite) TestDepositTwice() {
	err := s.im.Deposit(mockCtx, nft, "1", "0xother")
	s.True(errors.Is(err, domain.ErrBadParamInput))
}

func (s *custodySuite) TestTransferRequiresApproval() {
	err := s.im.TransferCustody(mockCtx, "0xseller", marketplace, nft, "1")
	s.True(errors.Is(err, domain.ErrTransferNotAuthorized))

	s.NoError(s.im.SetApprovalForAll(mockCtx, nft, "0xseller", marketplace, true))
	ok, err := s.im.IsApprovedForAll(mockCtx, nft, "0xSELLER", marketplace)
	s.NoError(err)
	s.True(ok)

	s.NoError(s.im.TransferCustody(mockCtx, "0xseller", marketplace, nft, "1"))
	owner, _ := s.im.OwnerOf(mockCtx, nft, "1")
	s.Equal(marketplace, owner)

	// the marketplace moves what it holds without approval
	s.NoError(s.im.TransferCustody(mockCtx, marketplace, "0xwinner", nft, "1"))
	owner, _ = s.im.OwnerOf(mockCtx, nft, "1")
	s.Equal(domain.Address("0xwinner"), owner)
}

func (s *custodySuite) TestTransferFromNonOwner() {
	s.NoError(s.im.SetApprovalForAll(mockCtx, nft, "0xthief", marketplace, true))
	err := s.im.TransferCustody(mockCtx, "0xthief", marketplace, nft, "1")
	s.True(errors.Is(err, domain.ErrTransferNotAuthorized))
}

func (s *custodySuite) TestRevokedApproval() {
	s.NoError(s.im.SetApprovalForAll(mockCtx, nft, "0xseller", marketplace, true))
	s.NoError(s.im.SetApprovalForAll(mockCtx, nft, "0xseller", marketplace, false))
	err := s.im.TransferCustody(mockCtx, "0xseller", marketplace, nft, "1")
	s.True(errors.Is(err, domain.ErrTransferNotAuthorized))
}

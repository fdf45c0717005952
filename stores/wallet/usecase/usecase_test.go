package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/wallet"
	"github.com/x-xyz/escrowapi/stores/memory"
)

var (
	mockCtx = ctx.Background()
	escrow  = domain.Address("0x00000000000000000000000000000000000e5c40")
)

type walletSuite struct {
	suite.Suite
	store *memory.Store
	im    wallet.UseCase
}

func (s *walletSuite) SetupTest() {
	s.store = memory.New()
	s.im = New(&WalletUseCaseCfg{
		Repo:       s.store.Wallets(),
		Escrow:     escrow,
		Transactor: s.store,
	})
}

func TestWalletSuite(t *testing.T) {
	suite.Run(t, new(walletSuite))
}

func (s *walletSuite) balance(a domain.Address) string {
	b, err := s.im.BalanceOf(mockCtx, a)
	s.Require().NoError(err)
	return b.String()
}

func (s *walletSuite) TestDeposit() {
	s.Equal("0", s.balance("0xa"))

	bal, err := s.im.Deposit(mockCtx, "0xA", domain.NewAmount(10))
	s.NoError(err)
	s.Equal("10", bal.String())
	bal, err = s.im.Deposit(mockCtx, "0xa", domain.NewAmount(5))
	s.NoError(err)
	s.Equal("15", bal.String())

	_, err = s.im.Deposit(mockCtx, "0xa", domain.NewAmount(0))
	s.Equal(domain.ErrInvalidAmount, err)
}

func (s *walletSuite) TestCollectPay() {
	_, err := s.im.Deposit(mockCtx, "0xa", domain.NewAmount(10))
	s.NoError(err)

	s.NoError(s.im.Collect(mockCtx, "0xa", domain.NewAmount(4)))
	s.Equal("6", s.balance("0xa"))
	s.Equal("4", s.balance(escrow))

	s.NoError(s.im.Pay(mockCtx, "0xb", domain.NewAmount(3)))
	s.Equal("1", s.balance(escrow))
	s.Equal("3", s.balance("0xb"))
}

func (s *walletSuite) TestInsufficientBalance() {
	_, err := s.im.Deposit(mockCtx, "0xa", domain.NewAmount(1))
	s.NoError(err)

	err = s.im.Collect(mockCtx, "0xa", domain.NewAmount(2))
	s.True(errors.Is(err, domain.ErrInsufficientBalance))
	s.True(domain.IsTransferError(err))
	s.Equal("1", s.balance("0xa"))

	err = s.im.Pay(mockCtx, "0xb", domain.NewAmount(1))
	s.True(errors.Is(err, domain.ErrInsufficientBalance))
}

func (s *walletSuite) TestFailedCreditLeavesNoTrace() {
	_, err := s.im.Deposit(mockCtx, "0xa", domain.NewAmount(5))
	s.NoError(err)

	calls := 0
	boom := errors.New("write failed")
	s.store.FailWrite = func(op string) error {
		calls++
		// debit succeeds, credit fails
		if calls == 2 {
			return boom
		}
		return nil
	}
	err = s.store.RunWithTransaction(mockCtx, func(c ctx.Ctx) error {
		return s.im.Collect(c, "0xa", domain.NewAmount(5))
	})
	s.Equal(boom, err)
	s.store.FailWrite = nil

	s.Equal("5", s.balance("0xa"))
	s.Equal("0", s.balance(escrow))
}

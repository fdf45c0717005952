package executor

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/notification"
	mNotification "github.com/x-xyz/escrowapi/domain/notification/mocks"
	"github.com/x-xyz/escrowapi/service/lock"
)

var (
	mockCtx = ctx.Background()
)

type stubTx struct {
	commitErr error
	attempts  int
}

func (t *stubTx) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	for i := 0; i < t.attempts; i++ {
		if err := fn(c); err != nil {
			return err
		}
	}
	return t.commitErr
}

type executorSuite struct {
	suite.Suite
	tx       *stubTx
	notifier *mNotification.UseCase
	im       Executor
}

func (s *executorSuite) SetupTest() {
	s.tx = &stubTx{attempts: 1}
	s.notifier = &mNotification.UseCase{}
	s.im = New(&ExecutorCfg{
		Locker:     lock.NewLocal(),
		Transactor: s.tx,
		Notifier:   s.notifier,
	})
}

func (s *executorSuite) TearDownTest() {
	s.notifier.AssertExpectations(s.T())
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(executorSuite))
}

func (s *executorSuite) TestCommit() {
	ev := notification.AuctionStarted{Started: true}
	ns := []notification.Notification{{ItemId: 1, Name: notification.NameStartAuction}}
	s.notifier.On("Record", mock.Anything, domain.ItemId(1), ev).Return(ns, nil).Once()
	s.notifier.On("Dispatch", mock.Anything, ns).Once()

	var undone bool
	err := s.im.Execute(mockCtx, "lock:item:1", func(c ctx.Ctx, op *Op) error {
		s.NoError(op.Apply(c, "open", func(ctx.Ctx) error { return nil }, func(ctx.Ctx) error {
			undone = true
			return nil
		}))
		op.Emit(1, ev)
		return nil
	})
	s.NoError(err)
	s.False(undone)
}

func (s *executorSuite) TestNoEventsNoDispatch() {
	err := s.im.Execute(mockCtx, "lock:item:1", func(c ctx.Ctx, op *Op) error {
		return nil
	})
	s.NoError(err)
}

func (s *executorSuite) TestFailureCompensatesInReverse() {
	boom := errors.New("pay failed")
	var order []string
	undo := func(name string) StepFunc {
		return func(ctx.Ctx) error {
			order = append(order, name)
			return nil
		}
	}

	err := s.im.Execute(mockCtx, "lock:item:1", func(c ctx.Ctx, op *Op) error {
		for _, name := range []string{"refund:a", "refund:b", "payout"} {
			if err := op.Apply(c, name, func(ctx.Ctx) error { return nil }, undo(name)); err != nil {
				return err
			}
		}
		if err := op.Apply(c, "asset", func(ctx.Ctx) error { return boom }, undo("asset")); err != nil {
			return err
		}
		op.Emit(1, notification.AuctionEnded{ItemId: 1})
		return nil
	})
	s.Equal(boom, err)
	s.Equal([]string{"payout", "refund:b", "refund:a"}, order)
}

func (s *executorSuite) TestRecordFailureCompensates() {
	boom := errors.New("insert failed")
	s.notifier.On("Record", mock.Anything, domain.ItemId(1), mock.Anything).Return(nil, boom).Once()

	undone := 0
	err := s.im.Execute(mockCtx, "lock:item:1", func(c ctx.Ctx, op *Op) error {
		s.NoError(op.Apply(c, "collect", func(ctx.Ctx) error { return nil }, func(ctx.Ctx) error {
			undone++
			return nil
		}))
		op.Emit(1, notification.BidPlaced{ItemId: 1})
		return nil
	})
	s.Equal(boom, err)
	s.Equal(1, undone)
}

func (s *executorSuite) TestCommitFailureSkipsCompensation() {
	boom := errors.New("commit failed")
	s.tx.commitErr = boom

	undone := 0
	err := s.im.Execute(mockCtx, "lock:item:1", func(c ctx.Ctx, op *Op) error {
		return op.Apply(c, "collect", func(ctx.Ctx) error { return nil }, func(ctx.Ctx) error {
			undone++
			return nil
		})
	})
	s.Equal(boom, err)
	s.Equal(0, undone)
}

func (s *executorSuite) TestRetriedCallbackStartsClean() {
	s.tx.attempts = 2
	ev := notification.BidPlaced{ItemId: 1}
	ns := []notification.Notification{{ItemId: 1, Name: notification.NameBid}}
	s.notifier.On("Record", mock.Anything, domain.ItemId(1), ev).Return(ns, nil).Twice()
	s.notifier.On("Dispatch", mock.Anything, ns).Once()

	var steps [][]string
	err := s.im.Execute(mockCtx, "lock:item:1", func(c ctx.Ctx, op *Op) error {
		s.NoError(op.Apply(c, "collect", func(ctx.Ctx) error { return nil }, nil))
		steps = append(steps, op.Steps())
		op.Emit(1, ev)
		return nil
	})
	s.NoError(err)
	s.Equal([][]string{{"collect"}, {"collect"}}, steps)
}

func (s *executorSuite) TestSerializedPerKey() {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.im.Execute(mockCtx, "lock:item:7", func(c ctx.Ctx, op *Op) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			}))
		}()
	}
	wg.Wait()
	s.Equal(1, maxSeen)
}

func (s *executorSuite) TestKeys() {
	s.Equal("lock:item:12", ItemKey(12))
	s.Equal("lock:registry", RegistryKey())
}

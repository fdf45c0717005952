package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestWithValue() {
	bg := Background()
	ctx := WithValue(bg, "foo", "bar")
	ts.Equal("bar", ctx.Value("foo"))
}

func (ts *testsuite) TestWithValues() {
	bg := Background()
	ctx := WithValues(bg, map[string]interface{}{
		"a": "b",
		"c": "d",
	})
	ts.Equal("b", ctx.Value("a"))
	ts.Equal("d", ctx.Value("c"))
}

func (ts *testsuite) TestWithCancel() {
	ctx, cancel := WithCancel(Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		ts.Fail("context not cancelled")
	}
	ts.Equal(context.Canceled, ctx.Err())
}

func (ts *testsuite) TestTimeout() {
	ctx, cancel := WithTimeout(Background(), 10*time.Millisecond)
	defer cancel()
	<-ctx.Done()
	ts.Equal("context deadline exceeded", ctx.Err().Error())
}

func (ts *testsuite) TestDetach() {
	parent, cancel := WithCancel(WithValue(Background(), "requestID", "abc"))
	cancel()

	detached := Detach(parent)
	ts.Error(parent.Err())
	ts.NoError(detached.Err())
	ts.Nil(detached.Value("requestID"))
}

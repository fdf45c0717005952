package redis

import (
	"sync"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/metrics"
)

var (
	mockCtx = ctx.Background()
)

// fakeConn answers commands from a reply table and records every command it sees
type fakeConn struct {
	mu      sync.Mutex
	cmds    [][]interface{}
	replies map[string]interface{}
}

func (c *fakeConn) Close() error { return nil }
func (c *fakeConn) Err() error   { return nil }

func (c *fakeConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	if cmd == "" {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cmds = append(c.cmds, append([]interface{}{cmd}, args...))
	return c.replies[cmd], nil
}

func (c *fakeConn) Send(cmd string, args ...interface{}) error { return nil }
func (c *fakeConn) Flush() error                               { return nil }
func (c *fakeConn) Receive() (interface{}, error)              { return nil, nil }

func (c *fakeConn) last() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cmds[len(c.cmds)-1]
}

type redisSuite struct {
	suite.Suite
	conn *fakeConn
	im   Service
}

func (s *redisSuite) SetupTest() {
	s.conn = &fakeConn{replies: map[string]interface{}{}}
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) { return s.conn, nil },
	}
	s.im = New("test", metrics.New("redis", metrics.WithoutPodName()), &Pools{Src: pool})
}

func TestRedisSuite(t *testing.T) {
	suite.Run(t, new(redisSuite))
}

func (s *redisSuite) TestGet() {
	_, err := s.im.Get(mockCtx, "nonce:0xabc")
	s.Equal(ErrNotFound, err)

	s.conn.replies["GET"] = []byte("42")
	val, err := s.im.Get(mockCtx, "nonce:0xabc")
	s.NoError(err)
	s.Equal([]byte("42"), val)
}

func (s *redisSuite) TestSet() {
	s.conn.replies["SET"] = "OK"
	s.NoError(s.im.Set(mockCtx, "k", []byte("v"), 2*time.Second))
	s.Equal([]interface{}{"SET", "k", []byte("v"), "PX", int64(2000)}, s.conn.last())

	s.NoError(s.im.Set(mockCtx, "k", []byte("v"), Forever))
	s.Equal([]interface{}{"SET", "k", []byte("v")}, s.conn.last())
}

func (s *redisSuite) TestSetNX() {
	ok, err := s.im.SetNX(mockCtx, "lock:item:1", []byte("token"), time.Second)
	s.NoError(err)
	s.False(ok)

	s.conn.replies["SET"] = "OK"
	ok, err = s.im.SetNX(mockCtx, "lock:item:1", []byte("token"), time.Second)
	s.NoError(err)
	s.True(ok)
	s.Equal([]interface{}{"SET", "lock:item:1", []byte("token"), "NX", "PX", int64(1000)}, s.conn.last())
}

func (s *redisSuite) TestPublish() {
	s.conn.replies["PUBLISH"] = int64(3)
	n, err := s.im.Publish(mockCtx, "notification:1", []byte("{}"))
	s.NoError(err)
	s.Equal(3, n)
}

func (s *redisSuite) TestDel() {
	s.NoError(s.im.Del(mockCtx))
	s.Empty(s.conn.cmds)

	s.conn.replies["DEL"] = int64(2)
	s.NoError(s.im.Del(mockCtx, "a", "b"))
	s.Equal([]interface{}{"DEL", "a", "b"}, s.conn.last())
}

func (s *redisSuite) TestNoPool() {
	im := New("empty", metrics.New("redis", metrics.WithoutPodName()), &Pools{})
	_, err := im.Get(mockCtx, "k")
	s.Equal(ErrGapTime, err)
}

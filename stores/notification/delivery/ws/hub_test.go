package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain/notification"
)

type hubSuite struct {
	suite.Suite
	hub *Hub
	srv *httptest.Server
}

func (s *hubSuite) SetupTest() {
	s.hub = NewHub()
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, s.hub)
	s.srv = httptest.NewServer(e)
}

func (s *hubSuite) TearDownTest() {
	s.hub.Close()
	s.srv.Close()
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(hubSuite))
}

func (s *hubSuite) dial(path string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return conn
}

func (s *hubSuite) TestStream() {
	conn := s.dial("/ws/items/7")
	defer conn.Close()
	other := s.dial("/ws/items/8")
	defer other.Close()

	s.Require().Eventually(func() bool {
		return s.hub.Count(7) == 1 && s.hub.Count(8) == 1
	}, 2*time.Second, 10*time.Millisecond)

	n := notification.Notification{EventId: "e1", ItemId: 7, Name: notification.NameStartAuction, Args: []interface{}{true}}
	s.NoError(s.hub.Publish(ctx.Background(), n))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	s.Require().NoError(err)

	var got notification.Notification
	s.NoError(json.Unmarshal(msg, &got))
	s.Equal("e1", got.EventId)
	s.Equal(notification.NameStartAuction, got.Name)

	// subscribers of other items get nothing
	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	s.Error(err)
}

func (s *hubSuite) TestDisconnectUnregisters() {
	conn := s.dial("/ws/items/3")
	s.Require().Eventually(func() bool { return s.hub.Count(3) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	s.Eventually(func() bool { return s.hub.Count(3) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func (s *hubSuite) TestInvalidId() {
	res, err := http.Get(s.srv.URL + "/ws/items/abc")
	s.Require().NoError(err)
	defer res.Body.Close()
	s.Equal(http.StatusBadRequest, res.StatusCode)
}

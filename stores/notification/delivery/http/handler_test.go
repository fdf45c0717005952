package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/notification"
	mNotification "github.com/x-xyz/escrowapi/domain/notification/mocks"
)

func newServer(nu notification.UseCase) *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, nu)
	return e
}

func TestGetEvents(t *testing.T) {
	req := require.New(t)
	nu := &mNotification.UseCase{}
	nu.On("FindAll", mock.Anything, domain.ItemId(3), 1, 2).Return([]notification.Notification{
		{EventId: "e2", ItemId: 3, Name: notification.NameBid},
	}, nil).Once()
	nu.On("FindAll", mock.Anything, domain.ItemId(3), -1, 0).Return(nil, domain.ErrBadParamInput).Once()
	e := newServer(nu)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/3/events?offset=1&limit=2", nil))
	req.Equal(http.StatusOK, rec.Code)

	var body struct {
		Data   []notification.Notification `json:"data"`
		Status string                      `json:"status"`
	}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.Equal("success", body.Status)
	req.Len(body.Data, 1)
	req.Equal("e2", body.Data[0].EventId)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/3/events?offset=-1", nil))
	req.Equal(http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/x/events", nil))
	req.Equal(http.StatusBadRequest, rec.Code)

	nu.AssertExpectations(t)
}

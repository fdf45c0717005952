package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// StatusOf maps an error class to its http status, falling back to status
func StatusOf(err error, status int) int {
	switch {
	case domain.IsNotFoundError(err) || errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case domain.IsValidationError(err),
		errors.Is(err, domain.ErrInsufficientBid),
		errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case domain.IsStateError(err):
		return http.StatusConflict
	case domain.IsAuthorizationError(err):
		return http.StatusForbidden
	case domain.IsTransferError(err):
		return http.StatusUnprocessableEntity
	}
	return status
}

// MakeJsonResp wraps data in the response envelope. An error is rendered by its
// message with the status of its class.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

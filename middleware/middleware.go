package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	"github.com/x-xyz/escrowapi/base/validator"
	"github.com/x-xyz/escrowapi/domain"
)

// GoMiddleware holds the middlewares shared by every route
type GoMiddleware struct {
	met metrics.Service
}

// InitMiddleware initialize the middleware
func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{
		met: metrics.New("http"),
	}
}

// AddContext stores a ctx.Ctx under "ctx" whose logger carries the request id
// and route of the request
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			cont := ctx.WithValues(ctx.Background(), map[string]interface{}{
				"requestID": requestID,
				"route":     c.Request().Method + " " + c.Path(),
			})
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs response for every request, 4xx at warn and 5xx at error
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer m.met.BumpTime("request.time", "method", c.Request().Method, "path", c.Path()).End()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": res.Status,
				"host":       req.Host,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
			}
			if address, ok := c.Get("address").(domain.Address); ok {
				fields["address"] = address
			}

			logger := log.Log()
			if cont, ok := c.Get("ctx").(ctx.Ctx); ok {
				logger = cont.Logger
			}

			switch n := res.Status; {
			case n >= http.StatusInternalServerError:
				m.met.BumpSum("request.err", 1, "path", c.Path())
				logger.WithFields(fields).WithField("nextErr", err).Error("response")
			case n >= http.StatusBadRequest:
				logger.WithFields(fields).WithField("nextErr", err).Warn("response")
			default:
				logger.WithFields(fields).Info("response")
			}
			return nil
		}
	}
}

// IsValidAddress rejects requests whose path param is not a hex address
func IsValidAddress(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if !validator.IsValidAddress(c.Param(param)) {
				return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/auth"
)

type AuthMiddleware struct {
	auth   auth.UseCase
	admins map[domain.Address]struct{}
}

func New(au auth.UseCase, adminAddresses []string) *AuthMiddleware {
	admins := make(map[domain.Address]struct{}, len(adminAddresses))
	for _, a := range adminAddresses {
		admins[domain.Address(a).ToLower()] = struct{}{}
	}
	return &AuthMiddleware{
		auth:   au,
		admins: admins,
	}
}

// Auth requires a bearer token and stores its subject under "address". A
// missing or invalid token is answered with 401.
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: m.validateAuthToken,
		ErrorHandler: func(err error, c echo.Context) error {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrInvalidToken)
		},
	})
}

// IsAdmin runs after Auth and lets only the configured admin addresses through
func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			address, _ := c.Get("address").(domain.Address)
			if _, ok := m.admins[address.ToLower()]; !ok || address.IsEmpty() {
				return delivery.MakeJsonResp(c, http.StatusForbidden, domain.ErrNotAdmin)
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	ads, err := m.auth.ParseToken(ctx, key)
	if err != nil {
		ctx.WithField("err", err).Warn("auth.ParseToken failed")
		return false, err
	}
	c.Set("address", ads)
	return true, nil
}

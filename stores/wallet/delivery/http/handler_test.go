package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/validator"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/middleware"
	"github.com/x-xyz/escrowapi/service/cache"
	"github.com/x-xyz/escrowapi/service/cache/provider/primitive"
	authMiddleware "github.com/x-xyz/escrowapi/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/escrowapi/stores/auth/usecase"
	"github.com/x-xyz/escrowapi/stores/memory"
	walletUsecase "github.com/x-xyz/escrowapi/stores/wallet/usecase"
)

const (
	admin  = domain.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bidder = domain.Address("0x2222222222222222222222222222222222222222")
	escrow = domain.Address("0x00000000000000000000000000000000000e5c40")
)

type handlerSuite struct {
	suite.Suite
	e      *echo.Echo
	tokens map[domain.Address]string
}

func (s *handlerSuite) SetupTest() {
	auth := authUsecase.New(&authUsecase.AuthUseCaseCfg{
		JwtSecret: "secret",
		Nonces: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "nonce",
			Cache: primitive.NewPrimitive("nonce", 1),
		}),
		SigningMsg: "%s",
	})
	s.tokens = map[domain.Address]string{}
	for _, a := range []domain.Address{admin, bidder} {
		token, err := auth.SignToken(ctx.Background(), a)
		s.Require().NoError(err)
		s.tokens[a] = token
	}

	store := memory.New()
	s.e = echo.New()
	s.e.Validator = validator.New()
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, walletUsecase.New(&walletUsecase.WalletUseCaseCfg{
		Repo:       store.Wallets(),
		Escrow:     escrow,
		Transactor: store,
	}), authMiddleware.New(auth, []string{admin.String()}))
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) do(method, target, body string, caller domain.Address) (int, map[string]interface{}) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token, ok := s.tokens[caller]; ok {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	return rec.Code, res
}

func (s *handlerSuite) TestDeposit() {
	code, res := s.do(http.MethodGet, "/wallet/"+bidder.String(), "", "")
	s.Equal(http.StatusOK, code)
	s.Equal("0", res["data"].(map[string]interface{})["amount"])

	code, res = s.do(http.MethodPost, "/wallet/deposit", `{"to":"`+bidder.String()+`","amount":"1500000000000000000"}`, admin)
	s.Equal(http.StatusOK, code)
	s.Equal("1.5", res["data"].(map[string]interface{})["ether"])

	code, res = s.do(http.MethodPost, "/wallet/deposit", `{"to":"`+bidder.String()+`","amount":"500000000000000000"}`, admin)
	s.Equal(http.StatusOK, code)
	s.Equal("2000000000000000000", res["data"].(map[string]interface{})["amount"])

	code, res = s.do(http.MethodGet, "/wallet/"+bidder.String(), "", "")
	s.Equal(http.StatusOK, code)
	s.Equal("2", res["data"].(map[string]interface{})["ether"])
}

func (s *handlerSuite) TestDepositRejected() {
	code, res := s.do(http.MethodPost, "/wallet/deposit", `{"to":"`+bidder.String()+`","amount":"1"}`, bidder)
	s.Equal(http.StatusForbidden, code)
	s.Equal(domain.ErrNotAdmin.Error(), res["data"])

	code, res = s.do(http.MethodPost, "/wallet/deposit", `{"to":"`+bidder.String()+`","amount":"0"}`, admin)
	s.Equal(http.StatusBadRequest, code)
	s.Equal(domain.ErrInvalidAmount.Error(), res["data"])

	code, _ = s.do(http.MethodPost, "/wallet/deposit", `{"to":"0x12","amount":"1"}`, admin)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/wallet/deposit", `{"to":"`+bidder.String()+`","amount":"1.5"}`, admin)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, "/wallet/0x12", "", "")
	s.Equal(http.StatusBadRequest, code)
}

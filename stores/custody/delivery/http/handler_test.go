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
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/middleware"
	"github.com/x-xyz/escrowapi/service/cache"
	"github.com/x-xyz/escrowapi/service/cache/provider/primitive"
	authMiddleware "github.com/x-xyz/escrowapi/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/escrowapi/stores/auth/usecase"
	custodyUsecase "github.com/x-xyz/escrowapi/stores/custody/usecase"
	"github.com/x-xyz/escrowapi/stores/memory"
)

const (
	admin       = domain.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	seller      = domain.Address("0x1111111111111111111111111111111111111111")
	nft         = domain.Address("0x5555555555555555555555555555555555555555")
	marketplace = domain.Address("0x000000000000000000000000000000000000beef")
)

type handlerSuite struct {
	suite.Suite
	e      *echo.Echo
	cu     custody.UseCase
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
	for _, a := range []domain.Address{admin, seller} {
		token, err := auth.SignToken(ctx.Background(), a)
		s.Require().NoError(err)
		s.tokens[a] = token
	}

	store := memory.New()
	s.cu = custodyUsecase.New(&custodyUsecase.CustodyUseCaseCfg{
		Repo:       store.Custody(),
		Operator:   marketplace,
		Transactor: store,
	})
	s.e = echo.New()
	s.e.Validator = validator.New()
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, s.cu, marketplace, authMiddleware.New(auth, []string{admin.String()}))
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

func (s *handlerSuite) TestDepositAndOwner() {
	code, _ := s.do(http.MethodGet, "/custody/"+nft.String()+"/7", "", "")
	s.Equal(http.StatusNotFound, code)

	body := `{"nft":"` + nft.String() + `","tokenId":"7","owner":"` + seller.String() + `"}`
	code, _ = s.do(http.MethodPost, "/custody/deposit", body, seller)
	s.Equal(http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/custody/deposit", body, admin)
	s.Equal(http.StatusCreated, code)

	code, res := s.do(http.MethodGet, "/custody/"+nft.String()+"/7", "", "")
	s.Equal(http.StatusOK, code)
	s.Equal(seller.String(), res["data"].(map[string]interface{})["owner"])

	code, _ = s.do(http.MethodPost, "/custody/deposit", body, admin)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/custody/deposit", `{"nft":"`+nft.String()+`","tokenId":"x","owner":"`+seller.String()+`"}`, admin)
	s.Equal(http.StatusBadRequest, code)
}

func (s *handlerSuite) TestApproval() {
	target := "/custody/" + nft.String() + "/approvals/" + seller.String()
	code, res := s.do(http.MethodGet, target, "", "")
	s.Equal(http.StatusOK, code)
	s.Equal(false, res["data"])

	code, _ = s.do(http.MethodPost, "/custody/approval", `{"nft":"`+nft.String()+`","approved":true}`, "")
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/custody/approval", `{"nft":"`+nft.String()+`","approved":true}`, seller)
	s.Equal(http.StatusOK, code)

	ok, err := s.cu.IsApprovedForAll(ctx.Background(), nft, seller, marketplace)
	s.NoError(err)
	s.True(ok)

	code, res = s.do(http.MethodGet, target, "", "")
	s.Equal(http.StatusOK, code)
	s.Equal(true, res["data"])

	code, _ = s.do(http.MethodPost, "/custody/approval", `{"nft":"`+nft.String()+`","approved":false}`, seller)
	s.Equal(http.StatusOK, code)

	code, res = s.do(http.MethodGet, target, "", "")
	s.Equal(http.StatusOK, code)
	s.Equal(false, res["data"])
}

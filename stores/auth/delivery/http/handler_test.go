package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/delivery"
	"github.com/x-xyz/escrowapi/base/ethereum"
	"github.com/x-xyz/escrowapi/base/validator"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/auth"
	"github.com/x-xyz/escrowapi/middleware"
	"github.com/x-xyz/escrowapi/service/cache"
	"github.com/x-xyz/escrowapi/service/cache/provider/primitive"
	authMiddleware "github.com/x-xyz/escrowapi/stores/auth/delivery/http/middleware"
	"github.com/x-xyz/escrowapi/stores/auth/usecase"
)

const (
	signingMsg = "Sign in, nonce: %s"
	mockAdmin  = domain.Address("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	mockUser   = domain.Address("0x2222222222222222222222222222222222222222")
)

type authSuite struct {
	suite.Suite
	e    *echo.Echo
	auth auth.UseCase
}

func (s *authSuite) SetupTest() {
	s.auth = usecase.New(&usecase.AuthUseCaseCfg{
		JwtSecret: "secret",
		Nonces: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "nonce",
			Cache: primitive.NewPrimitive("nonce", 1),
		}),
		SigningMsg: signingMsg,
	})

	s.e = echo.New()
	s.e.Validator = validator.New()
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, s.auth, signingMsg)

	am := authMiddleware.New(s.auth, []string{string(mockAdmin)})
	s.e.GET("/whoami", func(c echo.Context) error {
		return delivery.MakeJsonResp(c, http.StatusOK, c.Get("address"))
	}, am.Auth())
	s.e.GET("/admin", func(c echo.Context) error {
		return delivery.MakeJsonResp(c, http.StatusOK, "ok")
	}, am.Auth(), am.IsAdmin())
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(authSuite))
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
}

func (s *authSuite) do(method, target, body, token string) (int, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := envelope{}
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	return rec.Code, res
}

func (s *authSuite) sign(address domain.Address) string {
	tkn, err := s.auth.SignToken(ctx.Background(), address)
	s.Require().NoError(err)
	return tkn
}

func (s *authSuite) TestLogin() {
	key, pub, err := ethereum.GenerateKey()
	s.Require().NoError(err)
	address := ethereum.AddressOf(pub)

	code, res := s.do(http.MethodGet, "/auth/nonce/"+address.String(), "", "")
	s.Equal(http.StatusOK, code)
	var nonce string
	s.Require().NoError(json.Unmarshal(res.Data, &nonce))
	s.NotEmpty(nonce)

	sig, err := ethereum.SignMessage(key, []byte(fmt.Sprintf(signingMsg, nonce)))
	s.Require().NoError(err)
	body := fmt.Sprintf(`{"address":"%s","signature":"%s"}`, address, sig)
	code, res = s.do(http.MethodPost, "/auth/sign", body, "")
	s.Equal(http.StatusCreated, code)
	var tkn string
	s.Require().NoError(json.Unmarshal(res.Data, &tkn))

	code, res = s.do(http.MethodGet, "/whoami", "", tkn)
	s.Equal(http.StatusOK, code)
	s.JSONEq(fmt.Sprintf(`"%s"`, address), string(res.Data))

	// the nonce is consumed by the first login
	code, res = s.do(http.MethodPost, "/auth/sign", body, "")
	s.Equal(http.StatusForbidden, code)
	s.JSONEq(`"Invalid nonce"`, string(res.Data))
}

func (s *authSuite) TestSignValidation() {
	code, _ := s.do(http.MethodPost, "/auth/sign", `{"address":"0x12","signature":"0x00"}`, "")
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/auth/sign", `{"address":"`+mockUser.String()+`"}`, "")
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, "/auth/nonce/0x12", "", "")
	s.Equal(http.StatusBadRequest, code)
}

func (s *authSuite) TestSigningMsgTemplate() {
	code, res := s.do(http.MethodGet, "/auth/signingMsgTemplate", "", "")
	s.Equal(http.StatusOK, code)
	s.JSONEq(fmt.Sprintf(`{"template":"%s"}`, signingMsg), string(res.Data))
}

func (s *authSuite) TestAuthMiddleware() {
	code, res := s.do(http.MethodGet, "/whoami", "", "")
	s.Equal(http.StatusUnauthorized, code)
	s.JSONEq(`"missing or invalid token"`, string(res.Data))

	code, _ = s.do(http.MethodGet, "/whoami", "", s.sign(mockUser)+"x")
	s.Equal(http.StatusUnauthorized, code)
}

func (s *authSuite) TestIsAdmin() {
	code, _ := s.do(http.MethodGet, "/admin", "", s.sign(mockUser))
	s.Equal(http.StatusForbidden, code)

	code, res := s.do(http.MethodGet, "/admin", "", s.sign(mockAdmin))
	s.Equal(http.StatusOK, code)
	s.JSONEq(`"ok"`, string(res.Data))

	code, _ = s.do(http.MethodGet, "/admin", "", "")
	s.Equal(http.StatusUnauthorized, code)
}

package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/ethereum"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/auth"
	"github.com/x-xyz/escrowapi/service/cache"
	"github.com/x-xyz/escrowapi/service/cache/provider/primitive"
	"github.com/x-xyz/escrowapi/stores/auth/usecase"
)

const signingMsg = "Sign in to the escrow marketplace, nonce: %s"

func newUsecase() auth.UseCase {
	return usecase.New(&usecase.AuthUseCaseCfg{
		JwtSecret: "jwt-secret",
		Nonces: cache.New(cache.ServiceConfig{
			Ttl:   5 * time.Minute,
			Pfx:   "nonce",
			Cache: primitive.NewPrimitive("nonce", 1),
		}),
		SigningMsg: signingMsg,
	})
}

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := newUsecase()
	tkn, err := u.SignToken(ctx, "0xAbC")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, domain.Address("0xabc"), ads)

	_, err = u.ParseToken(ctx, tkn+"x")
	assert.Error(t, err)
}

func TestParseTokenRejectsForeignIssuer(t *testing.T) {
	ctx := ctx.Background()
	u := newUsecase()
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    "other",
			Subject:   "0xabc",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}).SignedString([]byte("jwt-secret"))
	assert.NoError(t, err)

	_, err = u.ParseToken(ctx, foreign)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	ctx := ctx.Background()
	u := newUsecase()
	key, pub, err := ethereum.GenerateKey()
	assert.NoError(t, err)
	address := ethereum.AddressOf(pub)

	_, err = u.Login(ctx, address, "0x00")
	assert.Equal(t, domain.ErrInvalidNonce, err)

	nonce, err := u.Nonce(ctx, address)
	assert.NoError(t, err)

	other, _, err := ethereum.GenerateKey()
	assert.NoError(t, err)
	forged, err := ethereum.SignMessage(other, []byte(fmt.Sprintf(signingMsg, nonce)))
	assert.NoError(t, err)
	_, err = u.Login(ctx, address, forged)
	assert.Equal(t, domain.ErrInvalidSignature, err)

	sig, err := ethereum.SignMessage(key, []byte(fmt.Sprintf(signingMsg, nonce)))
	assert.NoError(t, err)
	tkn, err := u.Login(ctx, address, sig)
	assert.NoError(t, err)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, address, ads)

	// replaying the signature needs a fresh nonce
	_, err = u.Login(ctx, address, sig)
	assert.Equal(t, domain.ErrInvalidNonce, err)
}

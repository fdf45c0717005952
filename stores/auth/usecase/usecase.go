package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/ethereum"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/auth"
	"github.com/x-xyz/escrowapi/service/cache"
)

type AuthUseCaseCfg struct {
	JwtSecret string
	// Nonces keeps issued login nonces, its ttl bounds how long a nonce is valid
	Nonces cache.Service
	// SigningMsg is a template with one %s replaced by the nonce
	SigningMsg string
	TokenTTL   time.Duration
}

type impl struct {
	jwtSecret  []byte
	nonces     cache.Service
	signingMsg string
	tokenTTL   time.Duration
}

func New(cfg *AuthUseCaseCfg) auth.UseCase {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &impl{
		jwtSecret:  []byte(cfg.JwtSecret),
		nonces:     cfg.Nonces,
		signingMsg: cfg.SigningMsg,
		tokenTTL:   ttl,
	}
}

func (im *impl) Nonce(ctx ctx.Ctx, address domain.Address) (string, error) {
	nonce := uuid.NewString()
	if err := im.nonces.Set(ctx, address.ToLowerStr(), nonce); err != nil {
		ctx.WithField("err", err).Error("nonces.Set failed")
		return "", err
	}
	return nonce, nil
}

func (im *impl) Login(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	var nonce string
	if err := im.nonces.Get(ctx, address.ToLowerStr(), &nonce); err == cache.ErrNotFound {
		return "", domain.ErrInvalidNonce
	} else if err != nil {
		return "", err
	}

	msg := fmt.Sprintf(im.signingMsg, nonce)
	if ok, err := ethereum.ValidateMsgSignature([]byte(msg), signature, address.String()); err != nil {
		return "", err
	} else if !ok {
		return "", domain.ErrInvalidSignature
	}

	// a nonce is good for one login
	if err := im.nonces.Del(ctx, address.ToLowerStr()); err != nil {
		return "", err
	}
	return im.SignToken(ctx, address)
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	now := time.Now()
	claims := &auth.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    auth.Issuer,
			Subject:   address.ToLowerStr(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(im.tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.Address, error) {
	token, err := jwt.ParseWithClaims(str, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*auth.Claims); ok && token.Valid {
			return claims.Address(), nil
		}
	}

	return "", err
}
